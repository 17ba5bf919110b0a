package domain

// User is an account as listed by the admin user directory. The console
// never mutates or deletes users.
type User struct {
	ID            int
	Name          string
	Email         string
	Role          Role
	ContactNumber string
	Location      string
}

// Enrollment carries the fields of a signup call.
type Enrollment struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required"`
	Password      string `json:"password" validate:"required"`
	Role          Role   `json:"role" validate:"required"`
	ContactNumber string `json:"contact_number" validate:"required"`
	Location      string `json:"location" validate:"required"`
}
