package domain

import "time"

// Credential is what the user types on the login screen. It is discarded
// once exchanged for a Session.
type Credential struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Session is an authenticated bearer token bound to its resolved role.
type Session struct {
	Token     string
	Role      Role
	CreatedAt time.Time
}
