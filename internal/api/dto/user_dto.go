package dto

import "github.com/spec-kit/ticket-console/internal/domain"

// LoginRequest payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned by POST /auth/login.
type LoginResponse struct {
	Status      string `json:"status,omitempty"`
	Message     string `json:"message,omitempty"`
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}

// SignupRequest payload for POST /auth/signup.
type SignupRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	Role          string `json:"role"`
	ContactNumber string `json:"contact_number"`
	Location      string `json:"location"`
}

// UserResponse is the wire shape of a user.
type UserResponse struct {
	ID            int    `json:"user_id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	ContactNumber string `json:"contact_number"`
	Location      string `json:"location"`
}

// ToDomain converts the wire user. Unknown roles are kept verbatim so the
// directory still lists them.
func (u UserResponse) ToDomain() domain.User {
	return domain.User{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Role:          domain.Role(u.Role),
		ContactNumber: u.ContactNumber,
		Location:      u.Location,
	}
}

// NewUserResponse builds the wire shape from a domain user.
func NewUserResponse(u domain.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Role:          string(u.Role),
		ContactNumber: u.ContactNumber,
		Location:      u.Location,
	}
}

// NewSignupRequest builds the signup payload from an enrollment.
func NewSignupRequest(e domain.Enrollment) SignupRequest {
	return SignupRequest{
		Name:          e.Name,
		Email:         e.Email,
		Password:      e.Password,
		Role:          string(e.Role),
		ContactNumber: e.ContactNumber,
		Location:      e.Location,
	}
}
