package apiclient

import (
	"context"
	"fmt"

	"github.com/spec-kit/ticket-console/internal/api/dto"
	"github.com/spec-kit/ticket-console/internal/domain"
)

// Backend paths.
const (
	PathLogin          = "/auth/login"
	PathMe             = "/auth/me"
	PathSignup         = "/auth/signup"
	PathUsers          = "/user/users"
	PathCategories     = "/issue/category/issue-categories"
	PathUpdateCategory = "/issue/category/update-category/%d"
	PathDeleteCategory = "/issue/category/delete-category/%d"
	PathTickets        = "/tickets/tickets"
)

// Identity is the subset of GET /auth/me the console relies on.
type Identity struct {
	ID    int    `json:"user_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Login exchanges a credential for an access token.
func (c *Client) Login(ctx context.Context, cred domain.Credential) (string, error) {
	var resp dto.LoginResponse
	if err := c.Post(ctx, PathLogin, dto.LoginRequest{Email: cred.Email, Password: cred.Password}, &resp); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

// Me returns the identity bound to the current token.
func (c *Client) Me(ctx context.Context) (*Identity, error) {
	var identity Identity
	if err := c.Get(ctx, PathMe, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

// Signup creates an account.
func (c *Client) Signup(ctx context.Context, enrollment domain.Enrollment) (*domain.User, error) {
	var resp dto.UserResponse
	if err := c.Post(ctx, PathSignup, dto.NewSignupRequest(enrollment), &resp); err != nil {
		return nil, err
	}
	user := resp.ToDomain()
	return &user, nil
}

// ListUsers returns every user, admin only.
func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var resp []dto.UserResponse
	if err := c.Get(ctx, PathUsers, &resp); err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(resp))
	for _, u := range resp {
		users = append(users, u.ToDomain())
	}
	return users, nil
}

// ListCategories returns every issue category.
func (c *Client) ListCategories(ctx context.Context) ([]domain.IssueCategory, error) {
	var resp []dto.CategoryResponse
	if err := c.Get(ctx, PathCategories, &resp); err != nil {
		return nil, err
	}
	categories := make([]domain.IssueCategory, 0, len(resp))
	for _, cat := range resp {
		categories = append(categories, cat.ToDomain())
	}
	return categories, nil
}

// CreateCategory posts a new category name as-is.
func (c *Client) CreateCategory(ctx context.Context, name string) (*domain.IssueCategory, error) {
	var resp dto.CategoryResponse
	if err := c.Post(ctx, PathCategories, dto.CategoryRequest{Name: name}, &resp); err != nil {
		return nil, err
	}
	category := resp.ToDomain()
	return &category, nil
}

// UpdateCategory renames category id.
func (c *Client) UpdateCategory(ctx context.Context, id int, name string) error {
	return c.Put(ctx, fmt.Sprintf(PathUpdateCategory, id), dto.CategoryRequest{Name: name}, nil)
}

// DeleteCategory removes category id.
func (c *Client) DeleteCategory(ctx context.Context, id int) error {
	return c.Delete(ctx, fmt.Sprintf(PathDeleteCategory, id), nil)
}

// CreateTicket submits a ticket and returns it with its server-assigned id.
func (c *Client) CreateTicket(ctx context.Context, description string, categoryID int) (*domain.Ticket, error) {
	var resp dto.TicketResponse
	req := dto.CreateTicketRequest{Description: description, CategoryID: categoryID}
	if err := c.Post(ctx, PathTickets, req, &resp); err != nil {
		return nil, err
	}
	ticket := resp.ToDomain()
	return &ticket, nil
}
