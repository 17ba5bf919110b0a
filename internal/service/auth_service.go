package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/spec-kit/ticket-console/internal/auth"
	"github.com/spec-kit/ticket-console/internal/config"
	"github.com/spec-kit/ticket-console/internal/domain"
	"github.com/spec-kit/ticket-console/internal/repository"
	apperrors "github.com/spec-kit/ticket-console/pkg/util"
	"github.com/spec-kit/ticket-console/pkg/validation"
)

// SignupInput is the server-side shape of a signup request.
type SignupInput struct {
	Name          string `json:"name" validate:"required,min=3,max=50"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=6,max=72"`
	Role          string `json:"role" validate:"required,oneof=customer agent engineer manager"`
	ContactNumber string `json:"contact_number" validate:"required,len=10,numeric"`
	Location      string `json:"location" validate:"required,min=2"`
}

// AuthService coordinates signup, login and identity lookups.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		bcryptCost: cfg.BcryptCost,
	}
}

// TokenManager exposes the token manager for the auth middleware.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Signup creates an account with one of the enrollable roles.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*domain.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Location = strings.TrimSpace(in.Location)
	if err := validation.Check(in); err != nil {
		return nil, err
	}
	if !lettersAndSpaces(in.Name) {
		return nil, apperrors.NewValidationError("Name must contain only letters and spaces",
			map[string]any{"name": "must contain only letters and spaces"})
	}
	if strings.IndexFunc(in.Password, unicode.IsDigit) < 0 {
		return nil, apperrors.NewValidationError("Password must contain at least one digit",
			map[string]any{"password": "must contain at least one digit"})
	}

	return s.create(ctx, in.Name, in.Email, in.Password, domain.Role(in.Role), in.ContactNumber, in.Location)
}

// SeedAdmin makes sure an admin account with email exists. Admins cannot
// sign up through the public endpoint.
func (s *AuthService) SeedAdmin(ctx context.Context, name, email, password string) (*domain.User, error) {
	existing, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return &existing.User, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return s.create(ctx, name, email, password, domain.RoleAdmin, "", "")
}

func (s *AuthService) create(ctx context.Context, name, email, password string, role domain.Role, contact, location string) (*domain.User, error) {
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	account := &repository.Account{
		User: domain.User{
			Name:          name,
			Email:         email,
			Role:          role,
			ContactNumber: contact,
			Location:      location,
		},
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewValidationError("Email already registered", map[string]any{"email": email})
		}
		return nil, apperrors.NewInternalError(err)
	}
	return &account.User, nil
}

// Login verifies the credential and issues a bearer token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	account, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", time.Time{}, apperrors.NewUnauthorized("Invalid email or password")
		}
		return "", time.Time{}, apperrors.NewInternalError(err)
	}
	if err := auth.ComparePassword(account.PasswordHash, password); err != nil {
		return "", time.Time{}, apperrors.NewUnauthorized("Invalid email or password")
	}

	token, exp, err := s.tokenMgr.GenerateToken(account.ID, account.Role)
	if err != nil {
		return "", time.Time{}, apperrors.NewInternalError(err)
	}
	return token, exp, nil
}

// ListUsers returns every account in creation order.
func (s *AuthService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return users, nil
}

func lettersAndSpaces(s string) bool {
	letters := 0
	for _, r := range s {
		switch {
		case r == ' ':
		case unicode.IsLetter(r):
			letters++
		default:
			return false
		}
	}
	return letters > 0
}
