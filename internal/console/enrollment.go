package console

import (
	"context"
	"strings"
	"sync"

	"github.com/spec-kit/ticket-console/internal/domain"
	"github.com/spec-kit/ticket-console/internal/events"
	"github.com/spec-kit/ticket-console/internal/inflight"
	apperrors "github.com/spec-kit/ticket-console/pkg/util"
	"github.com/spec-kit/ticket-console/pkg/validation"
)

// EnrollmentMode selects who fills the form.
type EnrollmentMode int

const (
	// EnrollByAdmin lets an admin pick any enrollable role.
	EnrollByAdmin EnrollmentMode = iota
	// EnrollSelf is the customer signup screen; the role is fixed.
	EnrollSelf
)

// EnrollmentForm creates accounts through the signup endpoint.
type EnrollmentForm struct {
	deps  Deps
	mode  EnrollmentMode
	guard inflight.Guard

	mu    sync.Mutex
	input domain.Enrollment
}

// NewEnrollmentForm builds an empty form for mode.
func NewEnrollmentForm(deps Deps, mode EnrollmentMode) *EnrollmentForm {
	f := &EnrollmentForm{deps: deps, mode: mode}
	f.reset()
	return f
}

func (f *EnrollmentForm) reset() {
	f.input = domain.Enrollment{}
	if f.mode == EnrollSelf {
		f.input.Role = domain.RoleCustomer
	}
}

// Mode returns the form's mode.
func (f *EnrollmentForm) Mode() EnrollmentMode {
	return f.mode
}

// Roles lists the roles the form may assign.
func (f *EnrollmentForm) Roles() []domain.Role {
	if f.mode == EnrollSelf {
		return []domain.Role{domain.RoleCustomer}
	}
	return append([]domain.Role(nil), domain.EnrollableRoles...)
}

// Update replaces the inputs. In EnrollSelf mode the role stays customer.
func (f *EnrollmentForm) Update(input domain.Enrollment) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mode == EnrollSelf {
		input.Role = domain.RoleCustomer
	}
	f.input = input
}

// Input returns the current inputs.
func (f *EnrollmentForm) Input() domain.Enrollment {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.input
}

// Submit requires every field, posts the signup and resets the form on
// success. The server applies its own format rules.
func (f *EnrollmentForm) Submit(ctx context.Context) (*domain.User, error) {
	release, err := f.guard.Begin("enroll_user")
	if err != nil {
		return nil, err
	}
	defer release()

	input := f.Input()
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.ContactNumber = strings.TrimSpace(input.ContactNumber)
	input.Location = strings.TrimSpace(input.Location)
	if err := validation.Check(input); err != nil {
		return nil, err
	}
	if !f.allows(input.Role) {
		return nil, apperrors.NewValidationError("role must be one of "+rolesText(f.Roles()),
			map[string]any{"role": string(input.Role)})
	}

	user, err := f.deps.Client.Signup(ctx, input)
	if err != nil {
		return nil, f.deps.failed(ctx, "enroll_user", err)
	}

	f.mu.Lock()
	f.reset()
	f.mu.Unlock()
	f.deps.publish(ctx, events.EventUserEnrolled, events.UserEnrolledPayload{UserID: user.ID, Email: user.Email, Role: user.Role})
	return user, nil
}

func (f *EnrollmentForm) allows(role domain.Role) bool {
	for _, allowed := range f.Roles() {
		if role == allowed {
			return true
		}
	}
	return false
}

func rolesText(roles []domain.Role) string {
	names := make([]string, len(roles))
	for i, role := range roles {
		names[i] = string(role)
	}
	return strings.Join(names, ", ")
}
