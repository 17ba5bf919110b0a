package console

import (
	"context"
	"net/http"
	"testing"

	"github.com/spec-kit/ticket-console/internal/domain"
	apperrors "github.com/spec-kit/ticket-console/pkg/util"
)

const signupPath = "/auth/signup"

func enrollment(role domain.Role) domain.Enrollment {
	return domain.Enrollment{
		Name:          "Eve Engineer",
		Email:         "eve@example.com",
		Password:      "circuit9",
		Role:          role,
		ContactNumber: "0123456789",
		Location:      "Lisbon",
	}
}

func TestAdminEnrollsEngineer(t *testing.T) {
	_, deps := loggedIn(t, domain.RoleAdmin)
	form := NewEnrollmentForm(deps, EnrollByAdmin)

	form.Update(enrollment(domain.RoleEngineer))
	user, err := form.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if user.ID == 0 || user.Role != domain.RoleEngineer {
		t.Errorf("user = %+v", user)
	}
	if form.Input() != (domain.Enrollment{}) {
		t.Errorf("form should reset, got %+v", form.Input())
	}
}

func TestEnrollmentRequiresEveryField(t *testing.T) {
	backend, deps := loggedIn(t, domain.RoleAdmin)
	form := NewEnrollmentForm(deps, EnrollByAdmin)

	input := enrollment(domain.RoleAgent)
	input.Location = "  "
	form.Update(input)
	if _, err := form.Submit(context.Background()); !apperrors.IsCode(err, apperrors.CodeValidationFailed) {
		t.Fatalf("err = %v, want VALIDATION_FAILED", err)
	}

	form.Update(enrollment(domain.RoleAdmin))
	if _, err := form.Submit(context.Background()); !apperrors.IsCode(err, apperrors.CodeValidationFailed) {
		t.Fatalf("admin role err = %v, want VALIDATION_FAILED", err)
	}
	if n := backend.Requests(http.MethodPost, signupPath); n != 0 {
		t.Errorf("signup calls = %d", n)
	}
}

func TestSelfSignupForcesCustomer(t *testing.T) {
	backend, _ := loggedIn(t, domain.RoleAdmin)
	form := NewEnrollmentForm(depsFor(backend, ""), EnrollSelf)

	form.Update(enrollment(domain.RoleManager))
	if form.Input().Role != domain.RoleCustomer {
		t.Fatalf("role = %q, signup is customer only", form.Input().Role)
	}
	user, err := form.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if user.Role != domain.RoleCustomer {
		t.Errorf("user.Role = %q", user.Role)
	}
	if form.Input().Role != domain.RoleCustomer || form.Input().Email != "" {
		t.Errorf("reset form = %+v", form.Input())
	}
}

func TestEnrollmentServerRejectionKeepsInput(t *testing.T) {
	_, deps := loggedIn(t, domain.RoleAdmin)
	form := NewEnrollmentForm(deps, EnrollByAdmin)

	input := enrollment(domain.RoleAgent)
	input.ContactNumber = "12ab"
	form.Update(input)
	if _, err := form.Submit(context.Background()); !apperrors.IsCode(err, apperrors.CodeServerRejected) {
		t.Fatalf("err = %v, want SERVER_REJECTED", err)
	}
	if form.Input() != input {
		t.Errorf("input should be retained, got %+v", form.Input())
	}
}
