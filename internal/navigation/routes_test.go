package navigation

import (
	"testing"

	"github.com/spec-kit/ticket-console/internal/domain"
	apperrors "github.com/spec-kit/ticket-console/pkg/util"
)

func TestRouteForEveryRoleIsDistinct(t *testing.T) {
	want := map[domain.Role]Route{
		domain.RoleAdmin:    "/admin/dashboard",
		domain.RoleEngineer: "/engineer/tickets",
		domain.RoleCustomer: "/customer/home",
		domain.RoleManager:  "/manager/overview",
		domain.RoleAgent:    "/agent/console",
	}
	seen := make(map[Route]domain.Role)
	for _, role := range domain.Roles {
		route, err := RouteFor(role)
		if err != nil {
			t.Fatalf("RouteFor(%q): %v", role, err)
		}
		if route != want[role] {
			t.Errorf("RouteFor(%q) = %q, want %q", role, route, want[role])
		}
		if other, dup := seen[route]; dup {
			t.Errorf("roles %q and %q share route %q", other, role, route)
		}
		seen[route] = role
	}
	if len(seen) != 5 {
		t.Errorf("got %d distinct routes, want 5", len(seen))
	}
}

func TestRouteForUnknownRole(t *testing.T) {
	for _, role := range []domain.Role{"superuser", "", "ADMIN"} {
		_, err := RouteFor(role)
		if !apperrors.IsCode(err, apperrors.CodeUnknownRole) {
			t.Errorf("RouteFor(%q) err = %v, want UNKNOWN_ROLE", role, err)
		}
	}
}

func TestDashboardLinks(t *testing.T) {
	if got := len(DashboardLinks(domain.RoleAdmin)); got != 3 {
		t.Errorf("admin links = %d, want 3", got)
	}
	links := DashboardLinks(domain.RoleCustomer)
	if len(links) != 1 || links[0].Route != RouteCustomerTicket {
		t.Errorf("customer links = %+v", links)
	}
	if DashboardLinks(domain.RoleAgent) != nil {
		t.Error("agent console has no links yet")
	}
}
