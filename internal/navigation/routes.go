package navigation

import (
	"github.com/spec-kit/ticket-console/internal/domain"
	apperrors "github.com/spec-kit/ticket-console/pkg/util"
)

// Route names a console screen.
type Route string

// Dashboards, one per role.
const (
	RouteAdminDashboard  Route = "/admin/dashboard"
	RouteEngineerTickets Route = "/engineer/tickets"
	RouteCustomerHome    Route = "/customer/home"
	RouteManagerOverview Route = "/manager/overview"
	RouteAgentConsole    Route = "/agent/console"
)

// Secondary screens reachable from a dashboard.
const (
	RouteLogin          Route = "/"
	RouteAdminUsers     Route = "/admin/users"
	RouteAdminCreate    Route = "/admin/create-user"
	RouteAdminCategory  Route = "/admin/categories"
	RouteCustomerTicket Route = "/customer/create-ticket"
	RouteCustomerSignup Route = "/customer/signup"
)

var dashboards = map[domain.Role]Route{
	domain.RoleAdmin:    RouteAdminDashboard,
	domain.RoleEngineer: RouteEngineerTickets,
	domain.RoleCustomer: RouteCustomerHome,
	domain.RoleManager:  RouteManagerOverview,
	domain.RoleAgent:    RouteAgentConsole,
}

// RouteFor returns the dashboard of role. Any role outside the five
// enumerated ones yields UNKNOWN_ROLE.
func RouteFor(role domain.Role) (Route, error) {
	route, ok := dashboards[role]
	if !ok {
		return "", apperrors.NewUnknownRole(string(role))
	}
	return route, nil
}

// Link is one entry of a dashboard menu.
type Link struct {
	Title string
	Route Route
}

// DashboardLinks lists the screens a role's dashboard offers.
func DashboardLinks(role domain.Role) []Link {
	switch role {
	case domain.RoleAdmin:
		return []Link{
			{Title: "Create New User", Route: RouteAdminCreate},
			{Title: "View All Users", Route: RouteAdminUsers},
			{Title: "Manage Issue Categories", Route: RouteAdminCategory},
		}
	case domain.RoleCustomer:
		return []Link{
			{Title: "Create New Ticket", Route: RouteCustomerTicket},
		}
	default:
		return nil
	}
}
