package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/spec-kit/ticket-console/internal/console"
	"github.com/spec-kit/ticket-console/internal/domain"
	"github.com/spec-kit/ticket-console/internal/navigation"
)

// userFilters is the cycle the filter key walks; RoleNone shows everyone.
var userFilters = append([]domain.Role{domain.RoleNone}, domain.Roles...)

func (model Model) activeUserFilter() domain.Role {
	return userFilters[model.userFilter]
}

func (model Model) handleUsersKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Back):
		return model.home()
	case key.Matches(message, model.keys.Filter):
		model.userFilter = (model.userFilter + 1) % len(userFilters)
	case key.Matches(message, model.keys.Refresh):
		return model.navigate(navigation.RouteAdminUsers)
	case key.Matches(message, model.keys.Logout):
		return model.logout()
	}
	return model, nil
}

func (model Model) usersView() string {
	var builder strings.Builder
	filter := "all"
	if role := model.activeUserFilter(); role != domain.RoleNone {
		filter = string(role)
	}
	builder.WriteString(model.theme.header("All Users") + "  " + model.theme.faint("role: "+filter) + "\n\n")

	state, err := model.users.State()
	switch {
	case state == console.ListLoading:
		builder.WriteString(model.theme.faint("Loading users...") + "\n")
	case state == console.ListFailed:
		builder.WriteString(model.theme.failure("Failed to load users: "+err.Error()) + "\n")
	case model.users.Empty(model.activeUserFilter()):
		builder.WriteString(model.theme.faint("No users found") + "\n")
	default:
		builder.WriteString(model.theme.faint(fmt.Sprintf("%-5s %-20s %-28s %-9s %-12s %s", "ID", "Name", "Email", "Role", "Contact", "Location")) + "\n")
		for _, user := range model.users.Users(model.activeUserFilter()) {
			builder.WriteString(fmt.Sprintf("%-5d %-20s %-28s %-9s %-12s %s\n",
				user.ID, user.Name, user.Email, user.Role, user.ContactNumber, user.Location))
		}
	}

	builder.WriteString("\n" + model.theme.help(model.keys.Filter, model.keys.Refresh, model.keys.Back))
	return builder.String()
}

// loadUsers is the users screen's entry fetch.
func loadUsers(directory *console.UserDirectory) func(ctx context.Context) tea.Msg {
	return func(ctx context.Context) tea.Msg {
		return loadedMsg{route: navigation.RouteAdminUsers, err: directory.Load(ctx)}
	}
}
