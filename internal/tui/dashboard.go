package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/spec-kit/ticket-console/internal/events"
	"github.com/spec-kit/ticket-console/internal/navigation"
)

const recentActivity = 5

var dashboardTitles = map[navigation.Route]string{
	navigation.RouteAdminDashboard:  "Admin Dashboard",
	navigation.RouteEngineerTickets: "Engineer Tickets",
	navigation.RouteCustomerHome:    "Customer Home",
	navigation.RouteManagerOverview: "Manager Overview",
	navigation.RouteAgentConsole:    "Agent Console",
}

func (model Model) handleDashboardKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	links := navigation.DashboardLinks(model.role)
	switch {
	case key.Matches(message, model.keys.Logout):
		return model.logout()
	case key.Matches(message, model.keys.Up):
		if model.menu > 0 {
			model.menu--
		}
	case key.Matches(message, model.keys.Down):
		if model.menu < len(links)-1 {
			model.menu++
		}
	case key.Matches(message, model.keys.Submit):
		if model.menu < len(links) {
			return model.navigate(links[model.menu].Route)
		}
	}
	return model, nil
}

func (model Model) dashboardView() string {
	var builder strings.Builder
	title, ok := dashboardTitles[model.route]
	if !ok {
		title = "Dashboard"
	}
	builder.WriteString(model.theme.header(title) + "\n")
	builder.WriteString(model.theme.faint("Signed in as "+string(model.role)) + "\n\n")

	links := navigation.DashboardLinks(model.role)
	if len(links) == 0 {
		builder.WriteString(model.theme.faint("Nothing to manage from this dashboard yet.") + "\n")
	}
	for i, link := range links {
		builder.WriteString(model.theme.row(link.Title, i == model.menu) + "\n")
	}

	if model.options.Activity != nil {
		if recent := model.options.Activity.Recent(recentActivity); len(recent) > 0 {
			builder.WriteString("\n" + model.theme.header("Recent activity") + "\n")
			for _, event := range recent {
				builder.WriteString(model.theme.faint(activityLine(event)) + "\n")
			}
		}
	}

	builder.WriteString("\n" + model.theme.help(model.keys.Up, model.keys.Down, model.keys.Submit, model.keys.Logout, model.keys.Quit))
	return builder.String()
}

func activityLine(event events.Event) string {
	stamp := event.Timestamp.Local().Format("15:04:05")
	switch payload := event.Payload.(type) {
	case events.CategoryPayload:
		return fmt.Sprintf("%s  %s  %s", stamp, event.Type, payload.Name)
	case events.TicketSubmittedPayload:
		return fmt.Sprintf("%s  %s  #%d", stamp, event.Type, payload.TicketID)
	case events.UserEnrolledPayload:
		return fmt.Sprintf("%s  %s  %s (%s)", stamp, event.Type, payload.Email, payload.Role)
	case events.ActionFailedPayload:
		return fmt.Sprintf("%s  %s  %s: %s", stamp, event.Type, payload.Action, payload.Code)
	default:
		return fmt.Sprintf("%s  %s", stamp, event.Type)
	}
}
