package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-console/internal/console"
	"github.com/spec-kit/ticket-console/internal/domain"
	"github.com/spec-kit/ticket-console/internal/events"
	"github.com/spec-kit/ticket-console/internal/navigation"
	"github.com/spec-kit/ticket-console/internal/session"
)

// ActivitySource lists recent console events, newest first.
type ActivitySource interface {
	Recent(n int) []events.Event
}

// Options wires the model to the session and the controllers' shared deps.
type Options struct {
	Resolver *session.Resolver
	Console  console.Deps
	Activity ActivitySource
	Logger   *zap.Logger
	// ActionTimeout bounds each network action; zero means no bound.
	ActionTimeout time.Duration
}

// notice is a blocking message; it swallows all keys until dismissed.
type notice struct {
	title  string
	body   string
	failed bool
}

// sessionMsg reports a finished login or resume.
type sessionMsg struct {
	session *domain.Session
	route   navigation.Route
	err     error
	resumed bool
}

type loggedOutMsg struct {
	err error
}

// loadedMsg reports a finished screen-entry fetch.
type loadedMsg struct {
	route navigation.Route
	err   error
}

// actionMsg reports a finished mutation. text is the success notice; an
// empty text means success is silent.
type actionMsg struct {
	route navigation.Route
	text  string
	err   error
	then  navigation.Route
}

// Model is the root bubbletea model of the console.
type Model struct {
	options Options
	logger  *zap.Logger
	keys    KeyMap
	theme   Theme

	route  navigation.Route
	role   domain.Role
	notice *notice
	busy   bool

	login loginScreen
	menu  int

	users      *console.UserDirectory
	userFilter int

	categories *categoryScreen
	ticket     *ticketScreen
	enroll     *enrollScreen
}

// NewModel builds the model on the login screen.
func NewModel(options Options) Model {
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	model := Model{
		options: options,
		logger:  logger,
		keys:    DefaultKeyMap,
		theme:   DefaultTheme,
		route:   navigation.RouteLogin,
		login:   newLoginScreen(),
	}
	model.resetScreens()
	return model
}

// resetScreens drops every per-screen projection so nothing leaks across
// sessions.
func (model *Model) resetScreens() {
	deps := model.options.Console
	model.menu = 0
	model.users = console.NewUserDirectory(deps)
	model.userFilter = 0
	model.categories = newCategoryScreen(deps)
	model.ticket = newTicketScreen(deps)
	model.enroll = newEnrollScreen(deps, console.EnrollByAdmin)
}

// Init tries to resume a stored session.
func (model Model) Init() tea.Cmd {
	resolver := model.options.Resolver
	return model.run(func(ctx context.Context) tea.Msg {
		current, route, err := resolver.Resume(ctx)
		return sessionMsg{session: current, route: route, err: err, resumed: true}
	})
}

// run wraps a network action in a tea.Cmd bounded by ActionTimeout.
func (model Model) run(action func(ctx context.Context) tea.Msg) tea.Cmd {
	timeout := model.options.ActionTimeout
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		return action(ctx)
	}
}

// Route returns the active screen.
func (model Model) Route() navigation.Route {
	return model.route
}

func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		if key.Matches(message, model.keys.Quit) {
			return model, tea.Quit
		}
		if model.notice != nil {
			if message.Type == tea.KeyEnter || message.Type == tea.KeyEsc {
				model.notice = nil
			}
			return model, nil
		}
		return model.handleKeys(message)

	case sessionMsg:
		return model.handleSession(message)

	case loggedOutMsg:
		model.busy = false
		model.route = navigation.RouteLogin
		model.role = domain.RoleNone
		model.resetScreens()
		if message.err != nil {
			model.fail("Logout failed", message.err)
		}
		return model, nil

	case loadedMsg:
		if message.err != nil && message.route == model.route {
			model.fail("Could not load", message.err)
		}
		if message.route == navigation.RouteCustomerTicket {
			model.ticket.syncSelection()
		}
		return model, nil

	case actionMsg:
		return model.handleAction(message)
	}
	return model, nil
}

func (model Model) handleKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch model.route {
	case navigation.RouteLogin:
		return model.handleLoginKeys(message)
	case navigation.RouteCustomerSignup, navigation.RouteAdminCreate:
		return model.handleEnrollKeys(message)
	case navigation.RouteAdminUsers:
		return model.handleUsersKeys(message)
	case navigation.RouteAdminCategory:
		return model.handleCategoryKeys(message)
	case navigation.RouteCustomerTicket:
		return model.handleTicketKeys(message)
	default:
		return model.handleDashboardKeys(message)
	}
}

func (model Model) handleSession(message sessionMsg) (tea.Model, tea.Cmd) {
	model.busy = false
	if message.err != nil {
		title := "Login failed"
		if message.resumed {
			title = "Could not restore session"
		}
		model.fail(title, message.err)
		return model, nil
	}
	if message.session == nil {
		return model, nil
	}
	model.resetScreens()
	model.role = message.session.Role
	model.route = message.route
	model.login.clearPassword()
	model.logger.Info("dashboard opened", zap.String("route", string(message.route)))
	return model, nil
}

func (model Model) handleAction(message actionMsg) (tea.Model, tea.Cmd) {
	model.busy = false
	switch message.route {
	case navigation.RouteAdminCategory:
		model.categories.syncInput()
	case navigation.RouteCustomerTicket:
		if message.err == nil {
			model.ticket.reset()
		}
	case navigation.RouteAdminCreate, navigation.RouteCustomerSignup:
		if message.err == nil {
			model.enroll.reset()
		}
	}
	if message.err != nil {
		model.fail("Request failed", message.err)
		return model, nil
	}
	if message.text != "" {
		model.notice = &notice{title: "Done", body: message.text}
	}
	if message.then != "" {
		model.route = message.then
	}
	return model, nil
}

// fail raises a blocking notice for err.
func (model *Model) fail(title string, err error) {
	model.logger.Debug("notice", zap.String("title", title), zap.Error(err))
	model.notice = &notice{title: title, body: err.Error(), failed: true}
}

// navigate opens route, enforcing the role each secondary screen needs, and
// returns the screen-entry fetch if it has one.
func (model Model) navigate(route navigation.Route) (tea.Model, tea.Cmd) {
	if required, ok := screenRoles[route]; ok && required != model.role {
		model.notice = &notice{title: "Access denied", body: "This screen is not available to the " + string(model.role) + " role.", failed: true}
		return model, nil
	}
	model.route = route
	switch route {
	case navigation.RouteAdminUsers:
		return model, model.run(loadUsers(model.users))
	case navigation.RouteAdminCategory:
		return model, model.run(loadCategories(model.categories.controller))
	case navigation.RouteCustomerTicket:
		return model, model.run(loadTicketForm(model.ticket.form))
	}
	return model, nil
}

var screenRoles = map[navigation.Route]domain.Role{
	navigation.RouteAdminUsers:     domain.RoleAdmin,
	navigation.RouteAdminCreate:    domain.RoleAdmin,
	navigation.RouteAdminCategory:  domain.RoleAdmin,
	navigation.RouteCustomerTicket: domain.RoleCustomer,
}

// home returns to the role's dashboard.
func (model Model) home() (tea.Model, tea.Cmd) {
	route, err := navigation.RouteFor(model.role)
	if err != nil {
		model.route = navigation.RouteLogin
		return model, nil
	}
	model.route = route
	return model, nil
}

func (model Model) logout() (tea.Model, tea.Cmd) {
	resolver := model.options.Resolver
	model.busy = true
	return model, model.run(func(ctx context.Context) tea.Msg {
		return loggedOutMsg{err: resolver.Logout(ctx)}
	})
}

func (model Model) View() string {
	var body string
	switch model.route {
	case navigation.RouteLogin:
		body = model.loginView()
	case navigation.RouteCustomerSignup, navigation.RouteAdminCreate:
		body = model.enrollView()
	case navigation.RouteAdminUsers:
		body = model.usersView()
	case navigation.RouteAdminCategory:
		body = model.categoryView()
	case navigation.RouteCustomerTicket:
		body = model.ticketView()
	default:
		body = model.dashboardView()
	}
	if model.busy {
		body += "\n" + model.theme.faint("working...")
	}
	if model.notice != nil {
		box := model.theme.noticeBox(model.notice.title, model.notice.body, model.notice.failed)
		return lipgloss.JoinVertical(lipgloss.Left, body, "", box)
	}
	return body
}

func newInput(placeholder string, limit int) textinput.Model {
	input := textinput.New()
	input.Placeholder = placeholder
	input.CharLimit = limit
	input.Cursor.SetMode(cursor.CursorStatic)
	return input
}
