package tui

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/spec-kit/ticket-console/internal/apiclient"
	"github.com/spec-kit/ticket-console/internal/console"
	"github.com/spec-kit/ticket-console/internal/domain"
	"github.com/spec-kit/ticket-console/internal/events"
	"github.com/spec-kit/ticket-console/internal/mockapi/mockapitest"
	"github.com/spec-kit/ticket-console/internal/navigation"
	"github.com/spec-kit/ticket-console/internal/service"
	"github.com/spec-kit/ticket-console/internal/session"
)

// harness drives a Model against a live backend, running every command
// synchronously the way the bubbletea runtime would deliver its result.
type harness struct {
	backend *mockapitest.Fixture
	store   *session.FileStore
	model   tea.Model
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	backend := mockapitest.Start(t)
	store := session.NewFileStore(filepath.Join(t.TempDir(), "session.yaml"))
	dispatcher := events.NewInMemoryDispatcher()
	audit := service.NewAuditService(dispatcher, nil, 0)
	audit.RegisterHandlers()
	sessions := session.NewManager(store, dispatcher, nil)
	client := apiclient.New(apiclient.Options{BaseURL: backend.URL, Tokens: sessions})

	model := NewModel(Options{
		Resolver: session.NewResolver(client, sessions, nil),
		Console:  console.Deps{Client: client, Dispatcher: dispatcher, Sessions: sessions},
		Activity: audit,
	})
	return &harness{backend: backend, store: store, model: model}
}

var namedKeys = map[string]tea.KeyType{
	"enter":  tea.KeyEnter,
	"esc":    tea.KeyEsc,
	"tab":    tea.KeyTab,
	"up":     tea.KeyUp,
	"down":   tea.KeyDown,
	"left":   tea.KeyLeft,
	"right":  tea.KeyRight,
	"ctrl+n": tea.KeyCtrlN,
	"ctrl+x": tea.KeyCtrlX,
}

func (h *harness) send(t *testing.T, message tea.Msg) {
	t.Helper()
	model, cmd := h.model.Update(message)
	h.model = model
	h.drain(t, cmd)
}

func (h *harness) drain(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	for depth := 0; cmd != nil; depth++ {
		if depth > 10 {
			t.Fatal("command chain did not settle")
		}
		message := cmd()
		if batch, ok := message.(tea.BatchMsg); ok {
			for _, inner := range batch {
				h.drain(t, inner)
			}
			return
		}
		h.model, cmd = h.model.Update(message)
	}
}

func (h *harness) press(t *testing.T, keys ...string) {
	t.Helper()
	for _, name := range keys {
		if keyType, ok := namedKeys[name]; ok {
			h.send(t, tea.KeyMsg{Type: keyType})
			continue
		}
		h.send(t, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)})
	}
}

func (h *harness) typeText(t *testing.T, text string) {
	t.Helper()
	h.send(t, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func (h *harness) current() Model {
	return h.model.(Model)
}

func (h *harness) view() string {
	return h.model.View()
}

// login fills the login screen from its initial state and submits it.
func (h *harness) login(t *testing.T, role domain.Role, email string) {
	t.Helper()
	for _, known := range domain.Roles {
		if known == role {
			break
		}
		h.press(t, "right")
	}
	h.press(t, "tab")
	h.typeText(t, email)
	h.press(t, "tab")
	h.typeText(t, mockapitest.Password)
	h.press(t, "enter")
}

func TestLoginOpensRoleDashboard(t *testing.T) {
	h := newHarness(t)
	h.backend.CreateUser(t, domain.RoleAdmin, "Ada Admin", "ada@example.com")

	h.login(t, domain.RoleAdmin, "ada@example.com")

	if h.current().Route() != navigation.RouteAdminDashboard {
		t.Fatalf("route = %q, notice = %+v", h.current().Route(), h.current().notice)
	}
	view := h.view()
	for _, want := range []string{"Admin Dashboard", "Create New User", "View All Users", "Manage Issue Categories", "session_created"} {
		if !strings.Contains(view, want) {
			t.Errorf("dashboard missing %q:\n%s", want, view)
		}
	}
	token, err := h.store.Load(context.Background())
	if err != nil || token == "" {
		t.Errorf("stored token = %q, %v", token, err)
	}
}

func TestLoginRoleMismatchRaisesNotice(t *testing.T) {
	h := newHarness(t)
	h.backend.CreateUser(t, domain.RoleCustomer, "Cora Customer", "cora@example.com")

	h.login(t, domain.RoleAdmin, "cora@example.com")

	model := h.current()
	if model.Route() != navigation.RouteLogin {
		t.Fatalf("route = %q, want login", model.Route())
	}
	if model.notice == nil || !model.notice.failed {
		t.Fatal("expected a failure notice")
	}
	if !strings.Contains(h.view(), "no user found") {
		t.Errorf("notice should name the mismatch:\n%s", h.view())
	}
	if token, _ := h.store.Load(context.Background()); token != "" {
		t.Error("mismatched login must not persist a token")
	}

	// The notice swallows keys until dismissed.
	h.press(t, "tab")
	if h.current().login.focus != loginFocusPassword {
		t.Errorf("focus moved while a notice was shown")
	}
	h.press(t, "enter")
	if h.current().notice != nil {
		t.Error("enter should dismiss the notice")
	}
}

func TestInitResumesStoredSession(t *testing.T) {
	h := newHarness(t)
	h.backend.CreateUser(t, domain.RoleEngineer, "Eli Engineer", "eli@example.com")
	if err := h.store.Save(context.Background(), h.backend.Token(t, "eli@example.com")); err != nil {
		t.Fatalf("save: %v", err)
	}

	h.drain(t, h.model.Init())

	if h.current().Route() != navigation.RouteEngineerTickets {
		t.Fatalf("route = %q", h.current().Route())
	}
	if !strings.Contains(h.view(), "Engineer Tickets") {
		t.Errorf("view:\n%s", h.view())
	}
}

func TestInitWithoutStoredSessionStaysOnLogin(t *testing.T) {
	h := newHarness(t)
	h.drain(t, h.model.Init())
	if h.current().Route() != navigation.RouteLogin || h.current().notice != nil {
		t.Fatalf("route = %q, notice = %+v", h.current().Route(), h.current().notice)
	}
}

func TestUsersScreenFiltersWithoutRefetch(t *testing.T) {
	h := newHarness(t)
	h.backend.CreateUser(t, domain.RoleAdmin, "Ada Admin", "ada@example.com")
	h.backend.CreateUser(t, domain.RoleCustomer, "Cora Customer", "cora@example.com")
	h.login(t, domain.RoleAdmin, "ada@example.com")

	h.press(t, "down", "enter")
	if h.current().Route() != navigation.RouteAdminUsers {
		t.Fatalf("route = %q", h.current().Route())
	}
	if view := h.view(); !strings.Contains(view, "cora@example.com") || !strings.Contains(view, "ada@example.com") {
		t.Fatalf("unfiltered list:\n%s", view)
	}

	// all -> admin -> engineer
	h.press(t, "f", "f")
	if !strings.Contains(h.view(), "No users found") {
		t.Errorf("engineer filter should show the empty marker:\n%s", h.view())
	}
	h.press(t, "f")
	view := h.view()
	if !strings.Contains(view, "cora@example.com") || strings.Contains(view, "ada@example.com") {
		t.Errorf("customer filter:\n%s", view)
	}
	if n := h.backend.Requests(http.MethodGet, "/user/users"); n != 1 {
		t.Errorf("GET /user/users = %d, filtering must not refetch", n)
	}

	h.press(t, "esc")
	if h.current().Route() != navigation.RouteAdminDashboard {
		t.Errorf("esc should return to the dashboard, got %q", h.current().Route())
	}
}

func TestCategoryScreenAddRenameDelete(t *testing.T) {
	h := newHarness(t)
	h.backend.CreateUser(t, domain.RoleAdmin, "Ada Admin", "ada@example.com")
	h.login(t, domain.RoleAdmin, "ada@example.com")

	h.press(t, "down", "down", "enter")
	if !strings.Contains(h.view(), "No categories found") {
		t.Fatalf("view:\n%s", h.view())
	}

	h.press(t, "a")
	h.typeText(t, "Hardware")
	h.press(t, "enter")
	if h.current().notice != nil {
		t.Fatalf("create failed: %+v", h.current().notice)
	}
	h.press(t, "esc")
	if !strings.Contains(h.view(), "Hardware") {
		t.Fatalf("created category missing:\n%s", h.view())
	}

	h.press(t, "e")
	h.typeText(t, " Issues")
	h.press(t, "enter")
	if !strings.Contains(h.view(), "Hardware Issues") {
		t.Fatalf("rename missing:\n%s", h.view())
	}
	if _, idle := h.current().categories.controller.Edit().(console.Idle); !idle {
		t.Error("save should leave the row idle")
	}

	h.press(t, "d")
	if !strings.Contains(h.view(), `Delete category "Hardware Issues"?`) {
		t.Fatalf("missing confirmation prompt:\n%s", h.view())
	}
	h.press(t, "n")
	if n := h.backend.Requests(http.MethodDelete, "/issue/category/delete-category/1"); n != 0 {
		t.Fatalf("declined delete issued %d calls", n)
	}

	h.press(t, "d", "y")
	if !strings.Contains(h.view(), "No categories found") {
		t.Errorf("delete should empty the list:\n%s", h.view())
	}
}

func TestCustomerSubmitsTicket(t *testing.T) {
	h := newHarness(t)
	h.backend.CreateUser(t, domain.RoleCustomer, "Cora Customer", "cora@example.com")
	if err := h.backend.Server.Store.Categories.Create(context.Background(), &domain.IssueCategory{Name: "Printer"}); err != nil {
		t.Fatalf("seed category: %v", err)
	}
	h.login(t, domain.RoleCustomer, "cora@example.com")
	if h.current().Route() != navigation.RouteCustomerHome {
		t.Fatalf("route = %q", h.current().Route())
	}

	h.press(t, "enter")
	h.typeText(t, "printer jam")
	h.press(t, "enter")
	if h.current().notice == nil || !h.current().notice.failed {
		t.Fatal("submitting without a category should raise a notice")
	}
	if n := h.backend.Requests(http.MethodPost, "/tickets/tickets"); n != 0 {
		t.Fatalf("invalid form reached the server %d times", n)
	}
	h.press(t, "esc")

	h.press(t, "tab", "down", "enter")
	model := h.current()
	if model.notice == nil || model.notice.failed || !strings.Contains(model.notice.body, "Ticket #1 created") {
		t.Fatalf("notice = %+v", model.notice)
	}
	if model.ticket.description.Value() != "" || model.ticket.selected != -1 {
		t.Error("form should reset after a successful submission")
	}
}

func TestCustomerSignupReturnsToLogin(t *testing.T) {
	h := newHarness(t)

	h.press(t, "ctrl+n")
	if h.current().Route() != navigation.RouteCustomerSignup {
		t.Fatalf("route = %q", h.current().Route())
	}
	if strings.Contains(h.view(), "Role:") {
		t.Error("self signup should not offer a role selector")
	}
	for i, value := range []string{"Jane Doe", "jane@example.com", mockapitest.Password, "5551234567", "Berlin"} {
		if i > 0 {
			h.press(t, "tab")
		}
		h.typeText(t, value)
	}
	h.press(t, "enter")

	model := h.current()
	if model.notice == nil || model.notice.failed {
		t.Fatalf("notice = %+v", model.notice)
	}
	if model.Route() != navigation.RouteLogin {
		t.Fatalf("route = %q, want login", model.Route())
	}
	h.press(t, "enter")
	h.login(t, domain.RoleCustomer, "jane@example.com")
	if h.current().Route() != navigation.RouteCustomerHome {
		t.Errorf("new customer could not log in: %+v", h.current().notice)
	}
}

func TestSecondaryScreensRequireTheirRole(t *testing.T) {
	h := newHarness(t)
	h.backend.CreateUser(t, domain.RoleCustomer, "Cora Customer", "cora@example.com")
	h.login(t, domain.RoleCustomer, "cora@example.com")

	next, cmd := h.current().navigate(navigation.RouteAdminUsers)
	if cmd != nil {
		t.Error("denied navigation must not fetch")
	}
	model := next.(Model)
	if model.Route() != navigation.RouteCustomerHome || model.notice == nil {
		t.Errorf("route = %q, notice = %+v", model.Route(), model.notice)
	}
}

func TestLogoutClearsStoredToken(t *testing.T) {
	h := newHarness(t)
	h.backend.CreateUser(t, domain.RoleManager, "Max Manager", "max@example.com")
	h.login(t, domain.RoleManager, "max@example.com")
	if h.current().Route() != navigation.RouteManagerOverview {
		t.Fatalf("route = %q", h.current().Route())
	}

	h.press(t, "ctrl+x")

	if h.current().Route() != navigation.RouteLogin {
		t.Errorf("route = %q, want login", h.current().Route())
	}
	if token, _ := h.store.Load(context.Background()); token != "" {
		t.Error("logout should clear the stored token")
	}
}
