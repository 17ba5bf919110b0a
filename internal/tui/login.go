package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/spec-kit/ticket-console/internal/console"
	"github.com/spec-kit/ticket-console/internal/domain"
	"github.com/spec-kit/ticket-console/internal/navigation"
)

const (
	loginFocusRole = iota
	loginFocusEmail
	loginFocusPassword
	loginFields
)

type loginScreen struct {
	role     int
	focus    int
	email    textinput.Model
	password textinput.Model
}

func newLoginScreen() loginScreen {
	screen := loginScreen{
		email:    newInput("email", 254),
		password: newInput("password", 72),
	}
	screen.password.EchoMode = textinput.EchoPassword
	screen.password.EchoCharacter = '•'
	return screen
}

func (screen *loginScreen) claimed() domain.Role {
	return domain.Roles[screen.role]
}

func (screen *loginScreen) setFocus(focus int) {
	screen.focus = (focus + loginFields) % loginFields
	screen.email.Blur()
	screen.password.Blur()
	switch screen.focus {
	case loginFocusEmail:
		screen.email.Focus()
	case loginFocusPassword:
		screen.password.Focus()
	}
}

func (screen *loginScreen) clearPassword() {
	screen.password.Reset()
}

func (model Model) handleLoginKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	login := &model.login
	switch {
	case key.Matches(message, model.keys.Submit):
		return model.submitLogin()
	case key.Matches(message, model.keys.Signup):
		model.enroll = newEnrollScreen(model.options.Console, console.EnrollSelf)
		model.route = navigation.RouteCustomerSignup
		return model, nil
	case key.Matches(message, model.keys.NextField), key.Matches(message, model.keys.Down):
		login.setFocus(login.focus + 1)
		return model, nil
	case key.Matches(message, model.keys.PrevField), key.Matches(message, model.keys.Up):
		login.setFocus(login.focus - 1)
		return model, nil
	}

	var cmd tea.Cmd
	switch login.focus {
	case loginFocusRole:
		switch {
		case key.Matches(message, model.keys.Right):
			login.role = (login.role + 1) % len(domain.Roles)
		case key.Matches(message, model.keys.Left):
			login.role = (login.role + len(domain.Roles) - 1) % len(domain.Roles)
		}
	case loginFocusEmail:
		login.email, cmd = login.email.Update(message)
	case loginFocusPassword:
		login.password, cmd = login.password.Update(message)
	}
	return model, cmd
}

func (model Model) submitLogin() (tea.Model, tea.Cmd) {
	if model.busy {
		return model, nil
	}
	resolver := model.options.Resolver
	claimed := model.login.claimed()
	credential := domain.Credential{
		Email:    strings.TrimSpace(model.login.email.Value()),
		Password: model.login.password.Value(),
	}
	model.busy = true
	return model, model.run(func(ctx context.Context) tea.Msg {
		current, route, err := resolver.Login(ctx, claimed, credential)
		return sessionMsg{session: current, route: route, err: err}
	})
}

func (model Model) loginView() string {
	login := model.login
	var builder strings.Builder
	builder.WriteString(model.theme.header("Support Console Login") + "\n\n")

	roles := make([]string, len(domain.Roles))
	for i, role := range domain.Roles {
		if i == login.role {
			roles[i] = "[" + string(role) + "]"
		} else {
			roles[i] = " " + string(role) + " "
		}
	}
	builder.WriteString(model.theme.row("Role:     "+strings.Join(roles, " "), login.focus == loginFocusRole) + "\n")
	builder.WriteString(model.theme.row("Email:    "+login.email.View(), login.focus == loginFocusEmail) + "\n")
	builder.WriteString(model.theme.row("Password: "+login.password.View(), login.focus == loginFocusPassword) + "\n\n")
	builder.WriteString(model.theme.help(model.keys.NextField, model.keys.Left, model.keys.Right, model.keys.Submit, model.keys.Signup, model.keys.Quit))
	return builder.String()
}
