package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/spec-kit/ticket-console/internal/console"
	"github.com/spec-kit/ticket-console/internal/domain"
	"github.com/spec-kit/ticket-console/internal/navigation"
)

type enrollField int

const (
	enrollName enrollField = iota
	enrollEmail
	enrollPassword
	enrollRole
	enrollContact
	enrollLocation
)

var enrollLabels = map[enrollField]string{
	enrollName:     "Name",
	enrollEmail:    "Email",
	enrollPassword: "Password",
	enrollRole:     "Role",
	enrollContact:  "Contact number",
	enrollLocation: "Location",
}

type enrollScreen struct {
	form   *console.EnrollmentForm
	fields []enrollField
	focus  int
	role   int
	inputs map[enrollField]*textinput.Model
}

func newEnrollScreen(deps console.Deps, mode console.EnrollmentMode) *enrollScreen {
	screen := &enrollScreen{
		form:   console.NewEnrollmentForm(deps, mode),
		fields: []enrollField{enrollName, enrollEmail, enrollPassword, enrollRole, enrollContact, enrollLocation},
		inputs: map[enrollField]*textinput.Model{},
	}
	if mode == console.EnrollSelf {
		screen.fields = []enrollField{enrollName, enrollEmail, enrollPassword, enrollContact, enrollLocation}
	}
	for field, limit := range map[enrollField]int{enrollName: 50, enrollEmail: 254, enrollPassword: 72, enrollContact: 10, enrollLocation: 100} {
		input := newInput(strings.ToLower(enrollLabels[field]), limit)
		screen.inputs[field] = &input
	}
	screen.inputs[enrollPassword].EchoMode = textinput.EchoPassword
	screen.inputs[enrollPassword].EchoCharacter = '•'
	screen.setFocus(0)
	return screen
}

func (screen *enrollScreen) current() enrollField {
	return screen.fields[screen.focus]
}

func (screen *enrollScreen) setFocus(focus int) {
	screen.focus = (focus + len(screen.fields)) % len(screen.fields)
	for field, input := range screen.inputs {
		if field == screen.current() {
			input.Focus()
		} else {
			input.Blur()
		}
	}
}

func (screen *enrollScreen) reset() {
	for _, input := range screen.inputs {
		input.Reset()
	}
	screen.role = 0
	screen.setFocus(0)
}

// push copies the inputs into the form.
func (screen *enrollScreen) push() {
	roles := screen.form.Roles()
	screen.form.Update(domain.Enrollment{
		Name:          screen.inputs[enrollName].Value(),
		Email:         screen.inputs[enrollEmail].Value(),
		Password:      screen.inputs[enrollPassword].Value(),
		Role:          roles[screen.role%len(roles)],
		ContactNumber: screen.inputs[enrollContact].Value(),
		Location:      screen.inputs[enrollLocation].Value(),
	})
}

func (model Model) handleEnrollKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	screen := model.enroll
	selfService := screen.form.Mode() == console.EnrollSelf
	switch {
	case key.Matches(message, model.keys.Back):
		if selfService {
			model.route = navigation.RouteLogin
			return model, nil
		}
		return model.home()
	case key.Matches(message, model.keys.NextField):
		screen.setFocus(screen.focus + 1)
		return model, nil
	case key.Matches(message, model.keys.PrevField):
		screen.setFocus(screen.focus - 1)
		return model, nil
	case key.Matches(message, model.keys.Submit):
		if model.busy {
			return model, nil
		}
		screen.push()
		form, route := screen.form, model.route
		model.busy = true
		return model, model.run(func(ctx context.Context) tea.Msg {
			user, err := form.Submit(ctx)
			if err != nil {
				return actionMsg{route: route, err: err}
			}
			if selfService {
				return actionMsg{
					route: navigation.RouteCustomerSignup,
					text:  "Account created for " + user.Email + ". Log in to continue.",
					then:  navigation.RouteLogin,
				}
			}
			return actionMsg{
				route: navigation.RouteAdminCreate,
				text:  fmt.Sprintf("Created %s account for %s", user.Role, user.Email),
			}
		})
	}

	if screen.current() == enrollRole {
		roles := screen.form.Roles()
		switch {
		case key.Matches(message, model.keys.Right):
			screen.role = (screen.role + 1) % len(roles)
		case key.Matches(message, model.keys.Left):
			screen.role = (screen.role + len(roles) - 1) % len(roles)
		}
		screen.push()
		return model, nil
	}

	input := screen.inputs[screen.current()]
	updated, cmd := input.Update(message)
	*input = updated
	screen.push()
	return model, cmd
}

func (model Model) enrollView() string {
	screen := model.enroll
	var builder strings.Builder
	title := "Create New User"
	if screen.form.Mode() == console.EnrollSelf {
		title = "Customer Signup"
	}
	builder.WriteString(model.theme.header(title) + "\n\n")

	for i, field := range screen.fields {
		var value string
		if field == enrollRole {
			roles := screen.form.Roles()
			value = "< " + string(roles[screen.role%len(roles)]) + " >"
		} else {
			value = screen.inputs[field].View()
		}
		builder.WriteString(model.theme.row(fmt.Sprintf("%-15s %s", enrollLabels[field]+":", value), i == screen.focus) + "\n")
	}

	builder.WriteString("\n" + model.theme.help(model.keys.NextField, model.keys.PrevField, model.keys.Submit, model.keys.Back))
	return builder.String()
}
