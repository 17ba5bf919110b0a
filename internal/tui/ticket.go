package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/spec-kit/ticket-console/internal/console"
	"github.com/spec-kit/ticket-console/internal/navigation"
)

const (
	ticketFocusDescription = iota
	ticketFocusCategory
	ticketFields
)

type ticketScreen struct {
	form        *console.TicketForm
	focus       int
	description textinput.Model
	// selected indexes the loaded categories; -1 is "none selected".
	selected int
}

func newTicketScreen(deps console.Deps) *ticketScreen {
	screen := &ticketScreen{
		form:        console.NewTicketForm(deps),
		description: newInput("describe the issue", 1000),
		selected:    -1,
	}
	screen.description.Focus()
	return screen
}

func (screen *ticketScreen) reset() {
	screen.description.Reset()
	screen.selected = -1
	screen.setFocus(ticketFocusDescription)
}

// syncSelection drops a selection the reloaded list no longer offers.
func (screen *ticketScreen) syncSelection() {
	if screen.selected >= len(screen.form.Categories()) {
		screen.selected = -1
		screen.form.SetCategory("")
	}
}

func (screen *ticketScreen) setFocus(focus int) {
	screen.focus = (focus + ticketFields) % ticketFields
	if screen.focus == ticketFocusDescription {
		screen.description.Focus()
	} else {
		screen.description.Blur()
	}
}

func (screen *ticketScreen) cycleCategory(step int) {
	categories := screen.form.Categories()
	if len(categories) == 0 {
		return
	}
	// -1 takes part in the cycle so a selection can be cleared.
	count := len(categories) + 1
	screen.selected = (screen.selected+1+step+count)%count - 1
	if screen.selected < 0 {
		screen.form.SetCategory("")
		return
	}
	screen.form.SetCategory(strconv.Itoa(categories[screen.selected].ID))
}

func loadTicketForm(form *console.TicketForm) func(ctx context.Context) tea.Msg {
	return func(ctx context.Context) tea.Msg {
		return loadedMsg{route: navigation.RouteCustomerTicket, err: form.Load(ctx)}
	}
}

func (model Model) handleTicketKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	screen := model.ticket
	switch {
	case key.Matches(message, model.keys.Back):
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
		form := screen.form
		model.busy = true
		return model, model.run(func(ctx context.Context) tea.Msg {
			ticketID, err := form.Submit(ctx)
			return actionMsg{
				route: navigation.RouteCustomerTicket,
				text:  fmt.Sprintf("Ticket #%d created", ticketID),
				err:   err,
			}
		})
	}

	if screen.focus == ticketFocusCategory {
		switch {
		case key.Matches(message, model.keys.Down), key.Matches(message, model.keys.Right):
			screen.cycleCategory(1)
		case key.Matches(message, model.keys.Up), key.Matches(message, model.keys.Left):
			screen.cycleCategory(-1)
		}
		return model, nil
	}

	var cmd tea.Cmd
	screen.description, cmd = screen.description.Update(message)
	screen.form.SetDescription(screen.description.Value())
	return model, cmd
}

func (model Model) ticketView() string {
	screen := model.ticket
	var builder strings.Builder
	builder.WriteString(model.theme.header("Create New Ticket") + "\n\n")
	builder.WriteString(model.theme.row("Description: "+screen.description.View(), screen.focus == ticketFocusDescription) + "\n")

	category := "(select a category)"
	state, err := screen.form.State()
	switch {
	case state == console.ListLoading:
		category = "loading..."
	case state == console.ListFailed:
		category = model.theme.failure("unavailable: " + err.Error())
	case len(screen.form.Categories()) == 0:
		category = "no categories available"
	case screen.selected >= 0 && screen.selected < len(screen.form.Categories()):
		category = "< " + screen.form.Categories()[screen.selected].Name + " >"
	}
	builder.WriteString(model.theme.row("Category:    "+category, screen.focus == ticketFocusCategory) + "\n\n")
	builder.WriteString(model.theme.help(model.keys.NextField, model.keys.Down, model.keys.Submit, model.keys.Back))
	return builder.String()
}
