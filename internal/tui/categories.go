package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/spec-kit/ticket-console/internal/console"
	"github.com/spec-kit/ticket-console/internal/navigation"
)

type categoryMode int

const (
	categoryBrowse categoryMode = iota
	categoryAdding
	categoryRenaming
)

type categoryScreen struct {
	controller *console.CategoryController
	cursor     int
	mode       categoryMode
	input      textinput.Model
}

func newCategoryScreen(deps console.Deps) *categoryScreen {
	return &categoryScreen{
		controller: console.NewCategoryController(deps),
		input:      newInput("category name", 100),
	}
}

// syncInput re-reads the add input after a create; a failed create keeps
// what was typed.
func (screen *categoryScreen) syncInput() {
	if screen.mode == categoryAdding {
		screen.input.SetValue(screen.controller.NewName())
	}
	if count := len(screen.controller.Categories()); screen.cursor >= count {
		screen.cursor = max(count-1, 0)
	}
}

func (screen *categoryScreen) browse() {
	screen.mode = categoryBrowse
	screen.input.Blur()
	screen.input.Reset()
}

func loadCategories(controller *console.CategoryController) func(ctx context.Context) tea.Msg {
	return func(ctx context.Context) tea.Msg {
		return loadedMsg{route: navigation.RouteAdminCategory, err: controller.Load(ctx)}
	}
}

func (model Model) handleCategoryKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	screen := model.categories
	controller := screen.controller

	if _, pending := controller.PendingDelete(); pending {
		switch {
		case key.Matches(message, model.keys.Confirm):
			model.busy = true
			return model, model.run(func(ctx context.Context) tea.Msg {
				return actionMsg{route: navigation.RouteAdminCategory, err: controller.ConfirmDelete(ctx)}
			})
		case key.Matches(message, model.keys.Decline):
			controller.DeclineDelete()
		}
		return model, nil
	}

	switch screen.mode {
	case categoryRenaming:
		switch {
		case key.Matches(message, model.keys.Back):
			controller.Cancel()
			screen.browse()
			return model, nil
		case key.Matches(message, model.keys.Submit):
			// The row leaves edit mode right away; the outcome arrives later.
			screen.browse()
			model.busy = true
			return model, model.run(func(ctx context.Context) tea.Msg {
				return actionMsg{route: navigation.RouteAdminCategory, err: controller.Save(ctx)}
			})
		}
		var cmd tea.Cmd
		screen.input, cmd = screen.input.Update(message)
		if err := controller.SetDraft(screen.input.Value()); err != nil {
			screen.browse()
		}
		return model, cmd

	case categoryAdding:
		switch {
		case key.Matches(message, model.keys.Back):
			screen.browse()
			return model, nil
		case key.Matches(message, model.keys.Submit):
			if model.busy {
				return model, nil
			}
			model.busy = true
			return model, model.run(func(ctx context.Context) tea.Msg {
				return actionMsg{route: navigation.RouteAdminCategory, err: controller.Create(ctx)}
			})
		}
		var cmd tea.Cmd
		screen.input, cmd = screen.input.Update(message)
		controller.SetNewName(screen.input.Value())
		return model, cmd
	}

	categories := controller.Categories()
	switch {
	case key.Matches(message, model.keys.Back):
		return model.home()
	case key.Matches(message, model.keys.Logout):
		return model.logout()
	case key.Matches(message, model.keys.Up):
		if screen.cursor > 0 {
			screen.cursor--
		}
	case key.Matches(message, model.keys.Down):
		if screen.cursor < len(categories)-1 {
			screen.cursor++
		}
	case key.Matches(message, model.keys.Refresh):
		return model, model.run(loadCategories(controller))
	case key.Matches(message, model.keys.Add):
		screen.mode = categoryAdding
		screen.input.SetValue(controller.NewName())
		screen.input.Focus()
	case key.Matches(message, model.keys.Edit):
		if screen.cursor < len(categories) {
			selected := categories[screen.cursor]
			if err := controller.BeginEdit(selected.ID); err != nil {
				model.fail("Cannot rename", err)
				return model, nil
			}
			screen.mode = categoryRenaming
			screen.input.SetValue(selected.Name)
			screen.input.CursorEnd()
			screen.input.Focus()
		}
	case key.Matches(message, model.keys.Delete):
		if screen.cursor < len(categories) {
			if err := controller.RequestDelete(categories[screen.cursor].ID); err != nil {
				model.fail("Cannot delete", err)
			}
		}
	}
	return model, nil
}

func (model Model) categoryView() string {
	screen := model.categories
	controller := screen.controller
	var builder strings.Builder
	builder.WriteString(model.theme.header("Issue Categories") + "\n\n")

	state, err := controller.State()
	switch {
	case state == console.ListLoading:
		builder.WriteString(model.theme.faint("Loading categories...") + "\n")
	case state == console.ListFailed:
		builder.WriteString(model.theme.failure("Failed to load categories: "+err.Error()) + "\n")
	case controller.Empty():
		builder.WriteString(model.theme.faint("No categories found") + "\n")
	default:
		editing, _ := controller.Edit().(console.Editing)
		for i, category := range controller.Categories() {
			label := fmt.Sprintf("%-4d %s", category.ID, category.Name)
			if screen.mode == categoryRenaming && editing.RowID == category.ID {
				label = fmt.Sprintf("%-4d %s", category.ID, screen.input.View())
			}
			builder.WriteString(model.theme.row(label, i == screen.cursor && screen.mode != categoryAdding) + "\n")
		}
	}

	builder.WriteString("\n")
	if screen.mode == categoryAdding {
		builder.WriteString(model.theme.row("New category: "+screen.input.View(), true) + "\n")
	}

	if pending, ok := controller.PendingDelete(); ok {
		builder.WriteString("\n" + model.theme.failure(fmt.Sprintf("Delete category %q? (y/n)", pending.Name)) + "\n")
		builder.WriteString(model.theme.help(model.keys.Confirm, model.keys.Decline))
		return builder.String()
	}

	switch screen.mode {
	case categoryBrowse:
		builder.WriteString(model.theme.help(model.keys.Up, model.keys.Down, model.keys.Add, model.keys.Edit, model.keys.Delete, model.keys.Refresh, model.keys.Back))
	default:
		builder.WriteString(model.theme.help(model.keys.Submit, model.keys.Back))
	}
	return builder.String()
}
