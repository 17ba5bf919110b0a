package console

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/spec-kit/ticket-console/internal/domain"
	"github.com/spec-kit/ticket-console/internal/events"
	"github.com/spec-kit/ticket-console/internal/inflight"
	apperrors "github.com/spec-kit/ticket-console/pkg/util"
	"github.com/spec-kit/ticket-console/pkg/validation"
)

// ticketInput is what the form validates before anything is sent.
type ticketInput struct {
	Description string `json:"issue_description" validate:"required"`
	CategoryID  string `json:"issue_category_id" validate:"required,number"`
}

// TicketForm is the customer's intake form: a description and a category
// picked from the loaded list.
type TicketForm struct {
	deps       Deps
	categories collection[domain.IssueCategory]
	guard      inflight.Guard

	mu          sync.Mutex
	description string
	categoryID  string
}

// NewTicketForm builds an empty form. Call Load on screen entry.
func NewTicketForm(deps Deps) *TicketForm {
	return &TicketForm{deps: deps}
}

// Load fetches the categories offered by the selector.
func (f *TicketForm) Load(ctx context.Context) error {
	err := f.categories.load(func() ([]domain.IssueCategory, error) {
		return f.deps.Client.ListCategories(ctx)
	})
	return f.deps.failed(ctx, "load_categories", err)
}

// State reports the category load state.
func (f *TicketForm) State() (ListState, error) {
	state, _, err := f.categories.snapshot()
	return state, err
}

// Categories returns the selectable categories.
func (f *TicketForm) Categories() []domain.IssueCategory {
	_, items, _ := f.categories.snapshot()
	return items
}

// SetDescription sets the description input.
func (f *TicketForm) SetDescription(description string) {
	f.mu.Lock()
	f.description = description
	f.mu.Unlock()
}

// SetCategory sets the selected category id as entered; "" means none.
func (f *TicketForm) SetCategory(id string) {
	f.mu.Lock()
	f.categoryID = id
	f.mu.Unlock()
}

// Values returns the current inputs.
func (f *TicketForm) Values() (description, categoryID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.description, f.categoryID
}

// Submit validates the inputs and sends one create call. It returns the
// server-assigned ticket id and resets the form on success; on failure the
// inputs are kept.
func (f *TicketForm) Submit(ctx context.Context) (int, error) {
	release, err := f.guard.Begin("submit_ticket")
	if err != nil {
		return 0, err
	}
	defer release()

	description, rawCategory := f.Values()
	in := ticketInput{
		Description: strings.TrimSpace(description),
		CategoryID:  strings.TrimSpace(rawCategory),
	}
	if err := validation.Check(in); err != nil {
		return 0, err
	}
	categoryID, err := strconv.Atoi(in.CategoryID)
	if err != nil || !f.offers(categoryID) {
		return 0, apperrors.NewValidationError("please select a valid issue category",
			map[string]any{"issue_category_id": rawCategory})
	}

	ticket, err := f.deps.Client.CreateTicket(ctx, in.Description, categoryID)
	if err != nil {
		return 0, f.deps.failed(ctx, "submit_ticket", err)
	}

	f.mu.Lock()
	f.description, f.categoryID = "", ""
	f.mu.Unlock()
	f.deps.publish(ctx, events.EventTicketSubmitted, events.TicketSubmittedPayload{TicketID: ticket.ID, CategoryID: categoryID})
	return ticket.ID, nil
}

func (f *TicketForm) offers(id int) bool {
	for _, category := range f.Categories() {
		if category.ID == id {
			return true
		}
	}
	return false
}
