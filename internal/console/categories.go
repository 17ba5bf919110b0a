package console

import (
	"context"
	"errors"
	"sync"

	"github.com/spec-kit/ticket-console/internal/domain"
	"github.com/spec-kit/ticket-console/internal/events"
	"github.com/spec-kit/ticket-console/internal/inflight"
	apperrors "github.com/spec-kit/ticket-console/pkg/util"
)

// EditState is either Idle or Editing. At most one row is editable.
type EditState interface {
	isEditState()
}

// Idle means no row is selected.
type Idle struct{}

// Editing holds the selected row and its unsaved name.
type Editing struct {
	RowID int
	Draft string
}

func (Idle) isEditState()    {}
func (Editing) isEditState() {}

var (
	// ErrNotEditing is returned by SetDraft and Save while Idle.
	ErrNotEditing = errors.New("no category is being edited")
	// ErrNoPendingDelete is returned by ConfirmDelete without a prior
	// RequestDelete.
	ErrNoPendingDelete = errors.New("no delete awaiting confirmation")
)

// CategoryController drives the admin's category list: inline rename,
// create and confirmed delete. Every mutation re-fetches the collection
// instead of patching it locally.
type CategoryController struct {
	deps       Deps
	categories collection[domain.IssueCategory]
	guard      inflight.Guard

	mu            sync.Mutex
	edit          EditState
	newName       string
	pendingDelete *domain.IssueCategory
}

// NewCategoryController builds the controller in the Idle state.
func NewCategoryController(deps Deps) *CategoryController {
	return &CategoryController{deps: deps, edit: Idle{}}
}

// Load fetches the collection.
func (c *CategoryController) Load(ctx context.Context) error {
	err := c.categories.load(func() ([]domain.IssueCategory, error) {
		return c.deps.Client.ListCategories(ctx)
	})
	return c.deps.failed(ctx, "load_categories", err)
}

// State reports the load state and the last load error.
func (c *CategoryController) State() (ListState, error) {
	state, _, err := c.categories.snapshot()
	return state, err
}

// Categories returns the last loaded collection.
func (c *CategoryController) Categories() []domain.IssueCategory {
	_, items, _ := c.categories.snapshot()
	return items
}

// Empty reports a completed load with no categories.
func (c *CategoryController) Empty() bool {
	state, items, _ := c.categories.snapshot()
	return state == ListLoaded && len(items) == 0
}

func (c *CategoryController) find(id int) (domain.IssueCategory, bool) {
	for _, category := range c.Categories() {
		if category.ID == id {
			return category, true
		}
	}
	return domain.IssueCategory{}, false
}

// Edit returns the current edit state.
func (c *CategoryController) Edit() EditState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.edit
}

// BeginEdit selects row id with its persisted name as the draft. Any draft
// of a previously selected row is discarded.
func (c *CategoryController) BeginEdit(id int) error {
	category, ok := c.find(id)
	if !ok {
		return apperrors.NewNotFound("category", map[string]any{"category_id": id})
	}
	c.mu.Lock()
	c.edit = Editing{RowID: category.ID, Draft: category.Name}
	c.mu.Unlock()
	return nil
}

// SetDraft replaces the draft of the row being edited.
func (c *CategoryController) SetDraft(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	editing, ok := c.edit.(Editing)
	if !ok {
		return ErrNotEditing
	}
	editing.Draft = name
	c.edit = editing
	return nil
}

// Cancel returns to Idle without a request.
func (c *CategoryController) Cancel() {
	c.mu.Lock()
	c.edit = Idle{}
	c.mu.Unlock()
}

// Save sends the draft, returns to Idle whatever the outcome and re-fetches
// the collection. The update error, if any, is returned so the caller can
// surface it.
func (c *CategoryController) Save(ctx context.Context) error {
	release, err := c.guard.Begin("save_category")
	if err != nil {
		return err
	}
	defer release()

	c.mu.Lock()
	editing, ok := c.edit.(Editing)
	c.edit = Idle{}
	c.mu.Unlock()
	if !ok {
		return ErrNotEditing
	}

	previous, _ := c.find(editing.RowID)
	updateErr := c.deps.Client.UpdateCategory(ctx, editing.RowID, editing.Draft)
	if updateErr == nil {
		c.deps.publish(ctx, events.EventCategoryRenamed, events.CategoryPayload{
			CategoryID: editing.RowID,
			Name:       editing.Draft,
			OldName:    previous.Name,
		})
	}
	loadErr := c.Load(ctx)
	if updateErr != nil {
		return c.deps.failed(ctx, "save_category", updateErr)
	}
	return loadErr
}

// SetNewName sets the add-category input.
func (c *CategoryController) SetNewName(name string) {
	c.mu.Lock()
	c.newName = name
	c.mu.Unlock()
}

// NewName returns the add-category input.
func (c *CategoryController) NewName() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.newName
}

// Create posts the add-category input as typed; the server is the only
// validator. On success the input is cleared and the collection
// re-fetched. On failure the input is kept.
func (c *CategoryController) Create(ctx context.Context) error {
	release, err := c.guard.Begin("create_category")
	if err != nil {
		return err
	}
	defer release()

	name := c.NewName()
	category, err := c.deps.Client.CreateCategory(ctx, name)
	if err != nil {
		return c.deps.failed(ctx, "create_category", err)
	}
	c.SetNewName("")
	c.deps.publish(ctx, events.EventCategoryCreated, events.CategoryPayload{CategoryID: category.ID, Name: category.Name})
	return c.Load(ctx)
}

// RequestDelete marks row id for deletion. Nothing is sent until
// ConfirmDelete.
func (c *CategoryController) RequestDelete(id int) error {
	category, ok := c.find(id)
	if !ok {
		return apperrors.NewNotFound("category", map[string]any{"category_id": id})
	}
	c.mu.Lock()
	c.pendingDelete = &category
	c.mu.Unlock()
	return nil
}

// PendingDelete returns the category awaiting confirmation.
func (c *CategoryController) PendingDelete() (domain.IssueCategory, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pendingDelete == nil {
		return domain.IssueCategory{}, false
	}
	return *c.pendingDelete, true
}

// DeclineDelete drops the pending deletion without a request.
func (c *CategoryController) DeclineDelete() {
	c.mu.Lock()
	c.pendingDelete = nil
	c.mu.Unlock()
}

// ConfirmDelete deletes the pending category and re-fetches whatever the
// outcome.
func (c *CategoryController) ConfirmDelete(ctx context.Context) error {
	release, err := c.guard.Begin("delete_category")
	if err != nil {
		return err
	}
	defer release()

	c.mu.Lock()
	pending := c.pendingDelete
	c.pendingDelete = nil
	c.mu.Unlock()
	if pending == nil {
		return ErrNoPendingDelete
	}

	deleteErr := c.deps.Client.DeleteCategory(ctx, pending.ID)
	if deleteErr == nil {
		c.deps.publish(ctx, events.EventCategoryDeleted, events.CategoryPayload{CategoryID: pending.ID, Name: pending.Name})
	}
	loadErr := c.Load(ctx)
	if deleteErr != nil {
		return c.deps.failed(ctx, "delete_category", deleteErr)
	}
	return loadErr
}

// Busy reports whether any mutation is in flight.
func (c *CategoryController) Busy() bool {
	return c.guard.Busy("save_category") || c.guard.Busy("create_category") || c.guard.Busy("delete_category")
}
