package console

import (
	"context"

	"github.com/spec-kit/ticket-console/internal/domain"
)

// UserDirectory is the admin's read-only user list with a client-side role
// filter.
type UserDirectory struct {
	deps  Deps
	users collection[domain.User]
}

// NewUserDirectory builds the directory. Call Load on screen entry.
func NewUserDirectory(deps Deps) *UserDirectory {
	return &UserDirectory{deps: deps}
}

// Load fetches every user.
func (d *UserDirectory) Load(ctx context.Context) error {
	err := d.users.load(func() ([]domain.User, error) {
		return d.deps.Client.ListUsers(ctx)
	})
	return d.deps.failed(ctx, "load_users", err)
}

// State reports the load state and the last load error.
func (d *UserDirectory) State() (ListState, error) {
	state, _, err := d.users.snapshot()
	return state, err
}

// Users returns the users matching role; RoleNone returns all of them.
// Filtering never re-fetches.
func (d *UserDirectory) Users(role domain.Role) []domain.User {
	_, users, _ := d.users.snapshot()
	return FilterUsers(users, role)
}

// Empty reports a completed load that yields no users for role, as opposed
// to a load still in progress.
func (d *UserDirectory) Empty(role domain.Role) bool {
	state, users, _ := d.users.snapshot()
	return state == ListLoaded && len(FilterUsers(users, role)) == 0
}

// FilterUsers returns the users whose role equals role, in their original
// order. RoleNone returns every user.
func FilterUsers(users []domain.User, role domain.Role) []domain.User {
	if role == domain.RoleNone {
		return append([]domain.User(nil), users...)
	}
	out := make([]domain.User, 0, len(users))
	for _, user := range users {
		if user.Role == role {
			out = append(out, user)
		}
	}
	return out
}
