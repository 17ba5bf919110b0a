// Package console holds the operator-facing controllers: list views, the
// inline-edit category controller and the intake forms. Each controller owns
// its own collection and re-fetches it from the API; nothing is cached
// across screens.
package console

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-console/internal/apiclient"
	"github.com/spec-kit/ticket-console/internal/domain"
	"github.com/spec-kit/ticket-console/internal/events"
	apperrors "github.com/spec-kit/ticket-console/pkg/util"
)

// ListState tracks a collection's load lifecycle.
type ListState int

const (
	ListLoading ListState = iota
	ListLoaded
	ListFailed
)

func (s ListState) String() string {
	switch s {
	case ListLoading:
		return "loading"
	case ListLoaded:
		return "loaded"
	case ListFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// SessionSource exposes the active session, if any.
type SessionSource interface {
	Current() (domain.Session, bool)
}

// Deps are shared by every controller. Dispatcher, Sessions and Logger are
// optional.
type Deps struct {
	Client     *apiclient.Client
	Dispatcher events.Dispatcher
	Sessions   SessionSource
	Logger     *zap.Logger
}

func (d Deps) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

func (d Deps) role() domain.Role {
	if d.Sessions == nil {
		return domain.RoleNone
	}
	session, ok := d.Sessions.Current()
	if !ok {
		return domain.RoleNone
	}
	return session.Role
}

func (d Deps) publish(ctx context.Context, eventType events.EventType, payload any) {
	if d.Dispatcher == nil {
		return
	}
	if err := d.Dispatcher.Publish(ctx, events.Event{Type: eventType, Role: d.role(), Payload: payload}); err != nil {
		d.logger().Warn("event handler failed", zap.String("event", string(eventType)), zap.Error(err))
	}
}

// failed logs err and publishes action_failed. It returns err unchanged.
func (d Deps) failed(ctx context.Context, action string, err error) error {
	if err == nil {
		return nil
	}
	d.logger().Warn("action failed", zap.String("action", action), zap.Error(err))
	d.publish(ctx, events.EventActionFailed, events.ActionFailedPayload{
		Action: action,
		Code:   apperrors.CodeOf(err),
		Error:  err.Error(),
	})
	return err
}

// collection is the shared load bookkeeping of the list views.
type collection[T any] struct {
	mu    sync.RWMutex
	state ListState
	items []T
	err   error
}

func (c *collection[T]) load(fetch func() ([]T, error)) error {
	c.mu.Lock()
	c.state = ListLoading
	c.mu.Unlock()

	items, err := fetch()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state, c.err = ListFailed, err
		return err
	}
	c.state, c.items, c.err = ListLoaded, items, nil
	return nil
}

func (c *collection[T]) snapshot() (ListState, []T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state, append([]T(nil), c.items...), c.err
}
