package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-console/internal/domain"
	"github.com/spec-kit/ticket-console/internal/events"
	apperrors "github.com/spec-kit/ticket-console/pkg/util"
)

// Manager holds the active session and mirrors its token into a
// TokenStore. It implements apiclient.TokenSource.
type Manager struct {
	store      TokenStore
	dispatcher events.Dispatcher
	logger     *zap.Logger

	mu      sync.RWMutex
	current *domain.Session
}

// NewManager builds a manager. dispatcher may be nil.
func NewManager(store TokenStore, dispatcher events.Dispatcher, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{store: store, dispatcher: dispatcher, logger: logger}
}

// Create persists token and makes it the active session.
func (m *Manager) Create(ctx context.Context, token string, role domain.Role) (*domain.Session, error) {
	if token == "" {
		return nil, errors.New("session token is empty")
	}
	if !role.Valid() {
		return nil, apperrors.NewUnknownRole(string(role))
	}
	if err := m.store.Save(ctx, token); err != nil {
		return nil, err
	}

	session := &domain.Session{Token: token, Role: role, CreatedAt: time.Now()}
	m.mu.Lock()
	m.current = session
	m.mu.Unlock()

	m.logger.Info("session created", zap.String("role", string(role)))
	m.publish(ctx, events.EventSessionCreated, role)
	copied := *session
	return &copied, nil
}

// Invalidate drops the active session and clears the store. It is safe to
// call without an active session.
func (m *Manager) Invalidate(ctx context.Context) error {
	m.mu.Lock()
	previous := m.current
	m.current = nil
	m.mu.Unlock()

	if err := m.store.Clear(ctx); err != nil {
		return err
	}
	if previous != nil {
		m.logger.Info("session invalidated", zap.String("role", string(previous.Role)))
		m.publish(ctx, events.EventSessionInvalidated, previous.Role)
	}
	return nil
}

// Current returns the active session.
func (m *Manager) Current() (domain.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return domain.Session{}, false
	}
	return *m.current, true
}

// Token returns the active bearer token or "".
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return ""
	}
	return m.current.Token
}

// StoredToken reads whatever token the store holds, active or not.
func (m *Manager) StoredToken(ctx context.Context) (string, error) {
	return m.store.Load(ctx)
}

func (m *Manager) publish(ctx context.Context, eventType events.EventType, role domain.Role) {
	if m.dispatcher == nil {
		return
	}
	_ = m.dispatcher.Publish(ctx, events.Event{
		Type:    eventType,
		Role:    role,
		Payload: events.SessionPayload{Role: role},
	})
}
