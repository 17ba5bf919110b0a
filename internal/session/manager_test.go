package session

import (
	"context"
	"sync"
	"testing"

	"github.com/spec-kit/ticket-console/internal/domain"
	"github.com/spec-kit/ticket-console/internal/events"
	apperrors "github.com/spec-kit/ticket-console/pkg/util"
)

type memoryStore struct {
	mu    sync.Mutex
	token string
	saves int
}

func (m *memoryStore) Load(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *memoryStore) Save(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.saves++
	return nil
}

func (m *memoryStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

func (m *memoryStore) stored() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func TestManagerLifecycle(t *testing.T) {
	ctx := context.Background()
	store := &memoryStore{}
	dispatcher := events.NewInMemoryDispatcher()
	var seen []events.EventType
	for _, et := range []events.EventType{events.EventSessionCreated, events.EventSessionInvalidated} {
		dispatcher.Subscribe(et, func(_ context.Context, e events.Event) error {
			seen = append(seen, e.Type)
			return nil
		})
	}
	manager := NewManager(store, dispatcher, nil)

	if manager.Token() != "" {
		t.Fatal("no token before Create")
	}
	if _, ok := manager.Current(); ok {
		t.Fatal("no session before Create")
	}

	session, err := manager.Create(ctx, "tok", domain.RoleManager)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if session.Role != domain.RoleManager || manager.Token() != "tok" || store.stored() != "tok" {
		t.Fatalf("session = %+v, stored = %q", session, store.stored())
	}

	if err := manager.Invalidate(ctx); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if manager.Token() != "" || store.stored() != "" {
		t.Error("Invalidate should drop the token everywhere")
	}
	if err := manager.Invalidate(ctx); err != nil {
		t.Fatalf("second Invalidate: %v", err)
	}

	want := []events.EventType{events.EventSessionCreated, events.EventSessionInvalidated}
	if len(seen) != len(want) || seen[0] != want[0] || seen[1] != want[1] {
		t.Errorf("events = %v, want %v", seen, want)
	}
}

func TestManagerCreateRejectsBadInput(t *testing.T) {
	manager := NewManager(&memoryStore{}, nil, nil)
	if _, err := manager.Create(context.Background(), "", domain.RoleAdmin); err == nil {
		t.Error("empty token should be rejected")
	}
	if _, err := manager.Create(context.Background(), "tok", domain.Role("root")); !apperrors.IsCode(err, apperrors.CodeUnknownRole) {
		t.Errorf("err = %v, want UNKNOWN_ROLE", err)
	}
}
