package service

import (
	"context"
	"testing"

	"github.com/spec-kit/ticket-console/internal/domain"
	"github.com/spec-kit/ticket-console/internal/events"
)

func TestAuditServiceKeepsRecentNewestFirst(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	audit := NewAuditService(dispatcher, nil, 2)
	audit.RegisterHandlers()

	ctx := context.Background()
	for _, name := range []string{"a", "b", "c"} {
		if err := dispatcher.Publish(ctx, events.Event{
			Type:    events.EventCategoryCreated,
			Role:    domain.RoleAdmin,
			Payload: events.CategoryPayload{Name: name},
		}); err != nil {
			t.Fatalf("Publish: %v", err)
		}
	}

	recent := audit.Recent(10)
	if len(recent) != 2 {
		t.Fatalf("len(Recent) = %d, want capacity 2", len(recent))
	}
	if got := recent[0].Payload.(events.CategoryPayload).Name; got != "c" {
		t.Errorf("newest = %q, want c", got)
	}
	if got := recent[1].Payload.(events.CategoryPayload).Name; got != "b" {
		t.Errorf("second = %q, want b", got)
	}
	if recent[0].ID == "" {
		t.Error("dispatcher should stamp event ids")
	}
}

func TestAuditServiceRecordsFailures(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	audit := NewAuditService(dispatcher, nil, 0)
	audit.RegisterHandlers()

	_ = dispatcher.Publish(context.Background(), events.Event{
		Type:    events.EventActionFailed,
		Payload: events.ActionFailedPayload{Action: "save_category", Code: "SERVER_REJECTED"},
	})
	if recent := audit.Recent(1); len(recent) != 1 || recent[0].Type != events.EventActionFailed {
		t.Fatalf("Recent = %+v", recent)
	}
}
