package events

import (
	"context"
	"errors"
	"testing"
)

func TestPublishFillsIDAndTimestamp(t *testing.T) {
	d := NewInMemoryDispatcher()
	var got Event
	d.Subscribe(EventCategoryCreated, func(_ context.Context, e Event) error {
		got = e
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventCategoryCreated}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if got.ID == "" || got.Timestamp.IsZero() {
		t.Errorf("event not stamped: %+v", got)
	}
}

func TestPublishRunsAllHandlersAndJoinsErrors(t *testing.T) {
	d := NewInMemoryDispatcher()
	calls := 0
	boom := errors.New("boom")
	d.Subscribe(EventTicketSubmitted, func(context.Context, Event) error {
		calls++
		return boom
	})
	d.Subscribe(EventTicketSubmitted, func(context.Context, Event) error {
		calls++
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventTicketSubmitted})
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestPublishWithoutSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	if err := d.Publish(context.Background(), Event{Type: EventSessionCreated}); err != nil {
		t.Errorf("Publish: %v", err)
	}
}
