package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-console/internal/events"
)

const defaultAuditCapacity = 50

// AuditService writes console activity to the log and keeps the most recent
// entries for display.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	capacity   int

	mu     sync.Mutex
	recent []events.Event
}

// NewAuditService creates the service. capacity <= 0 uses the default.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger, capacity int) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if capacity <= 0 {
		capacity = defaultAuditCapacity
	}
	return &AuditService{dispatcher: dispatcher, logger: logger, capacity: capacity}
}

// RegisterHandlers subscribes to every console event.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	for _, eventType := range []events.EventType{
		events.EventSessionCreated,
		events.EventSessionInvalidated,
		events.EventCategoryCreated,
		events.EventCategoryRenamed,
		events.EventCategoryDeleted,
		events.EventTicketSubmitted,
		events.EventUserEnrolled,
	} {
		a.dispatcher.Subscribe(eventType, a.handleActivity)
	}
	a.dispatcher.Subscribe(events.EventActionFailed, a.handleFailure)
}

func (a *AuditService) handleActivity(_ context.Context, event events.Event) error {
	a.logger.Info(string(event.Type),
		zap.String("event_id", event.ID),
		zap.String("role", string(event.Role)),
		zap.Any("payload", event.Payload))
	a.remember(event)
	return nil
}

func (a *AuditService) handleFailure(_ context.Context, event events.Event) error {
	a.logger.Warn(string(event.Type),
		zap.String("event_id", event.ID),
		zap.String("role", string(event.Role)),
		zap.Any("payload", event.Payload))
	a.remember(event)
	return nil
}

func (a *AuditService) remember(event events.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.recent = append(a.recent, event)
	if over := len(a.recent) - a.capacity; over > 0 {
		a.recent = append([]events.Event(nil), a.recent[over:]...)
	}
}

// Recent returns up to n of the latest events, newest first.
func (a *AuditService) Recent(n int) []events.Event {
	a.mu.Lock()
	defer a.mu.Unlock()
	if n <= 0 || n > len(a.recent) {
		n = len(a.recent)
	}
	out := make([]events.Event, 0, n)
	for i := len(a.recent) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, a.recent[i])
	}
	return out
}
