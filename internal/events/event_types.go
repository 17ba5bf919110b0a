package events

import (
	"time"

	"github.com/spec-kit/ticket-console/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSessionCreated     EventType = "session_created"
	EventSessionInvalidated EventType = "session_invalidated"
	EventCategoryCreated    EventType = "category_created"
	EventCategoryRenamed    EventType = "category_renamed"
	EventCategoryDeleted    EventType = "category_deleted"
	EventTicketSubmitted    EventType = "ticket_submitted"
	EventUserEnrolled       EventType = "user_enrolled"
	EventActionFailed       EventType = "action_failed"
)

// Event represents something the console did on the user's behalf.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Role      domain.Role `json:"role,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// SessionPayload payload.
type SessionPayload struct {
	Role domain.Role `json:"role"`
}

// CategoryPayload payload.
type CategoryPayload struct {
	CategoryID int    `json:"category_id,omitempty"`
	Name       string `json:"name"`
	OldName    string `json:"old_name,omitempty"`
}

// TicketSubmittedPayload payload.
type TicketSubmittedPayload struct {
	TicketID   int `json:"ticket_id"`
	CategoryID int `json:"category_id"`
}

// UserEnrolledPayload payload.
type UserEnrolledPayload struct {
	UserID int         `json:"user_id"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
}

// ActionFailedPayload payload.
type ActionFailedPayload struct {
	Action string `json:"action"`
	Code   string `json:"code"`
	Error  string `json:"error"`
}
