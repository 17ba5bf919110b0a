package domain

// TicketStatus enumerates lifecycle states reported by the backend.
type TicketStatus string

const (
	TicketStatusNew        TicketStatus = "New"
	TicketStatusAssigned   TicketStatus = "Assigned"
	TicketStatusInProgress TicketStatus = "In Progress"
	TicketStatusOnHold     TicketStatus = "On Hold"
	TicketStatusResolved   TicketStatus = "Resolved"
	TicketStatusClosed     TicketStatus = "Closed"
	TicketStatusReopened   TicketStatus = "Reopened"
)

// Ticket is a support request raised by a customer.
type Ticket struct {
	ID          int
	Description string
	CategoryID  int
	Status      TicketStatus
	CreatedBy   int
}
