package dto

import "github.com/spec-kit/ticket-console/internal/domain"

// CreateTicketRequest payload for POST /tickets/tickets.
type CreateTicketRequest struct {
	Description string `json:"issue_description"`
	CategoryID  int    `json:"issue_category_id"`
}

// TicketResponse is the wire shape of a created ticket.
type TicketResponse struct {
	ID          int    `json:"ticket_id"`
	Description string `json:"issue_description"`
	CategoryID  int    `json:"issue_category_id"`
	Status      string `json:"status"`
	CreatedBy   int    `json:"created_by"`
}

func (t TicketResponse) ToDomain() domain.Ticket {
	return domain.Ticket{
		ID:          t.ID,
		Description: t.Description,
		CategoryID:  t.CategoryID,
		Status:      domain.TicketStatus(t.Status),
		CreatedBy:   t.CreatedBy,
	}
}

func NewTicketResponse(t domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:          t.ID,
		Description: t.Description,
		CategoryID:  t.CategoryID,
		Status:      string(t.Status),
		CreatedBy:   t.CreatedBy,
	}
}
