package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-console/internal/api/dto"
	"github.com/spec-kit/ticket-console/internal/auth"
	"github.com/spec-kit/ticket-console/internal/service"
	apperrors "github.com/spec-kit/ticket-console/pkg/util"
)

// TicketsHandler manages customer ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// Create POST /tickets/tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Not authenticated")
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.service.Create(c.UserContext(), principal.User, req.Description, req.CategoryID)
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, "Ticket created successfully", dto.NewTicketResponse(*ticket))
}

// ListMine GET /tickets/tickets.
func (h *TicketsHandler) ListMine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Not authenticated")
	}
	tickets, err := h.service.ListMine(c.UserContext(), principal.User)
	if err != nil {
		return err
	}
	resp := make([]dto.TicketResponse, 0, len(tickets))
	for _, ticket := range tickets {
		resp = append(resp, dto.NewTicketResponse(ticket))
	}
	return success(c, http.StatusOK, "Tickets fetched successfully", resp)
}
