package service

import (
	"context"
	"errors"
	"strings"

	"github.com/spec-kit/ticket-console/internal/domain"
	"github.com/spec-kit/ticket-console/internal/repository"
	apperrors "github.com/spec-kit/ticket-console/pkg/util"
)

// TicketService coordinates ticket intake.
type TicketService struct {
	tickets    repository.TicketRepository
	categories repository.CategoryRepository
}

// NewTicketService builds the service.
func NewTicketService(tickets repository.TicketRepository, categories repository.CategoryRepository) *TicketService {
	return &TicketService{tickets: tickets, categories: categories}
}

// Create records a new ticket raised by requester. Only customers raise
// tickets, and the category must exist.
func (s *TicketService) Create(ctx context.Context, requester domain.User, description string, categoryID int) (*domain.Ticket, error) {
	if requester.Role != domain.RoleCustomer {
		return nil, apperrors.NewForbidden("Only users can create tickets")
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, apperrors.NewValidationError("issue_description is required",
			map[string]any{"issue_description": "is required"})
	}
	if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewValidationError("unknown issue category",
				map[string]any{"issue_category_id": categoryID})
		}
		return nil, apperrors.NewInternalError(err)
	}

	ticket := &domain.Ticket{
		Description: description,
		CategoryID:  categoryID,
		Status:      domain.TicketStatusNew,
		CreatedBy:   requester.ID,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return ticket, nil
}

// ListMine returns the tickets requester raised.
func (s *TicketService) ListMine(ctx context.Context, requester domain.User) ([]domain.Ticket, error) {
	tickets, err := s.tickets.ListByCreator(ctx, requester.ID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return tickets, nil
}
