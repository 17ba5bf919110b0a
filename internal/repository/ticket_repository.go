package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/ticket-console/internal/domain"
)

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (issue_description, issue_category_id, status, created_by)
        VALUES ($1, $2, $3, $4)
        RETURNING ticket_id`
	return mapPgError(r.pool.QueryRow(ctx, query,
		ticket.Description,
		ticket.CategoryID,
		string(ticket.Status),
		ticket.CreatedBy,
	).Scan(&ticket.ID))
}

func (r *ticketRepository) ListByCreator(ctx context.Context, userID int) ([]domain.Ticket, error) {
	const query = `
        SELECT ticket_id, issue_description, COALESCE(issue_category_id, 0), status, created_by
        FROM tickets WHERE created_by=$1 ORDER BY ticket_id`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := []domain.Ticket{}
	for rows.Next() {
		var (
			ticket domain.Ticket
			status string
		)
		if err := rows.Scan(&ticket.ID, &ticket.Description, &ticket.CategoryID, &status, &ticket.CreatedBy); err != nil {
			return nil, err
		}
		ticket.Status = domain.TicketStatus(status)
		tickets = append(tickets, ticket)
	}
	return tickets, rows.Err()
}

// NewPostgresStore wires the Postgres repositories.
func NewPostgresStore(pool *pgxpool.Pool) *Store {
	return &Store{
		Users:      NewUserRepository(pool),
		Categories: NewCategoryRepository(pool),
		Tickets:    NewTicketRepository(pool),
	}
}
