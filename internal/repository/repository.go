package repository

import (
	"context"
	"embed"
	"errors"
	"io/fs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/ticket-console/internal/domain"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique column already holds the value.
	ErrDuplicate = errors.New("record already exists")
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrations returns the schema files for the Postgres store.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

// Account is a user together with its password hash. The hash never leaves
// the backend.
type Account struct {
	domain.User
	PasswordHash string
}

// UserRepository defines persistence access for accounts.
type UserRepository interface {
	Create(ctx context.Context, account *Account) error
	GetByID(ctx context.Context, id int) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	List(ctx context.Context) ([]domain.User, error)
}

// CategoryRepository defines persistence access for issue categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.IssueCategory) error
	Update(ctx context.Context, category *domain.IssueCategory) error
	Delete(ctx context.Context, id int) error
	GetByID(ctx context.Context, id int) (*domain.IssueCategory, error)
	GetByName(ctx context.Context, name string) (*domain.IssueCategory, error)
	List(ctx context.Context) ([]domain.IssueCategory, error)
}

// TicketRepository defines persistence access for tickets.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	ListByCreator(ctx context.Context, userID int) ([]domain.Ticket, error)
}

// Store groups the repositories the backend needs.
type Store struct {
	Users      UserRepository
	Categories CategoryRepository
	Tickets    TicketRepository
}

func mapPgError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}
