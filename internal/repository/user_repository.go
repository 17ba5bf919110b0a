package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/ticket-console/internal/domain"
)

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Create(ctx context.Context, account *Account) error {
	const query = `
        INSERT INTO users (name, email, password_hash, role, contact_number, location)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING user_id`

	err := r.pool.QueryRow(ctx, query,
		account.Name,
		account.Email,
		account.PasswordHash,
		string(account.Role),
		account.ContactNumber,
		account.Location,
	).Scan(&account.ID)
	return mapPgError(err)
}

func (r *userRepository) GetByID(ctx context.Context, id int) (*Account, error) {
	const query = `
        SELECT user_id, name, email, password_hash, role, contact_number, location
        FROM users WHERE user_id=$1`
	return r.getOne(ctx, query, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*Account, error) {
	const query = `
        SELECT user_id, name, email, password_hash, role, contact_number, location
        FROM users WHERE email=$1`
	return r.getOne(ctx, query, email)
}

func (r *userRepository) getOne(ctx context.Context, query string, arg any) (*Account, error) {
	var (
		account Account
		role    string
	)
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&account.ID,
		&account.Name,
		&account.Email,
		&account.PasswordHash,
		&role,
		&account.ContactNumber,
		&account.Location,
	); err != nil {
		return nil, mapPgError(err)
	}
	account.Role = domain.Role(role)
	return &account, nil
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	const query = `
        SELECT user_id, name, email, role, contact_number, location
        FROM users ORDER BY user_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		var (
			user domain.User
			role string
		)
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &role, &user.ContactNumber, &user.Location); err != nil {
			return nil, err
		}
		user.Role = domain.Role(role)
		users = append(users, user)
	}
	return users, rows.Err()
}
