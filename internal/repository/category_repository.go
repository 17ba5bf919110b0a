package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/ticket-console/internal/domain"
)

type categoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository constructs the Postgres repository.
func NewCategoryRepository(pool *pgxpool.Pool) CategoryRepository {
	return &categoryRepository{pool: pool}
}

func (r *categoryRepository) Create(ctx context.Context, category *domain.IssueCategory) error {
	const query = `INSERT INTO issue_categories (category_name) VALUES ($1) RETURNING category_id`
	return mapPgError(r.pool.QueryRow(ctx, query, category.Name).Scan(&category.ID))
}

func (r *categoryRepository) Update(ctx context.Context, category *domain.IssueCategory) error {
	const query = `UPDATE issue_categories SET category_name=$1 WHERE category_id=$2`
	cmd, err := r.pool.Exec(ctx, query, category.Name, category.ID)
	if err != nil {
		return mapPgError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, id int) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM issue_categories WHERE category_id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id int) (*domain.IssueCategory, error) {
	const query = `SELECT category_id, category_name FROM issue_categories WHERE category_id=$1`
	var category domain.IssueCategory
	if err := r.pool.QueryRow(ctx, query, id).Scan(&category.ID, &category.Name); err != nil {
		return nil, mapPgError(err)
	}
	return &category, nil
}

func (r *categoryRepository) GetByName(ctx context.Context, name string) (*domain.IssueCategory, error) {
	const query = `SELECT category_id, category_name FROM issue_categories WHERE category_name=$1`
	var category domain.IssueCategory
	if err := r.pool.QueryRow(ctx, query, name).Scan(&category.ID, &category.Name); err != nil {
		return nil, mapPgError(err)
	}
	return &category, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]domain.IssueCategory, error) {
	rows, err := r.pool.Query(ctx, `SELECT category_id, category_name FROM issue_categories ORDER BY category_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []domain.IssueCategory{}
	for rows.Next() {
		var category domain.IssueCategory
		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}
