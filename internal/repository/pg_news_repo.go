package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/newsdesk/news-api/internal/domain"
)

type pgNewsRepository struct {
	pool *pgxpool.Pool
}

// NewPgNewsRepository returns a NewsRepository backed by PostgreSQL.
func NewPgNewsRepository(pool *pgxpool.Pool) NewsRepository {
	return &pgNewsRepository{pool: pool}
}

func (r *pgNewsRepository) Create(ctx context.Context, n *domain.News) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO news (id, title, description, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5)`,
		n.ID, n.Title, n.Description, n.CreatedAt, n.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert news: %w", err)
	}
	return nil
}

func (r *pgNewsRepository) GetByID(ctx context.Context, id string) (*domain.News, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, title, description, created_at, updated_at
		FROM news WHERE id = $1`, id)

	n, err := scanNews(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("news with id %s: %w", id, domain.ErrNotFound)
	}
	return n, err
}

func (r *pgNewsRepository) List(ctx context.Context, f domain.ListFilter) ([]*domain.News, int, error) {
	where, args := buildListWhere(f)
	offset := (f.Page - 1) * f.Limit

	// Count total matching rows for pagination metadata.
	var total int
	countQuery := "SELECT COUNT(*) FROM news" + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count news: %w", err)
	}

	// Append pagination args after the WHERE args.
	args = append(args, f.Limit, offset)
	limitPlaceholder := fmt.Sprintf("$%d", len(args)-1)
	offsetPlaceholder := fmt.Sprintf("$%d", len(args))

	query := fmt.Sprintf(`
		SELECT id, title, description, created_at, updated_at
		FROM news%s
		ORDER BY created_at DESC
		LIMIT %s OFFSET %s`, where, limitPlaceholder, offsetPlaceholder)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list news: %w", err)
	}
	defer rows.Close()

	var items []*domain.News
	for rows.Next() {
		n, err := scanNews(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, n)
	}
	return items, total, rows.Err()
}

func (r *pgNewsRepository) Update(ctx context.Context, n *domain.News) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE news
		SET title = $1, description = $2, updated_at = $3
		WHERE id = $4`,
		n.Title, n.Description, n.UpdatedAt, n.ID,
	)
	if err != nil {
		return fmt.Errorf("update news: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("news with id %s: %w", n.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *pgNewsRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM news WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete news: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("news with id %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ---- helpers ----

// scanNews reads a single news row from any pgx row type.
func scanNews(row pgx.Row) (*domain.News, error) {
	var n domain.News
	err := row.Scan(&n.ID, &n.Title, &n.Description, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// buildListWhere builds a parameterised WHERE clause from a ListFilter.
// Filters are substring matches with plain LIKE semantics.
func buildListWhere(f domain.ListFilter) (string, []any) {
	var conditions []string
	var args []any

	add := func(condition string, val any) {
		args = append(args, val)
		conditions = append(conditions, fmt.Sprintf(condition, len(args)))
	}

	if f.Title != "" {
		add("title LIKE $%d", "%"+f.Title+"%")
	}
	if f.Description != "" {
		add("description LIKE $%d", "%"+f.Description+"%")
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}
