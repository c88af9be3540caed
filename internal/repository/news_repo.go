package repository

import (
	"context"

	"github.com/newsdesk/news-api/internal/domain"
)

// NewsRepository defines all persistence operations for news items.
// The pgx implementation is in pg_news_repo.go.
// Tests use a hand-written mock (mock_news_repo.go).
type NewsRepository interface {
	Create(ctx context.Context, n *domain.News) error
	GetByID(ctx context.Context, id string) (*domain.News, error)
	// List returns one page of items matching the filter plus the total
	// number of matching rows ignoring pagination.
	List(ctx context.Context, filter domain.ListFilter) ([]*domain.News, int, error)
	Update(ctx context.Context, n *domain.News) error
	Delete(ctx context.Context, id string) error
}
