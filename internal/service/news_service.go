package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/newsdesk/news-api/internal/cache"
	"github.com/newsdesk/news-api/internal/domain"
	"github.com/newsdesk/news-api/internal/queue"
	"github.com/newsdesk/news-api/internal/repository"
)

// Hooks carries the metric callback functions injected by main.
// Using a struct keeps the constructor signature clean; nil fields are no-ops.
type Hooks struct {
	OnCreated func()
}

// NewsService coordinates the repository, the page cache and the job queue.
// The write-path ordering is fixed: persist first, then invalidate the cache,
// then (creation only) enqueue the notification. The HTTP response never
// waits on notification delivery.
type NewsService struct {
	repo   repository.NewsRepository
	cache  *cache.PageCache
	queue  *queue.Queue
	logger *zap.Logger
	hooks  Hooks
}

func NewNewsService(
	repo repository.NewsRepository,
	c *cache.PageCache,
	q *queue.Queue,
	logger *zap.Logger,
	hooks Hooks,
) *NewsService {
	if hooks.OnCreated == nil {
		hooks.OnCreated = func() {}
	}
	return &NewsService{repo: repo, cache: c, queue: q, logger: logger, hooks: hooks}
}

// Create validates, persists and returns a new news item. After the row is
// committed the entire page cache is reset and a notification job is
// enqueued; enqueuing cannot fail and never rolls back the creation.
func (s *NewsService) Create(ctx context.Context, req domain.CreateNewsRequest) (*domain.News, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	n := &domain.News{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("persist news: %w", err)
	}
	s.hooks.OnCreated()

	s.cache.Reset()

	job := s.queue.Enqueue(domain.NotificationPayload{
		Type:   domain.EventNewsCreated,
		NewsID: n.ID,
		Title:  n.Title,
	})
	s.logger.Info("news created",
		zap.String("news_id", n.ID),
		zap.String("job_id", job.ID),
	)

	return n, nil
}

// List serves one page of news. The cache key is derived from all four query
// parameters; a hit returns the cached snapshot untouched, a miss queries the
// store, assembles the page and caches it for the next identical read.
func (s *NewsService) List(ctx context.Context, filter domain.ListFilter) (*domain.PaginatedNews, error) {
	key := cache.Key(filter)
	if page, ok := s.cache.Get(key); ok {
		s.logger.Debug("listing served from cache", zap.String("key", key))
		return page, nil
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list news: %w", err)
	}
	if items == nil {
		items = []*domain.News{} // serialize an empty page as [], not null
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + filter.Limit - 1) / filter.Limit
	}

	page := &domain.PaginatedNews{
		Data: items,
		Meta: domain.PageMeta{
			Total:      total,
			Page:       filter.Page,
			Limit:      filter.Limit,
			TotalPages: totalPages,
		},
	}

	s.cache.Set(key, page)
	return page, nil
}

func (s *NewsService) GetByID(ctx context.Context, id string) (*domain.News, error) {
	return s.repo.GetByID(ctx, id)
}

// Update applies only the supplied fields to an existing item. The ID and
// CreatedAt never change; UpdatedAt is refreshed on every call.
func (s *NewsService) Update(ctx context.Context, id string, req domain.UpdateNewsRequest) (*domain.News, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		n.Title = *req.Title
	}
	if req.Description != nil {
		n.Description = *req.Description
	}
	n.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, n); err != nil {
		return nil, fmt.Errorf("update news: %w", err)
	}

	s.cache.Reset()
	return n, nil
}

// Delete removes an item by id and invalidates the cache.
func (s *NewsService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete news: %w", err)
	}

	s.cache.Reset()
	return nil
}
