package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/newsdesk/news-api/internal/domain"
)

// MockNewsRepository is a hand-written, in-memory implementation of
// NewsRepository used in unit tests. No mock-generation library needed.
// It mirrors the Postgres behaviour: substring LIKE filters, created_at
// descending order, offset/limit pagination and a total count.
type MockNewsRepository struct {
	mu   sync.RWMutex
	news map[string]*domain.News

	// ListCalls counts store reads so tests can assert cache hits.
	ListCalls int

	// Optional error overrides — set in tests to simulate failure paths.
	CreateErr error
	UpdateErr error
	DeleteErr error
}

func NewMockNewsRepository() *MockNewsRepository {
	return &MockNewsRepository{news: make(map[string]*domain.News)}
}

func (m *MockNewsRepository) Create(_ context.Context, n *domain.News) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *n
	m.news[n.ID] = &clone
	return nil
}

func (m *MockNewsRepository) GetByID(_ context.Context, id string) (*domain.News, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n, ok := m.news[id]
	if !ok {
		return nil, fmt.Errorf("news with id %s: %w", id, domain.ErrNotFound)
	}
	clone := *n
	return &clone, nil
}

func (m *MockNewsRepository) List(_ context.Context, f domain.ListFilter) ([]*domain.News, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListCalls++

	var matching []*domain.News
	for _, n := range m.news {
		if f.Title != "" && !strings.Contains(n.Title, f.Title) {
			continue
		}
		if f.Description != "" && !strings.Contains(n.Description, f.Description) {
			continue
		}
		clone := *n
		matching = append(matching, &clone)
	}

	sort.Slice(matching, func(i, j int) bool {
		return matching[i].CreatedAt.After(matching[j].CreatedAt)
	})

	total := len(matching)
	offset := (f.Page - 1) * f.Limit
	if offset >= total {
		return nil, total, nil
	}
	end := offset + f.Limit
	if end > total {
		end = total
	}
	return matching[offset:end], total, nil
}

func (m *MockNewsRepository) Update(_ context.Context, n *domain.News) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.news[n.ID]; !ok {
		return fmt.Errorf("news with id %s: %w", n.ID, domain.ErrNotFound)
	}
	clone := *n
	m.news[n.ID] = &clone
	return nil
}

func (m *MockNewsRepository) Delete(_ context.Context, id string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.news[id]; !ok {
		return fmt.Errorf("news with id %s: %w", id, domain.ErrNotFound)
	}
	delete(m.news, id)
	return nil
}
