package notifier

import (
	"context"

	"github.com/newsdesk/news-api/internal/domain"
)

// Notifier abstracts delivery of a notification job to the outside world.
// Mocking this interface in tests gives full control over delivery behaviour
// without making real HTTP calls.
type Notifier interface {
	Send(ctx context.Context, job *domain.Job) error
}
