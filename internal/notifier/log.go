package notifier

import (
	"context"

	"go.uber.org/zap"

	"github.com/newsdesk/news-api/internal/domain"
)

// LogNotifier writes each notification to the structured log instead of
// calling an external service. It is the default when no webhook URL is
// configured, which keeps local development free of outbound dependencies.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Send(_ context.Context, job *domain.Job) error {
	n.logger.Info("notification sent",
		zap.String("type", job.Payload.Type),
		zap.String("news_id", job.Payload.NewsID),
		zap.String("title", job.Payload.Title),
	)
	return nil
}

var _ Notifier = (*LogNotifier)(nil)
