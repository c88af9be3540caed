package queue

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/newsdesk/news-api/internal/domain"
	"github.com/newsdesk/news-api/internal/notifier"
)

// Hooks carries the metric callback functions injected by main.
// Using a struct keeps the constructor signature clean; nil fields are no-ops.
type Hooks struct {
	OnCompleted func(latency time.Duration)
	OnFailed    func()
}

// Status is a read-only snapshot of the queue, exposed over /api/queue.
type Status struct {
	Pending int  `json:"pending"`
	Running bool `json:"running"`
}

// Queue is an in-process FIFO job queue with a single sequential worker.
//
// Enqueue appends a job and lazily starts the worker goroutine when none is
// active; the worker drains the queue in strict arrival order, one job at a
// time, and exits when the queue is empty. Keeping the worker singular means
// no two jobs are ever in flight together and deliveries happen in enqueue
// order without any per-job locking.
//
// Jobs exist only in memory: whatever is still queued when the process stops
// is lost. Delivery failure is terminal per job — logged, counted, never
// retried and never surfaced to the caller that enqueued it.
type Queue struct {
	mu      sync.Mutex
	jobs    []*domain.Job
	running bool

	notifier notifier.Notifier
	limiter  *rate.Limiter
	logger   *zap.Logger
	hooks    Hooks

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a queue that delivers via n, pacing the worker to one job per
// interval. The hooks are optional (zero value = no-op).
func New(n notifier.Notifier, interval time.Duration, logger *zap.Logger, hooks Hooks) *Queue {
	if hooks.OnCompleted == nil {
		hooks.OnCompleted = func(time.Duration) {}
	}
	if hooks.OnFailed == nil {
		hooks.OnFailed = func() {}
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Queue{
		notifier: n,
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		logger:   logger,
		hooks:    hooks,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Enqueue constructs a pending job from the payload, appends it to the tail
// of the queue and returns immediately. If no worker loop is active one is
// started; the caller never waits on delivery.
func (q *Queue) Enqueue(payload domain.NotificationPayload) *domain.Job {
	job := &domain.Job{
		ID:        uuid.New().String(),
		Type:      domain.JobTypeNotification,
		Payload:   payload,
		Status:    domain.JobPending,
		CreatedAt: time.Now().UTC(),
	}

	q.mu.Lock()
	q.jobs = append(q.jobs, job)
	if !q.running {
		q.running = true
		q.wg.Add(1)
		go q.drain()
	}
	q.mu.Unlock()

	q.logger.Debug("job enqueued",
		zap.String("job_id", job.ID),
		zap.String("news_id", payload.NewsID),
	)
	return job
}

// Status returns the number of jobs waiting and whether a worker is active.
func (q *Queue) Status() Status {
	q.mu.Lock()
	defer q.mu.Unlock()
	return Status{Pending: len(q.jobs), Running: q.running}
}

// Close stops the worker and waits for an in-flight delivery to finish.
// Jobs still pending are dropped.
func (q *Queue) Close() {
	q.cancel()
	q.wg.Wait()
}

// drain is the worker loop. It pops head jobs until the queue is empty, then
// self-terminates; a subsequent Enqueue starts a fresh loop. The rate limiter
// enforces the fixed inter-job delay (the first token is available
// immediately, so an idle queue processes its first job without waiting).
func (q *Queue) drain() {
	defer q.wg.Done()

	for {
		if err := q.limiter.Wait(q.ctx); err != nil {
			// Queue closed while pacing; abandon whatever is left.
			q.mu.Lock()
			q.running = false
			q.mu.Unlock()
			return
		}

		q.mu.Lock()
		if len(q.jobs) == 0 {
			q.running = false
			q.mu.Unlock()
			return
		}
		job := q.jobs[0]
		q.jobs = q.jobs[1:]
		q.mu.Unlock()

		q.process(job)
	}
}

// process runs a single job through its state machine:
// pending → processing → completed | failed. Both outcomes are final.
func (q *Queue) process(job *domain.Job) {
	start := time.Now()
	job.Status = domain.JobProcessing

	if err := q.notifier.Send(q.ctx, job); err != nil {
		job.Status = domain.JobFailed
		q.hooks.OnFailed()
		q.logger.Warn("job delivery failed",
			zap.String("job_id", job.ID),
			zap.String("news_id", job.Payload.NewsID),
			zap.Error(err),
		)
		return
	}

	now := time.Now().UTC()
	job.Status = domain.JobCompleted
	job.ProcessedAt = &now
	q.hooks.OnCompleted(time.Since(start))
	q.logger.Info("job completed",
		zap.String("job_id", job.ID),
		zap.Duration("latency", time.Since(start)),
	)
}
