package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups all Prometheus instruments used across the application.
// Registered once at startup via New(); passed by pointer wherever needed.
type Metrics struct {
	NewsCreated   prometheus.Counter
	JobsProcessed *prometheus.CounterVec
	JobLatency    prometheus.Histogram
	CacheHits     prometheus.Counter
	CacheMisses   prometheus.Counter
}

// New registers all instruments with the given Prometheus registerer and
// returns the populated Metrics struct.
// Using a custom registry (instead of prometheus.DefaultRegisterer) keeps
// tests isolated and avoids global state.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		NewsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "news_created_total",
			Help: "Total number of news items created.",
		}),

		JobsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jobs_processed_total",
			Help: "Total number of notification jobs reaching a terminal state.",
		}, []string{"status"}),

		JobLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "job_processing_seconds",
			Help:    "Delivery latency from dequeue to notifier ack.",
			Buckets: prometheus.DefBuckets,
		}),

		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of listing requests served from the page cache.",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of listing requests that fell through to the store.",
		}),
	}

	reg.MustRegister(
		m.NewsCreated,
		m.JobsProcessed,
		m.JobLatency,
		m.CacheHits,
		m.CacheMisses,
	)

	return m
}

// ServiceHooks returns the callbacks expected by service.Hooks.
func (m *Metrics) ServiceHooks() (onCreated func()) {
	return m.NewsCreated.Inc
}

// QueueHooks returns the callbacks expected by queue.Hooks.
// Centralises the prometheus observation calls so the queue stays metrics-agnostic.
func (m *Metrics) QueueHooks() (onCompleted func(time.Duration), onFailed func()) {
	onCompleted = func(latency time.Duration) {
		m.JobsProcessed.WithLabelValues("completed").Inc()
		m.JobLatency.Observe(latency.Seconds())
	}
	onFailed = func() {
		m.JobsProcessed.WithLabelValues("failed").Inc()
	}
	return
}

// CacheHooks returns the callbacks expected by cache.Hooks.
func (m *Metrics) CacheHooks() (onHit, onMiss func()) {
	return m.CacheHits.Inc, m.CacheMisses.Inc
}

// RegisterQueueDepth registers a gauge that reads the queue's pending count
// on each scrape, avoiding a background updater goroutine.
func RegisterQueueDepth(reg prometheus.Registerer, depth func() int) {
	reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "queue_depth",
		Help: "Current number of jobs waiting in the notification queue.",
	}, func() float64 { return float64(depth()) }))
}
