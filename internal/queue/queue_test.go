package queue_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/newsdesk/news-api/internal/domain"
	"github.com/newsdesk/news-api/internal/queue"
)

// recordingNotifier captures every delivery in arrival order and can be told
// to fail specific news IDs. It also tracks how many deliveries are in
// flight simultaneously to verify the single-worker guarantee.
type recordingNotifier struct {
	mu           sync.Mutex
	delivered    []string
	statusAtSend []domain.JobStatus
	failIDs      map[string]bool
	inFlight     int
	maxInFlight  int
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{failIDs: make(map[string]bool)}
}

func (r *recordingNotifier) Send(_ context.Context, job *domain.Job) error {
	r.mu.Lock()
	r.inFlight++
	if r.inFlight > r.maxInFlight {
		r.maxInFlight = r.inFlight
	}
	r.delivered = append(r.delivered, job.Payload.NewsID)
	r.statusAtSend = append(r.statusAtSend, job.Status)
	fail := r.failIDs[job.Payload.NewsID]
	r.mu.Unlock()

	// Simulated delivery latency so overlapping sends would be observable.
	time.Sleep(2 * time.Millisecond)

	r.mu.Lock()
	r.inFlight--
	r.mu.Unlock()

	if fail {
		return errors.New("delivery refused")
	}
	return nil
}

func (r *recordingNotifier) deliveredIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.delivered...)
}

func payload(id string) domain.NotificationPayload {
	return domain.NotificationPayload{Type: domain.EventNewsCreated, NewsID: id, Title: "t " + id}
}

// waitIdle polls until the queue has drained and the worker has exited.
func waitIdle(t *testing.T, q *queue.Queue) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		s := q.Status()
		if s.Pending == 0 && !s.Running {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("queue did not drain in time")
}

func TestQueue_EnqueueReturnsPendingJob(t *testing.T) {
	n := newRecordingNotifier()
	q := queue.New(n, time.Millisecond, zap.NewNop(), queue.Hooks{})
	defer q.Close()

	job := q.Enqueue(payload("n1"))
	if job.ID == "" {
		t.Fatal("expected a non-empty job ID")
	}
	if job.Type != domain.JobTypeNotification {
		t.Fatalf("expected type=notification, got %s", job.Type)
	}

	waitIdle(t, q)
	if job.Status != domain.JobCompleted {
		t.Fatalf("expected status=completed, got %s", job.Status)
	}
	if job.ProcessedAt == nil {
		t.Fatal("expected ProcessedAt to be set on completion")
	}
}

// TestQueue_FIFOOrder verifies three jobs enqueued in quick succession are
// delivered strictly in arrival order by a single worker.
func TestQueue_FIFOOrder(t *testing.T) {
	n := newRecordingNotifier()
	q := queue.New(n, time.Millisecond, zap.NewNop(), queue.Hooks{})
	defer q.Close()

	j1 := q.Enqueue(payload("n1"))
	j2 := q.Enqueue(payload("n2"))
	j3 := q.Enqueue(payload("n3"))

	waitIdle(t, q)

	got := n.deliveredIDs()
	want := []string{"n1", "n2", "n3"}
	if len(got) != len(want) {
		t.Fatalf("expected %d deliveries, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("delivery %d: expected %s, got %s", i, want[i], got[i])
		}
	}

	for i, s := range n.statusAtSend {
		if s != domain.JobProcessing {
			t.Fatalf("delivery %d: expected status=processing at send time, got %s", i, s)
		}
	}
	if n.maxInFlight != 1 {
		t.Fatalf("expected at most one job in flight, observed %d", n.maxInFlight)
	}

	for _, j := range []*domain.Job{j1, j2, j3} {
		if j.Status != domain.JobCompleted {
			t.Fatalf("job %s: expected completed, got %s", j.ID, j.Status)
		}
	}
}

// TestQueue_FailureIsTerminal verifies a failed delivery marks the job failed
// without a retry and without stalling later jobs.
func TestQueue_FailureIsTerminal(t *testing.T) {
	n := newRecordingNotifier()
	n.failIDs["bad"] = true

	var failed int
	var mu sync.Mutex
	q := queue.New(n, time.Millisecond, zap.NewNop(), queue.Hooks{
		OnFailed: func() {
			mu.Lock()
			failed++
			mu.Unlock()
		},
	})
	defer q.Close()

	badJob := q.Enqueue(payload("bad"))
	goodJob := q.Enqueue(payload("good"))

	waitIdle(t, q)

	if badJob.Status != domain.JobFailed {
		t.Fatalf("expected failed, got %s", badJob.Status)
	}
	if badJob.ProcessedAt != nil {
		t.Fatal("failed jobs must not record a processing time")
	}
	if goodJob.Status != domain.JobCompleted {
		t.Fatalf("expected the next job to complete, got %s", goodJob.Status)
	}

	attempts := 0
	for _, id := range n.deliveredIDs() {
		if id == "bad" {
			attempts++
		}
	}
	if attempts != 1 {
		t.Fatalf("expected exactly one delivery attempt for the failed job, got %d", attempts)
	}

	mu.Lock()
	defer mu.Unlock()
	if failed != 1 {
		t.Fatalf("expected OnFailed hook once, got %d", failed)
	}
}

// TestQueue_WorkerRestartsAfterDrain verifies the worker loop self-terminates
// on an empty queue and a later Enqueue starts a fresh one.
func TestQueue_WorkerRestartsAfterDrain(t *testing.T) {
	n := newRecordingNotifier()
	q := queue.New(n, time.Millisecond, zap.NewNop(), queue.Hooks{})
	defer q.Close()

	q.Enqueue(payload("first"))
	waitIdle(t, q)

	if s := q.Status(); s.Running {
		t.Fatal("expected worker to stop once drained")
	}

	job := q.Enqueue(payload("second"))
	waitIdle(t, q)

	if job.Status != domain.JobCompleted {
		t.Fatalf("expected second job to complete, got %s", job.Status)
	}
	if got := len(n.deliveredIDs()); got != 2 {
		t.Fatalf("expected 2 deliveries, got %d", got)
	}
}

func TestQueue_StatusSnapshot(t *testing.T) {
	n := newRecordingNotifier()
	// A long interval keeps jobs queued while we look at the snapshot.
	q := queue.New(n, time.Hour, zap.NewNop(), queue.Hooks{})
	defer q.Close()

	q.Enqueue(payload("n1"))
	q.Enqueue(payload("n2"))
	q.Enqueue(payload("n3"))

	s := q.Status()
	if !s.Running {
		t.Fatal("expected a running worker after enqueue")
	}
	// The first job is taken immediately; the pacing delay holds the rest.
	if s.Pending > 3 || s.Pending < 1 {
		t.Fatalf("unexpected pending count %d", s.Pending)
	}
}

func TestQueue_CloseStopsWorker(t *testing.T) {
	n := newRecordingNotifier()
	q := queue.New(n, time.Hour, zap.NewNop(), queue.Hooks{})

	q.Enqueue(payload("n1"))
	q.Enqueue(payload("n2"))

	done := make(chan struct{})
	go func() {
		q.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Close did not return after cancelling the worker")
	}
}

func TestQueue_CompletedHookObservesLatency(t *testing.T) {
	n := newRecordingNotifier()

	var mu sync.Mutex
	var latencies []time.Duration
	q := queue.New(n, time.Millisecond, zap.NewNop(), queue.Hooks{
		OnCompleted: func(d time.Duration) {
			mu.Lock()
			latencies = append(latencies, d)
			mu.Unlock()
		},
	})
	defer q.Close()

	q.Enqueue(payload("n1"))
	waitIdle(t, q)

	mu.Lock()
	defer mu.Unlock()
	if len(latencies) != 1 {
		t.Fatalf("expected one completion, got %d", len(latencies))
	}
	if latencies[0] <= 0 {
		t.Fatalf("expected positive latency, got %v", latencies[0])
	}
}
