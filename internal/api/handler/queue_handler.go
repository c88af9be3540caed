package handler

import (
	"net/http"

	"github.com/newsdesk/news-api/internal/queue"
)

// QueueHandler serves a human-readable JSON snapshot of the notification
// queue. Raw Prometheus metrics (counters, histograms) are available at
// /metrics via promhttp.Handler and are separate from this endpoint.
type QueueHandler struct {
	q *queue.Queue
}

func NewQueueHandler(q *queue.Queue) *QueueHandler {
	return &QueueHandler{q: q}
}

// Status handles GET /api/queue
//
// @Summary  Notification queue snapshot
// @Tags     queue
// @Produce  json
// @Success  200  {object}  queue.Status
// @Router   /api/queue [get]
func (h *QueueHandler) Status(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.q.Status())
}
