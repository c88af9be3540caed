package domain

import "time"

// JobType tags the kind of deferred work a job carries.
// Only notifications exist today; the tag keeps the queue payload-agnostic.
type JobType string

const JobTypeNotification JobType = "notification"

// JobStatus tracks the lifecycle of a queued job.
// Terminal states (completed, failed) are final: there is no retry.
type JobStatus string

const (
	JobPending    JobStatus = "pending"
	JobProcessing JobStatus = "processing"
	JobCompleted  JobStatus = "completed"
	JobFailed     JobStatus = "failed"
)

// NotificationPayload is the data delivered when a news item is created.
type NotificationPayload struct {
	Type   string `json:"type"`
	NewsID string `json:"newsId"`
	Title  string `json:"title"`
}

// EventNewsCreated is the payload type emitted on news creation.
const EventNewsCreated = "news_created"

// Job is a unit of deferred work. It lives only in process memory and is
// mutated exclusively by the queue worker after Enqueue returns; it is never
// persisted, so queued jobs do not survive a restart.
type Job struct {
	ID          string              `json:"id"`
	Type        JobType             `json:"type"`
	Payload     NotificationPayload `json:"payload"`
	Status      JobStatus           `json:"status"`
	CreatedAt   time.Time           `json:"created_at"`
	ProcessedAt *time.Time          `json:"processed_at,omitempty"`
}
