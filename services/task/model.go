package task

import "time"

// Status is the lifecycle state of a task. Transitions are monotonic:
// queued -> processing -> completed|failed, and terminal states are
// sticky. StatusNotFound is synthetic: lookup returns it for unknown
// IDs, it is never stored.
type Status string

const (
	StatusQueued     Status = "queued"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusNotFound   Status = "not_found"
)

// Terminal reports whether no further transition is allowed.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Task is the execution record for one submitted job.
type Task struct {
	ID        string    `json:"task_id"`
	Status    Status    `json:"status"`
	Message   string    `json:"message"`
	Result    any       `json:"result,omitempty"`
	UpdatedAt time.Time `json:"timestamp"`
}
