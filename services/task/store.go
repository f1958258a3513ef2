package task

import (
	"sync"
	"time"

	"datasetforge/pkg/errutil"

	"github.com/google/uuid"
)

// Store keeps task records in process memory, keyed by ID. Workers
// mutate only their own task's entry; a reader polling a key always
// observes the most recent write for that key. Records live for the
// process lifetime.
type Store struct {
	mu    sync.RWMutex
	tasks map[string]Task
}

func NewStore() *Store {
	return &Store{tasks: map[string]Task{}}
}

// Create adds a new queued task and returns it.
func (s *Store) Create(message string) Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := Task{
		ID:        uuid.NewString(),
		Status:    StatusQueued,
		Message:   message,
		UpdatedAt: time.Now(),
	}
	s.tasks[t.ID] = t
	return t
}

// Update transitions a task and stamps the write time. Updates to a
// terminal task are rejected.
func (s *Store) Update(id string, status Status, message string, result any) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return Task{}, errutil.NotFound("task not found", errutil.WithDetails(errutil.Detail{Field: "task_id", Message: id}))
	}
	if t.Status.Terminal() {
		return Task{}, errutil.New(errutil.StatusConflict, "task already in terminal state")
	}

	t.Status = status
	t.Message = message
	if result != nil {
		t.Result = result
	}
	t.UpdatedAt = time.Now()
	s.tasks[id] = t
	return t, nil
}

// Get retrieves a task by ID.
func (s *Store) Get(id string) (Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tasks[id]
	return t, ok
}
