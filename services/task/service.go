package task

import (
	"context"
	"fmt"

	"datasetforge/pkg/workerpool"

	"go.uber.org/zap"
)

// Runner executes a full pipeline run and returns the result payload
// plus a human-readable summary message.
type Runner func(ctx context.Context) (any, string, error)

// Coordinator assigns IDs, dispatches work onto the pool, and records
// every state transition in the store. The submitting caller never
// waits for completion.
type Coordinator struct {
	store *Store
	pool  *workerpool.Pool
}

func NewCoordinator(store *Store, pool *workerpool.Pool) *Coordinator {
	return &Coordinator{store: store, pool: pool}
}

// Create registers a new queued task and returns it. The caller stages
// its inputs under the returned ID before dispatching.
func (c *Coordinator) Create(message string) Task {
	return c.store.Create(message)
}

// Dispatch hands the runner to the worker pool. The run is wrapped in
// a failure boundary: any error or panic inside the pipeline becomes a
// terminal failed status, never a crash and never an error back to the
// submitter.
func (c *Coordinator) Dispatch(id string, run Runner) {
	err := c.pool.Submit(func() {
		defer func() {
			if r := recover(); r != nil {
				c.fail(id, fmt.Errorf("panic: %v", r))
			}
		}()

		if _, err := c.store.Update(id, StatusProcessing, "Processing", nil); err != nil {
			zap.L().Warn("task transition rejected", zap.String("task_id", id), zap.Error(err))
			return
		}

		result, summary, err := run(context.Background())
		if err != nil {
			c.fail(id, err)
			return
		}

		if _, err := c.store.Update(id, StatusCompleted, summary, result); err != nil {
			zap.L().Warn("task transition rejected", zap.String("task_id", id), zap.Error(err))
		}
		zap.L().Info("task completed", zap.String("task_id", id))
	})
	if err != nil {
		c.fail(id, err)
	}
}

// Fail records a terminal failure for a task that never reached its
// runner, e.g. when staging uploads failed after submission.
func (c *Coordinator) Fail(id string, err error) {
	c.fail(id, err)
}

func (c *Coordinator) fail(id string, cause error) {
	if _, err := c.store.Update(id, StatusFailed, cause.Error(), nil); err != nil {
		zap.L().Warn("task transition rejected", zap.String("task_id", id), zap.Error(err))
		return
	}
	zap.L().Error("task failed", zap.String("task_id", id), zap.Error(cause))
}

// Status returns a point-in-time view of a task. Unknown IDs yield the
// synthetic not_found status, never an error.
func (c *Coordinator) Status(id string) Task {
	if t, ok := c.store.Get(id); ok {
		return t
	}
	return Task{ID: id, Status: StatusNotFound, Message: "Task not found"}
}
