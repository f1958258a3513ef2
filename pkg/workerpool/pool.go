package workerpool

import (
	"context"
	"errors"
	"runtime/debug"
	"sync"

	"go.uber.org/zap"
)

// ErrQueueFull is returned by Submit when the task queue has no room.
var ErrQueueFull = errors.New("worker pool queue is full")

// Pool runs submitted tasks on a fixed set of workers. The queue is
// bounded; admission fails fast instead of spawning a goroutine per
// task.
type Pool struct {
	workers int
	queue   chan func()

	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

func New(workers, queueSize int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}

	ctx, cancel := context.WithCancel(context.Background())

	p := &Pool{
		workers: workers,
		queue:   make(chan func(), queueSize),
		ctx:     ctx,
		cancel:  cancel,
	}

	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case task, ok := <-p.queue:
			if !ok {
				return
			}
			if task == nil {
				continue
			}
			func() {
				defer func() {
					if r := recover(); r != nil {
						zap.L().Error("worker recovered panic",
							zap.Any("panic", r),
							zap.ByteString("stack", debug.Stack()),
						)
					}
				}()
				task()
			}()
		}
	}
}

// Submit enqueues a task without blocking.
func (p *Pool) Submit(task func()) error {
	if task == nil {
		return nil
	}

	select {
	case <-p.ctx.Done():
		return errors.New("worker pool is stopped")
	default:
	}

	select {
	case p.queue <- task:
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop finishes tasks already picked up by a worker and discards the
// rest of the queue.
func (p *Pool) Stop() {
cleanup:
	for {
		select {
		case <-p.queue:
		default:
			break cleanup
		}
	}

	p.cancel()
	p.wg.Wait()
}

// StopWait drains the queue completely before returning.
func (p *Pool) StopWait() {
	close(p.queue)
	p.wg.Wait()
	p.cancel()
}

// IsRunning reports whether workers are still accepting tasks.
func (p *Pool) IsRunning() bool {
	select {
	case <-p.ctx.Done():
		return false
	default:
		return true
	}
}
