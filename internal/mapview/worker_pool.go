package mapview

import (
	"context"
	"sync"
)

// Task is a unit of work run by the worker pool
type Task func(ctx context.Context)

// WorkerPool runs tasks on a fixed number of goroutines
type WorkerPool struct {
	workerCount int
	taskQueue   chan Task
	wg          sync.WaitGroup
	ctx         context.Context
	closeOnce   sync.Once
}

// NewWorkerPool creates a pool bound to ctx. Tasks still queued when ctx is
// done are dropped.
func NewWorkerPool(ctx context.Context, workerCount int) *WorkerPool {
	if workerCount < 1 {
		workerCount = 1
	}
	return &WorkerPool{
		workerCount: workerCount,
		taskQueue:   make(chan Task, workerCount*2),
		ctx:         ctx,
	}
}

// Start launches worker goroutines
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.workerCount; i++ {
		wp.wg.Add(1)
		go wp.worker()
	}
}

// Submit queues a task. It reports false when the pool's context is done.
func (wp *WorkerPool) Submit(task Task) bool {
	select {
	case wp.taskQueue <- task:
		return true
	case <-wp.ctx.Done():
		return false
	}
}

// Wait closes the queue and blocks until every worker returns
func (wp *WorkerPool) Wait() {
	wp.closeOnce.Do(func() { close(wp.taskQueue) })
	wp.wg.Wait()
}

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		if wp.ctx.Err() != nil {
			continue
		}
		task(wp.ctx)
	}
}
