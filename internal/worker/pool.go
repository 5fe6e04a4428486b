package worker

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/modstanding/internal/logger"
)

// Job represents a task to be executed by a worker
type Job interface {
	Process(ctx context.Context) error
}

// Pool runs jobs on a fixed number of goroutines fed by a bounded queue
type Pool struct {
	workers    int
	jobQueue   chan Job
	jobTimeout time.Duration
	wg         sync.WaitGroup
	quit       chan struct{}
	stopOnce   sync.Once
}

// NewPool creates a new worker pool
func NewPool(workers int, queueSize int) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{
		workers:    workers,
		jobQueue:   make(chan Job, queueSize),
		jobTimeout: DefaultJobTimeout,
		quit:       make(chan struct{}),
	}
}

// Start starts the workers
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobQueue:
			p.run(job)
		case <-p.quit:
			return
		}
	}
}

func (p *Pool) run(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), p.jobTimeout)
	defer cancel()
	if err := job.Process(ctx); err != nil {
		logger.FromContext(ctx).Error(LogMsgWorkerJobFailed, "error", err)
	}
}

// Enqueue adds a job without blocking the caller.
// It returns false when the queue is full or the pool is stopped; the job is dropped.
func (p *Pool) Enqueue(job Job) bool {
	select {
	case <-p.quit:
		return false
	default:
	}

	select {
	case p.jobQueue <- job:
		return true
	default:
		logger.Warn(LogMsgQueueFull)
		return false
	}
}

// Stop stops the workers and waits for in-flight jobs to finish.
// Jobs still queued are discarded.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		close(p.quit)
		p.wg.Wait()
		logger.Info(LogMsgPoolStopped)
	})
}
