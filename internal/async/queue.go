// Package async runs per-invoice extraction jobs on a small worker pool.
// Documents are independent, so the only ordering requirement is that
// results land back at their submission index.
package async

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job is one invoice to process. Index is the caller's slot for the
// result, so batch output keeps submission order.
type Job struct {
	Index       int
	Path        string
	SubmittedAt time.Time
}

// Runner processes one job. It must be safe for concurrent use and write
// only to its own result slot.
type Runner func(ctx context.Context, job Job)

type Pool struct {
	run     Runner
	logger  *slog.Logger
	workers int
	timeout time.Duration

	ch   chan Job
	wg   sync.WaitGroup
	once sync.Once

	mu     sync.Mutex
	closed bool
}

type Option func(*Pool)

func WithWorkers(n int) Option {
	return func(p *Pool) {
		if n > 0 {
			p.workers = n
		}
	}
}

func WithQueueSize(n int) Option {
	return func(p *Pool) {
		if n > 0 {
			p.ch = make(chan Job, n)
		}
	}
}

func WithJobTimeout(d time.Duration) Option {
	return func(p *Pool) {
		if d > 0 {
			p.timeout = d
		}
	}
}

func NewPool(run Runner, logger *slog.Logger, opts ...Option) *Pool {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Pool{
		run:     run,
		logger:  logger,
		workers: 4,
		timeout: 3 * time.Minute,
		ch:      make(chan Job, 256),
	}
	for _, o := range opts {
		o(p)
	}
	p.start()
	return p
}

func (p *Pool) start() {
	p.once.Do(func() {
		for i := 0; i < p.workers; i++ {
			p.wg.Add(1)
			go func(workerID int) {
				defer p.wg.Done()
				for job := range p.ch {
					ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
					p.run(ctx, job)
					cancel()
				}
			}(i + 1)
		}
	})
}

func (p *Pool) Enqueue(_ context.Context, job Job) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		p.logger.Warn("cannot enqueue: pool is shutting down", "path", job.Path)
		return nil
	}
	select {
	case p.ch <- job:
	default:
		p.logger.Warn("queue full, applying backpressure", "path", job.Path)
		p.ch <- job
	}
	return nil
}

// Shutdown closes intake and waits for the workers to drain, or for ctx.
func (p *Pool) Shutdown(ctx context.Context) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.ch)
	p.mu.Unlock()

	done := make(chan struct{})
	go func() { defer close(done); p.wg.Wait() }()

	select {
	case <-ctx.Done():
		p.logger.Warn("shutdown interrupted by context")
	case <-done:
	}
}
