package worker

import (
	"context"
	"sync"
)

// Job represents a unit of work producing an R
type Job[R any] interface {
	Execute(ctx context.Context) R
}

// Func adapts a function to the Job interface
type Func[R any] func(ctx context.Context) R

// Execute calls f
func (f Func[R]) Execute(ctx context.Context) R {
	return f(ctx)
}

// Pool runs jobs on a fixed number of workers. Results are gathered as
// they complete, in completion order.
type Pool[R any] struct {
	workers    int
	jobQueue   chan Job[R]
	results    chan R
	collected  []R
	wg         sync.WaitGroup
	collectWG  sync.WaitGroup
	ctx        context.Context
	cancelFunc context.CancelFunc
	mu         sync.Mutex
	closed     bool
	startOnce  sync.Once
	waitOnce   sync.Once
}

// NewPool creates a pool with the specified number of workers whose jobs
// run under ctx.
func NewPool[R any](ctx context.Context, workers int) *Pool[R] {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(ctx)

	return &Pool[R]{
		workers:    workers,
		jobQueue:   make(chan Job[R], workers*2),
		results:    make(chan R, workers*2),
		ctx:        ctx,
		cancelFunc: cancel,
	}
}

// Workers returns the pool size
func (p *Pool[R]) Workers() int {
	return p.workers
}

// Start starts the workers and the result collector
func (p *Pool[R]) Start() {
	p.startOnce.Do(func() {
		p.collectWG.Add(1)
		go func() {
			defer p.collectWG.Done()
			for r := range p.results {
				p.collected = append(p.collected, r)
			}
		}()

		for i := 0; i < p.workers; i++ {
			p.wg.Add(1)
			go p.worker()
		}
	})
}

func (p *Pool[R]) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}
			p.results <- job.Execute(p.ctx)
		}
	}
}

// Submit queues a job. It reports false once the pool is cancelled or
// waited on.
func (p *Pool[R]) Submit(job Job[R]) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || p.ctx.Err() != nil {
		return false
	}

	select {
	case <-p.ctx.Done():
		return false
	case p.jobQueue <- job:
		return true
	}
}

// Wait closes the queue, waits for queued jobs and returns all results
func (p *Pool[R]) Wait() []R {
	p.waitOnce.Do(func() {
		p.Start()

		p.mu.Lock()
		p.closed = true
		close(p.jobQueue)
		p.mu.Unlock()

		p.wg.Wait()
		close(p.results)
		p.collectWG.Wait()
		p.cancelFunc()
	})
	return p.collected
}

// Shutdown cancels the pool; queued jobs that have not started are dropped
func (p *Pool[R]) Shutdown() []R {
	p.cancelFunc()
	return p.Wait()
}

// Run executes jobs on a new pool and returns their results
func Run[R any](ctx context.Context, workers int, jobs []Job[R]) []R {
	p := NewPool[R](ctx, workers)
	p.Start()
	for _, job := range jobs {
		if !p.Submit(job) {
			break
		}
	}
	return p.Wait()
}
