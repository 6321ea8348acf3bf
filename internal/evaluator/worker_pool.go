package evaluator

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ppiankov/durparse/internal/models"
)

type job struct {
	index int
	entry models.Entry
}

type indexedResult struct {
	index  int
	result models.Result
}

// WorkerPool manages concurrent evaluation of entries
type WorkerPool struct {
	workers int
	eval    func(models.Entry) models.Result
	jobs    chan job
	results chan indexedResult
	errors  chan error
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
	started bool
	mu      sync.Mutex
}

// NewWorkerPool creates a new worker pool
func NewWorkerPool(workers int, eval func(models.Entry) models.Result) *WorkerPool {
	if workers < 1 {
		workers = 1
	}
	return &WorkerPool{
		workers: workers,
		eval:    eval,
		jobs:    make(chan job, workers*2),
		results: make(chan indexedResult, workers*2),
		errors:  make(chan error, workers),
	}
}

// Start starts the worker pool
func (p *WorkerPool) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return
	}

	p.ctx, p.cancel = context.WithCancel(ctx)
	p.started = true

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

// worker evaluates jobs from the job queue
func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case j, ok := <-p.jobs:
			if !ok {
				return
			}

			result, ok := p.process(id, j)
			if !ok {
				continue
			}

			select {
			case <-p.ctx.Done():
				return
			case p.results <- indexedResult{index: j.index, result: result}:
			}
		}
	}
}

func (p *WorkerPool) process(id int, j job) (result models.Result, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("worker panic recovered",
				slog.Int("worker_id", id),
				slog.Int("line", j.entry.Line),
				slog.String("panic", fmt.Sprint(r)),
			)
			select {
			case p.errors <- fmt.Errorf("%s:%d: evaluation panicked: %v", j.entry.Source, j.entry.Line, r):
			default:
			}
			ok = false
		}
	}()

	return p.eval(j.entry), true
}

// Submit queues an entry for evaluation. It returns false once the pool's
// context is done.
func (p *WorkerPool) Submit(index int, entry models.Entry) bool {
	select {
	case <-p.ctx.Done():
		return false
	case p.jobs <- job{index: index, entry: entry}:
		return true
	}
}

// Results returns the results channel
func (p *WorkerPool) Results() <-chan indexedResult {
	return p.results
}

// Errors returns the errors channel
func (p *WorkerPool) Errors() <-chan error {
	return p.errors
}

// Stop stops the worker pool and waits for all workers to finish
func (p *WorkerPool) Stop() {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()

	// Close jobs channel to signal workers to stop
	close(p.jobs)

	p.wg.Wait()

	close(p.results)
	close(p.errors)

	if p.cancel != nil {
		p.cancel()
	}

	p.mu.Lock()
	p.started = false
	p.mu.Unlock()
}
