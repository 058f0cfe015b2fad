package worker

import (
	"context"
	"sync"

	"github.com/mwei/irdigest/internal/model"
)

// Loader resolves one listing record into document text (fetch plus
// conversion). Implemented by the pipeline crawler.
type Loader interface {
	Load(ctx context.Context, rec model.Record) (string, error)
}

// DocResult is the outcome of loading one record. A non-nil Err means the
// document is skipped; it never aborts the batch.
type DocResult struct {
	Record model.Record
	Text   string
	Err    error
}

// Pool loads records across a fixed set of workers. Fetching and PDF
// conversion dominate run time, so only that stage is parallel; results
// are delivered on a single channel to keep aggregation a single mutation
// path.
type Pool struct {
	workers int
	loader  Loader
}

// NewPool creates a pool with the given worker count (minimum 1).
func NewPool(workers int, loader Loader) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{workers: workers, loader: loader}
}

// Workers returns the effective worker count.
func (p *Pool) Workers() int {
	return p.workers
}

// Run feeds records to the workers and returns the result channel, closed
// once every record has been attempted or the context is cancelled.
func (p *Pool) Run(ctx context.Context, records []model.Record) <-chan DocResult {
	jobs := make(chan model.Record)
	results := make(chan DocResult, p.workers)

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for rec := range jobs {
				text, err := p.loader.Load(ctx, rec)
				select {
				case results <- DocResult{Record: rec, Text: text, Err: err}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, rec := range records {
			select {
			case jobs <- rec:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}
