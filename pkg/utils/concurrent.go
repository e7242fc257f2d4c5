package utils

import (
	"context"
	"os"
	"strconv"
	"sync"
)

// DefaultWorkerLimit bounds concurrent scoring workers when no explicit limit
// is configured.
const DefaultWorkerLimit = 8

// GetWorkerLimit returns the worker limit from environment variable or default
func GetWorkerLimit() int {
	val := os.Getenv("NODELENS_WORKER_LIMIT")
	if val == "" {
		return DefaultWorkerLimit
	}
	limit, err := strconv.Atoi(val)
	if err != nil || limit <= 0 {
		return DefaultWorkerLimit
	}
	return limit
}

// Worker represents a worker function that processes items from a channel
type Worker[T any, R any] func(ctx context.Context, item T) (R, error)

// WorkerPool manages a pool of workers processing items concurrently.
//
// Results and errors are written back at each item's original index, so
// callers that depend on input order (the ranker's stable tie-break does) can
// treat the output as a parallel map rather than a completion-ordered stream.
//
// Goroutine lifecycle:
//   - Worker goroutines are created when ProcessItems is called
//   - Workers read from an internal items channel until it's closed
//   - All workers terminate when the channel drains or the context is cancelled
//   - ProcessItems blocks until all workers complete via WaitGroup
//   - Items left unprocessed by a cancelled context carry the context error
//     in their error slot, so cancellation is never a silent partial result
//   - Panics in workers are recovered and converted to PanicError
type WorkerPool[T any, R any] struct {
	numWorkers int
	worker     Worker[T, R]
}

// NewWorkerPool creates a new worker pool
func NewWorkerPool[T any, R any](numWorkers int, worker Worker[T, R]) *WorkerPool[T, R] {
	if numWorkers <= 0 {
		numWorkers = GetWorkerLimit()
	}
	return &WorkerPool[T, R]{
		numWorkers: numWorkers,
		worker:     worker,
	}
}

// ProcessItems processes items using the worker pool.
// Panics in worker goroutines are recovered and converted to PanicError.
func (wp *WorkerPool[T, R]) ProcessItems(ctx context.Context, items []T) ([]R, []error) {
	if len(items) == 0 {
		return nil, nil
	}

	type indexed struct {
		item  T
		index int
	}

	itemsChan := make(chan indexed, len(items))
	for i, item := range items {
		itemsChan <- indexed{item: item, index: i}
	}
	close(itemsChan)

	results := make([]R, len(items))
	errors := make([]error, len(items))
	// processed slots are each written by exactly one worker and read only
	// after wg.Wait, so they need no lock
	processed := make([]bool, len(items))
	var wg sync.WaitGroup
	var mu sync.Mutex // protects errors during panic recovery

	for i := 0; i < wp.numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				if ctx.Err() != nil {
					return
				}
				select {
				case item, ok := <-itemsChan:
					if !ok {
						return
					}
					func() {
						defer RecoverWithCallback(func(err error) {
							mu.Lock()
							errors[item.index] = err
							mu.Unlock()
						})
						results[item.index], errors[item.index] = wp.worker(ctx, item.item)
					}()
					processed[item.index] = true
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	wg.Wait()

	// A cancelled context leaves items behind in the channel; surface the
	// cancellation for every skipped item instead of returning zero values
	// that look like successful results.
	if err := ctx.Err(); err != nil {
		for i, done := range processed {
			if !done && errors[i] == nil {
				errors[i] = err
			}
		}
	}

	return results, errors
}
