// Package fanout runs a bounded number of workers over a slice and collects
// results back in slice order.
//
// Every concurrent stage of the chaptering pipeline has the same shape:
// submit one independent oracle call per item, block until all complete,
// then continue with results in the original item order (completion order
// under concurrency is arbitrary). Map encapsulates that fan-out/fan-in so
// no stage ever consumes unsorted concurrent output.
package fanout

import (
	"context"
	"sync"
)

// DefaultWidth is the worker-pool width used when none is given.
const DefaultWidth = 10

// Map applies fn to every item with at most width concurrent workers and
// returns the outputs in item order. The first error cancels the remaining
// work and is returned; outputs are only valid when the error is nil.
func Map[I, O any](ctx context.Context, items []I, width int, fn func(ctx context.Context, index int, item I) (O, error)) ([]O, error) {
	if width <= 0 {
		width = DefaultWidth
	}

	workCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	out := make([]O, len(items))
	sem := make(chan struct{}, width)
	errOnce := sync.Once{}
	var firstErr error
	var wg sync.WaitGroup

	for i, item := range items {
		select {
		case sem <- struct{}{}:
		case <-workCtx.Done():
		}
		if workCtx.Err() != nil {
			break
		}

		wg.Add(1)
		go func(index int, item I) {
			defer wg.Done()
			defer func() { <-sem }()

			result, err := fn(workCtx, index, item)
			if err != nil {
				errOnce.Do(func() {
					firstErr = err
					cancel()
				})
				return
			}
			out[index] = result
		}(i, item)
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Each applies fn to every item with at most width concurrent workers and
// waits for completion. Unlike Map, individual errors do not cancel sibling
// work; fn is expected to handle its own failures (log-and-skip semantics).
func Each[I any](ctx context.Context, items []I, width int, fn func(ctx context.Context, index int, item I)) {
	if width <= 0 {
		width = DefaultWidth
	}

	sem := make(chan struct{}, width)
	var wg sync.WaitGroup

	for i, item := range items {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			wg.Wait()
			return
		}

		wg.Add(1)
		go func(index int, item I) {
			defer wg.Done()
			defer func() { <-sem }()
			fn(ctx, index, item)
		}(i, item)
	}

	wg.Wait()
}
