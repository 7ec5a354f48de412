package pipeline

import (
	"context"
	"sync"
)

// semaphore implements a simple counting semaphore for limiting concurrency
type semaphore struct {
	ch chan struct{}
}

// newSemaphore creates a new semaphore with the given capacity
func newSemaphore(capacity int) *semaphore {
	if capacity <= 0 {
		capacity = 1
	}
	return &semaphore{
		ch: make(chan struct{}, capacity),
	}
}

// acquire acquires a semaphore slot, blocking if necessary
func (s *semaphore) acquire(ctx context.Context) error {
	select {
	case s.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// release releases a semaphore slot
func (s *semaphore) release() {
	<-s.ch
}

// forEach runs fn for 0..n-1 in index order with at most workers in flight.
// The first error cancels the remaining work and is returned.
func forEach(ctx context.Context, workers, n int, fn func(ctx context.Context, i int) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sem := newSemaphore(workers)
	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)

	for i := 0; i < n; i++ {
		if err := sem.acquire(ctx); err != nil {
			break
		}
		if ctx.Err() != nil {
			sem.release()
			break
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer sem.release()
			if err := fn(ctx, i); err != nil {
				once.Do(func() {
					firstErr = err
					cancel()
				})
			}
		}(i)
	}
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return context.Cause(ctx)
}
