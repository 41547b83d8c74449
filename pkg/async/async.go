package async

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Future is the eventual result of a function started with Async.
type Future[U any] struct {
	result U
	err    error
	done   chan struct{}
}

// Await blocks until the function returns.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// AwaitWithTimeout returns ErrTimeout if the function is still running after timeout.
// The function keeps running in the background.
func (f *Future[U]) AwaitWithTimeout(timeout time.Duration) (U, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-time.After(timeout):
		var zero U
		return zero, ErrTimeout
	}
}

func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Async runs fn(ctx, param) in a new goroutine. A panic in fn is returned as ErrPanic.
// A context that is already cancelled short-circuits without calling fn.
func Async[T, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				f.err = fmt.Errorf("%w: %v", ErrPanic, r)
			}
		}()

		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}
		f.result, f.err = fn(ctx, param)
	}()

	return f
}

// Detach runs fn like Async but on a context that survives cancellation of ctx
// while keeping its values (request ID, logger attributes). Use it for
// fire-and-forget side effects started from a request handler.
func Detach[T, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	return Async(context.WithoutCancel(ctx), param, fn)
}

// Tracker counts in-flight detached tasks so shutdown can wait for them.
// The zero value is ready to use.
type Tracker struct {
	wg sync.WaitGroup
}

// Go starts fn through Detach and tracks it until it returns.
func Go[T, U any](t *Tracker, ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	t.wg.Add(1)
	return Detach(ctx, param, func(ctx context.Context, p T) (U, error) {
		defer t.wg.Done()
		return fn(ctx, p)
	})
}

// Wait blocks until every tracked task finished or ctx is done.
func (t *Tracker) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
