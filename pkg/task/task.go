// Package task runs a comparison loop in the background with cooperative
// cancellation and progress reporting.
//
// The foreground owns a Handle and is its only writer of the cancellation
// flag; the background loop is the only writer of the progress counter. Both
// are atomics, so no further locking is needed. Loops poll Handle.Canceled at
// iteration boundaries and return errors.ErrCanceled to stop.
package task

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/agentstation/tabmatch/pkg/errors"
)

// Status is the terminal state of a task.
type Status int

const (
	// Completed means the loop ran to the end and Value holds its result.
	Completed Status = iota
	// Cancelled means the user stopped the loop; Value is the zero value.
	Cancelled
	// Failed means the loop returned an error or panicked; Value is the zero value.
	Failed
)

// String returns a lowercase name for the status.
func (s Status) String() string {
	switch s {
	case Completed:
		return "completed"
	case Cancelled:
		return "cancelled"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Outcome is delivered once when a task ends.
type Outcome[T any] struct {
	Status Status
	Value  T
	Err    error
}

// ProgressFunc receives progress percentages in [0,100]. It is called on the
// task goroutine.
type ProgressFunc func(percent int)

// Handle carries the cancellation flag and progress counter shared between
// the foreground and one background task.
type Handle struct {
	canceled   atomic.Bool
	progress   atomic.Int32
	onProgress ProgressFunc
}

// NewHandle creates a handle. onProgress may be nil.
func NewHandle(onProgress ProgressFunc) *Handle {
	return &Handle{onProgress: onProgress}
}

// Cancel asks the task to stop at its next iteration boundary.
func (h *Handle) Cancel() {
	h.canceled.Store(true)
}

// Canceled reports whether Cancel was called.
func (h *Handle) Canceled() bool {
	return h.canceled.Load()
}

// Report records percent and notifies the progress callback when it changed.
func (h *Handle) Report(percent int) {
	percent = max(0, min(100, percent))
	if int(h.progress.Swap(int32(percent))) == percent {
		return
	}
	if h.onProgress != nil {
		h.onProgress(percent)
	}
}

// Progress returns the last reported percentage.
func (h *Handle) Progress() int {
	return int(h.progress.Load())
}

// Func is the body of a task. It must poll h.Canceled and return
// errors.ErrCanceled when set.
type Func[T any] func(h *Handle) (T, error)

// Run executes fn on the calling goroutine and classifies its result.
// Cancelling ctx cancels the handle. Panics become a TaskError.
func Run[T any](ctx context.Context, h *Handle, operation string, fn Func[T]) (out Outcome[T]) {
	stop := context.AfterFunc(ctx, h.Cancel)
	defer stop()
	if ctx.Err() != nil {
		h.Cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			out = Outcome[T]{
				Status: Failed,
				Err:    errors.NewTaskError(operation, fmt.Errorf("panic: %v", r)),
			}
		}
	}()

	if h.Canceled() {
		return Outcome[T]{Status: Cancelled, Err: errors.ErrCanceled}
	}

	value, err := fn(h)
	switch {
	case err == nil:
		return Outcome[T]{Status: Completed, Value: value}
	case errors.IsCanceled(err):
		return Outcome[T]{Status: Cancelled, Err: errors.ErrCanceled}
	case errors.IsTaskError(err):
		return Outcome[T]{Status: Failed, Err: err}
	default:
		return Outcome[T]{Status: Failed, Err: errors.NewTaskError(operation, err)}
	}
}

// Go starts fn on a new goroutine. The returned channel receives exactly one
// Outcome and is then closed.
func Go[T any](ctx context.Context, h *Handle, operation string, fn Func[T]) <-chan Outcome[T] {
	done := make(chan Outcome[T], 1)
	go func() {
		defer close(done)
		done <- Run(ctx, h, operation, fn)
	}()
	return done
}
