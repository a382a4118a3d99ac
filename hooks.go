package tabmatch

import (
	"sync"

	"github.com/agentstation/tabmatch/pkg/task"
)

// Hook function types for task events
type (
	// ProgressHook is called with the percentage reached by a running task.
	// It runs on the task goroutine.
	ProgressHook func(operation string, percent int)

	// FinishedHook is called once when a task ends.
	FinishedHook func(operation string, status task.Status)
)

// hooks manages event callbacks for running tasks
type hooks struct {
	mu         sync.RWMutex
	onProgress []ProgressHook
	onFinished []FinishedHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnProgress registers a callback for progress updates
func (h *hooks) OnProgress(fn ProgressHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onProgress = append(h.onProgress, fn)
}

// OnFinished registers a callback for task completion
func (h *hooks) OnFinished(fn FinishedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onFinished = append(h.onFinished, fn)
}

// progressFunc adapts the registered hooks to a task progress callback.
func (h *hooks) progressFunc(operation string) task.ProgressFunc {
	return func(percent int) {
		h.mu.RLock()
		defer h.mu.RUnlock()
		for _, hook := range h.onProgress {
			hook(operation, percent)
		}
	}
}

func (h *hooks) triggerFinished(operation string, status task.Status) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onFinished {
		hook(operation, status)
	}
}
