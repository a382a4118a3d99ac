package task

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/tabmatch/pkg/errors"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name       string
		fn         Func[int]
		wantStatus Status
		wantValue  int
		check      func(t *testing.T, err error)
	}{
		{
			name:       "completed",
			fn:         func(*Handle) (int, error) { return 42, nil },
			wantStatus: Completed,
			wantValue:  42,
			check:      func(t *testing.T, err error) { assert.NoError(t, err) },
		},
		{
			name:       "cancelled discards value",
			fn:         func(*Handle) (int, error) { return 7, errors.ErrCanceled },
			wantStatus: Cancelled,
			check:      func(t *testing.T, err error) { assert.True(t, errors.IsCanceled(err)) },
		},
		{
			name:       "error becomes task error",
			fn:         func(*Handle) (int, error) { return 7, fmt.Errorf("boom") },
			wantStatus: Failed,
			check: func(t *testing.T, err error) {
				assert.True(t, errors.IsTaskError(err))
				assert.Contains(t, err.Error(), "boom")
			},
		},
		{
			name:       "panic becomes task error",
			fn:         func(*Handle) (int, error) { panic("index out of range") },
			wantStatus: Failed,
			check: func(t *testing.T, err error) {
				assert.True(t, errors.IsTaskError(err))
				assert.Contains(t, err.Error(), "index out of range")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Run(context.Background(), NewHandle(nil), "test", tt.fn)
			assert.Equal(t, tt.wantStatus, out.Status)
			assert.Equal(t, tt.wantValue, out.Value)
			tt.check(t, out.Err)
		})
	}
}

func TestRun_AlreadyCanceled(t *testing.T) {
	h := NewHandle(nil)
	h.Cancel()

	called := false
	out := Run(context.Background(), h, "test", func(*Handle) (int, error) {
		called = true
		return 1, nil
	})

	assert.False(t, called)
	assert.Equal(t, Cancelled, out.Status)
}

func TestGo_ContextCancelStopsLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := NewHandle(nil)
	started := make(chan struct{})

	done := Go(ctx, h, "loop", func(h *Handle) ([]int, error) {
		close(started)
		var out []int
		for i := 0; ; i++ {
			if h.Canceled() {
				return nil, errors.ErrCanceled
			}
			out = append(out, i)
			time.Sleep(time.Millisecond)
		}
	})

	<-started
	cancel()

	select {
	case out := <-done:
		assert.Equal(t, Cancelled, out.Status)
		assert.Nil(t, out.Value)
	case <-time.After(5 * time.Second):
		t.Fatal("task did not stop after context cancellation")
	}

	_, open := <-done
	assert.False(t, open)
}

func TestHandle_Report(t *testing.T) {
	var mu sync.Mutex
	var seen []int
	h := NewHandle(func(p int) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, p)
	})

	for _, p := range []int{10, 10, 50, 150, -3} {
		h.Report(p)
	}

	require.Equal(t, []int{10, 50, 100, 0}, seen)
	assert.Equal(t, 0, h.Progress())
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "completed", Completed.String())
	assert.Equal(t, "cancelled", Cancelled.String())
	assert.Equal(t, "failed", Failed.String())
	assert.Equal(t, "status(9)", Status(9).String())
}
