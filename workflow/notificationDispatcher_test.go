package workflow

import (
	"context"
	"testing"
	"time"
)

func TestNotificationDispatcherDefaults(t *testing.T) {
	d := NewNotificationDispatcher(nil, nil)

	if d.DispatcherID == "" {
		t.Error("dispatcher must self-assign an id")
	}
	if d.BatchSize <= 0 || d.MaxAttempts <= 0 {
		t.Errorf("batch_size=%d max_attempts=%d, want positive defaults", d.BatchSize, d.MaxAttempts)
	}
	if d.PollInterval <= 0 || d.LockTimeout <= 0 || d.InitialBackoff <= 0 {
		t.Error("poll/lock/backoff durations must have positive defaults")
	}

	other := NewNotificationDispatcher(nil, nil)
	if other.DispatcherID == d.DispatcherID {
		t.Error("each dispatcher instance needs its own id for lock ownership")
	}
}

func TestNotificationDispatcherRunStopsOnCancel(t *testing.T) {
	// nil DB makes every poll a no-op; the loop must still honor
	// cancellation promptly
	d := NewNotificationDispatcher(nil, nil)
	d.PollInterval = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		d.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("dispatcher did not stop after context cancellation")
	}
}
