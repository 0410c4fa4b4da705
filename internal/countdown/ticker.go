package countdown

import (
	"context"
	"sync"
	"time"
)

// Ticker drives the countdown for the currently displayed order. Starting a
// new watch cancels the previous one, so navigation between orders never
// leaves a stale goroutine ticking.
type Ticker struct {
	interval time.Duration
	now      func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewTicker constructs a ticker with the given period. Zero or negative
// period falls back to one second.
func NewTicker(interval time.Duration) *Ticker {
	if interval <= 0 {
		interval = time.Second
	}
	return &Ticker{interval: interval, now: time.Now}
}

// Watch begins emitting display strings for the deadline. onTick receives a
// rendered remaining duration every period, starting immediately. onExpire
// fires exactly once when the deadline passes; after that the watch stops
// itself. Any previous watch is cancelled first.
func (t *Ticker) Watch(ctx context.Context, endsAt time.Time, onTick func(string), onExpire func()) {
	t.Stop()

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	t.mu.Lock()
	t.cancel = cancel
	t.done = done
	t.mu.Unlock()

	go t.run(runCtx, done, endsAt, onTick, onExpire)
}

// Stop cancels the active watch and waits for its goroutine to exit.
func (t *Ticker) Stop() {
	t.mu.Lock()
	cancel := t.cancel
	done := t.done
	t.cancel = nil
	t.done = nil
	t.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

func (t *Ticker) run(ctx context.Context, done chan struct{}, endsAt time.Time, onTick func(string), onExpire func()) {
	defer close(done)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	if t.emit(endsAt, onTick, onExpire) {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if t.emit(endsAt, onTick, onExpire) {
				return
			}
		}
	}
}

// emit renders one tick and reports whether the countdown has expired.
func (t *Ticker) emit(endsAt time.Time, onTick func(string), onExpire func()) bool {
	remaining := endsAt.Sub(t.now())
	if onTick != nil {
		onTick(FormatRemaining(remaining))
	}
	if remaining <= 0 {
		if onExpire != nil {
			onExpire()
		}
		return true
	}
	return false
}
