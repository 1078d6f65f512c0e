package view

import (
	"context"
	"sync"
	"time"
)

// Repeater runs a task on a fixed interval until stopped.
type Repeater struct {
	interval time.Duration
	task     func(ctx context.Context)

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewRepeater creates a stopped repeater.
func NewRepeater(interval time.Duration, task func(ctx context.Context)) *Repeater {
	return &Repeater{interval: interval, task: task}
}

// Start begins ticking. The first run happens after one interval.
// Starting a running repeater does nothing.
func (r *Repeater) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	r.cancel = cancel
	r.done = done

	go func() {
		defer close(done)

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.task(ctx)
			}
		}
	}()
}

// Stop cancels the repeater and waits for a running task to return.
func (r *Repeater) Stop() {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel, r.done = nil, nil
	r.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether the repeater is started.
func (r *Repeater) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cancel != nil
}
