package view

import (
	"sync"
	"time"
)

// Flash is a message that clears itself after a fixed duration.
type Flash struct {
	duration time.Duration

	mu    sync.Mutex
	msg   string
	timer *time.Timer
}

// NewFlash creates an empty flash.
func NewFlash(duration time.Duration) *Flash {
	return &Flash{duration: duration}
}

// Show replaces the message and restarts the clear timer.
func (f *Flash) Show(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.timer != nil {
		f.timer.Stop()
	}
	f.msg = msg

	var t *time.Timer
	t = time.AfterFunc(f.duration, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.timer == t {
			f.msg = ""
			f.timer = nil
		}
	})
	f.timer = t
}

// Message returns the current message or an empty string.
func (f *Flash) Message() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.msg
}

// Stop clears the message and cancels the timer.
func (f *Flash) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	f.msg = ""
}
