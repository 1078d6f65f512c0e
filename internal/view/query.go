// Package view holds the polling view models rendered by the CLI.
package view

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dtroode/ttportal/internal/logger"
)

// ErrClosed is returned by views used after Close.
var ErrClosed = errors.New("view closed")

// Status is the load state of a query.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Snapshot is the observable state of a query.
type Snapshot[T any] struct {
	Status Status
	Data   T
	// Err is the failure of the initial load.
	Err error
	// Stale is the failure of the last background refresh. Data is still
	// the last successful snapshot.
	Stale     error
	UpdatedAt time.Time
}

// Fetcher reads the data of a query.
type Fetcher[T any] func(ctx context.Context) (T, error)

// Query caches the result of a read. The first load blocks the view; later
// refreshes replace the data on success and keep it on failure.
type Query[T any] struct {
	name   string
	fetch  Fetcher[T]
	logger *logger.Logger
	now    func() time.Time

	mu       sync.Mutex
	snap     Snapshot[T]
	loaded   bool
	closed   bool
	seq      uint64
	onUpdate func(Snapshot[T])
}

// NewQuery creates a new query. name is used in logs.
func NewQuery[T any](name string, fetch Fetcher[T], logger *logger.Logger) *Query[T] {
	return &Query[T]{
		name:   name,
		fetch:  fetch,
		logger: logger,
		now:    time.Now,
	}
}

// Load fetches the data. Before the first success it drives the query
// through Loading to Ready or Failed; afterwards it behaves like Refresh.
func (q *Query[T]) Load(ctx context.Context) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrClosed
	}
	initial := !q.loaded
	if initial {
		q.snap.Status = StatusLoading
		q.snap.Err = nil
	}
	q.seq++
	seq := q.seq
	q.mu.Unlock()

	data, err := q.fetch(ctx)

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrClosed
	}
	if seq != q.seq {
		// a newer load was issued while this one was running
		q.mu.Unlock()
		return err
	}

	switch {
	case err != nil && q.loaded:
		q.snap.Stale = err
		q.logger.Warn("View: background refresh failed, keeping previous data",
			"view", q.name,
			"error", err.Error())
	case err != nil:
		q.snap.Status = StatusFailed
		q.snap.Err = err
		q.logger.Error("View: initial load failed",
			"view", q.name,
			"error", err.Error())
	default:
		q.loaded = true
		q.snap = Snapshot[T]{Status: StatusReady, Data: data, UpdatedAt: q.now()}
	}
	snap, notify := q.snap, q.onUpdate
	q.mu.Unlock()

	if notify != nil {
		notify(snap)
	}
	return err
}

// OnUpdate registers fn to be called with the new state after every
// completed load. It replaces any earlier callback.
func (q *Query[T]) OnUpdate(fn func(Snapshot[T])) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.onUpdate = fn
}

// Refresh re-runs the read. It is Load under the name used by mutations
// and the repeater.
func (q *Query[T]) Refresh(ctx context.Context) error {
	return q.Load(ctx)
}

// Snapshot returns the current state.
func (q *Query[T]) Snapshot() Snapshot[T] {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.snap
}

// Close stops the query from applying any further results.
func (q *Query[T]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
}
