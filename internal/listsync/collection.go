// Package listsync keeps an in-memory collection consistent with the server
// by re-fetching the whole list after every successful write.
package listsync

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

type State int

const (
	Idle State = iota
	Loading
	Loaded
	LoadFailed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case LoadFailed:
		return "load-failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// ErrRefreshAfterWrite marks a write that succeeded but whose follow-up
// fetch did not.
var ErrRefreshAfterWrite = errors.New("refresh after write")

// Fetcher loads the full collection.
type Fetcher[T any] func(ctx context.Context) ([]T, error)

// Snapshot is a point-in-time copy of a collection.
type Snapshot[T any] struct {
	State   State
	Items   []T
	Err     error
	Fetches int // completed or in-flight fetches issued so far
}

// Collection is one page instance's view of a server-side list.
// Items only ever change by a completed fetch.
type Collection[T any] struct {
	mu        sync.Mutex
	fetch     Fetcher[T]
	log       *zap.Logger
	state     State
	items     []T
	err       error
	fetches   int
	activated bool
}

type Option func(*options)

type options struct {
	log *zap.Logger
}

func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.log = l }
}

func New[T any](fetch Fetcher[T], opts ...Option) *Collection[T] {
	o := options{log: zap.NewNop()}
	for _, fn := range opts {
		fn(&o)
	}
	return &Collection[T]{fetch: fetch, log: o.log}
}

// Activate runs the initial load. Only the first call fetches; later calls
// return nil without touching the network. A first load cut short by ctx
// does not count, so the next Activate tries again.
func (c *Collection[T]) Activate(ctx context.Context) error {
	c.mu.Lock()
	if c.activated {
		c.mu.Unlock()
		return nil
	}
	c.activated = true
	c.mu.Unlock()

	err := c.Refresh(ctx)
	if err != nil && ctx.Err() != nil {
		c.mu.Lock()
		c.activated = false
		c.mu.Unlock()
	}
	return err
}

// Refresh re-fetches the whole collection. If ctx ends before the fetch
// resolves, the result is dropped and the previous state is kept.
func (c *Collection[T]) Refresh(ctx context.Context) error {
	c.mu.Lock()
	prev := c.state
	c.state = Loading
	c.fetches++
	n := c.fetches
	c.mu.Unlock()

	items, err := c.fetch(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if ctxErr := ctx.Err(); ctxErr != nil {
		c.state = prev
		c.log.Debug("fetch discarded", zap.Int("fetch", n), zap.Error(ctxErr))
		return ctxErr
	}
	if err != nil {
		c.state = LoadFailed
		c.err = err
		c.log.Warn("fetch failed", zap.Int("fetch", n), zap.Error(err))
		return err
	}
	if items == nil {
		items = []T{}
	}
	c.items = items
	c.err = nil
	c.state = Loaded
	c.log.Debug("fetch done", zap.Int("fetch", n), zap.Int("items", len(items)))
	return nil
}

// AfterWrite runs write and, only if it succeeds, refreshes the collection
// exactly once. A failed write leaves items and state alone.
func (c *Collection[T]) AfterWrite(ctx context.Context, write func(ctx context.Context) error) error {
	if err := write(ctx); err != nil {
		return err
	}
	if err := c.Refresh(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrRefreshAfterWrite, err)
	}
	return nil
}

func (c *Collection[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]T, len(c.items))
	copy(items, c.items)
	return Snapshot[T]{State: c.state, Items: items, Err: c.err, Fetches: c.fetches}
}

func (c *Collection[T]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}
