package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Closer is implemented by connection handles the Connector can release on shutdown.
type Closer interface {
	Close(ctx context.Context) error
}

// OpenFunc dials the backing store and returns a ready handle.
type OpenFunc[T Closer] func(ctx context.Context) (T, error)

// Connector lazily opens a single handle per process. Concurrent first callers share one in-flight
// attempt; a failed attempt is not remembered, so the next call dials again.
type Connector[T Closer] struct {
	open    OpenFunc[T]
	timeout time.Duration

	mu    sync.RWMutex
	conn  T
	ready bool

	group singleflight.Group
}

func NewConnector[T Closer](open OpenFunc[T], timeout time.Duration) *Connector[T] {
	return &Connector[T]{open: open, timeout: timeout}
}

// Connect returns the memoized handle, dialing it on first use.
func (c *Connector[T]) Connect(ctx context.Context) (T, error) {
	c.mu.RLock()
	if c.ready {
		conn := c.conn
		c.mu.RUnlock()
		return conn, nil
	}
	c.mu.RUnlock()

	ch := c.group.DoChan("connect", func() (any, error) {
		c.mu.RLock()
		if c.ready {
			conn := c.conn
			c.mu.RUnlock()
			return conn, nil
		}
		c.mu.RUnlock()

		// The dial is shared, so it must outlive any single caller's cancellation.
		dialCtx := context.WithoutCancel(ctx)
		if c.timeout > 0 {
			var cancel context.CancelFunc
			dialCtx, cancel = context.WithTimeout(dialCtx, c.timeout)
			defer cancel()
		}

		conn, err := c.open(dialCtx)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}

		c.mu.Lock()
		c.conn = conn
		c.ready = true
		c.mu.Unlock()
		return conn, nil
	})

	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

// Close releases the handle if one was opened. Later Connect calls dial again.
func (c *Connector[T]) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.ready {
		return nil
	}
	err := c.conn.Close(ctx)
	var zero T
	c.conn = zero
	c.ready = false
	return err
}
