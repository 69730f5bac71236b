// Package admission bounds the number of segment streams served at once.
package admission

import (
	"context"
	"errors"
	"sync"
)

// ErrPoolClosed is returned by Acquire once the pool has been closed.
var ErrPoolClosed = errors.New("admission: pool closed")

// Slot is a permit to run one stream. It must be handed back with Release.
type Slot struct {
	id int
}

// ID returns the slot number, stable for the life of the pool.
func (s *Slot) ID() int {
	return s.id
}

// Pool manages a fixed set of slots for concurrent streams.
type Pool struct {
	slots  chan *Slot
	size   int
	mu     sync.Mutex
	closed bool
}

// NewPool creates a pool of n slots.
func NewPool(size int) *Pool {
	if size <= 0 {
		size = 1
	}

	pool := &Pool{
		slots: make(chan *Slot, size),
		size:  size,
	}
	for i := 0; i < size; i++ {
		pool.slots <- &Slot{id: i}
	}

	return pool
}

// Acquire gets a slot from the pool, blocking if none available.
// Respects context cancellation. Returns ErrPoolClosed if pool is closed.
func (p *Pool) Acquire(ctx context.Context) (*Slot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	select {
	case slot, ok := <-p.slots:
		if !ok {
			return nil, ErrPoolClosed
		}
		return slot, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Release returns a slot to the pool. Releasing after Close is a no-op.
func (p *Pool) Release(s *Slot) {
	if s == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}

	select {
	case p.slots <- s:
	default:
		// Pool full; the slot did not come from this pool.
	}
}

// Close stops handing out slots. Streams holding a slot keep running.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true

	close(p.slots)
	for range p.slots {
	}
	return nil
}

// Size returns the pool size.
func (p *Pool) Size() int {
	return p.size
}

// Available returns the number of idle slots.
func (p *Pool) Available() int {
	return len(p.slots)
}
