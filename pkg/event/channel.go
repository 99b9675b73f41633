package event

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// ErrClosed is returned by Recv once the channel is closed and drained
var ErrClosed = errors.New("event channel closed")

// Channel is an unbounded, ordered queue with a single consumer. Producers
// hold Sender handles; the consumer end is handed out once by Take.
type Channel struct {
	mu     sync.Mutex
	queue  []Event
	closed bool
	notify chan struct{}

	receiver *Receiver
}

// NewChannel creates an empty channel
func NewChannel() *Channel {
	c := &Channel{
		notify: make(chan struct{}, 1),
	}
	c.receiver = &Receiver{ch: c}
	return c
}

// Sender returns a new producer handle. Each handle can be revoked
// independently without affecting the others.
func (c *Channel) Sender() *Sender {
	return &Sender{ch: c}
}

// Take transfers ownership of the consumer end. The first call returns the
// receiver; every later call returns nil.
func (c *Channel) Take() *Receiver {
	c.mu.Lock()
	defer c.mu.Unlock()

	r := c.receiver
	c.receiver = nil
	return r
}

// Close marks the channel closed. Queued events can still be received.
func (c *Channel) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	c.wake()
}

// Len returns the number of queued events
func (c *Channel) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.queue)
}

func (c *Channel) push(ev Event) bool {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false
	}
	c.queue = append(c.queue, ev)
	c.mu.Unlock()

	c.wake()
	return true
}

// pop returns the oldest queued event. ok is false when the queue is
// empty; closed reports whether no more events will ever arrive.
func (c *Channel) pop() (ev Event, ok bool, closed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.queue) == 0 {
		return Event{}, false, c.closed
	}

	ev = c.queue[0]
	c.queue[0] = Event{}
	c.queue = c.queue[1:]
	if len(c.queue) == 0 {
		// Let the backing array be collected after bursts
		c.queue = nil
	}
	return ev, true, false
}

func (c *Channel) wake() {
	select {
	case c.notify <- struct{}{}:
	default:
	}
}

// Sender is a producer handle on a Channel
type Sender struct {
	ch      *Channel
	revoked atomic.Bool
}

// Send enqueues ev. It never blocks and returns false when the handle has
// been revoked or the channel is closed.
func (s *Sender) Send(ev Event) bool {
	if s == nil || s.revoked.Load() {
		return false
	}
	return s.ch.push(ev)
}

// Revoke detaches this handle; later sends are dropped
func (s *Sender) Revoke() {
	s.revoked.Store(true)
}

// Revoked reports whether Revoke was called
func (s *Sender) Revoked() bool {
	return s.revoked.Load()
}

// Receiver is the single consumer end of a Channel
type Receiver struct {
	ch *Channel
}

// Recv blocks until an event is available, the channel is closed and
// drained, or ctx is done.
func (r *Receiver) Recv(ctx context.Context) (Event, error) {
	for {
		ev, ok, closed := r.ch.pop()
		if ok {
			return ev, nil
		}
		if closed {
			return Event{}, ErrClosed
		}

		select {
		case <-r.ch.notify:
		case <-ctx.Done():
			return Event{}, ctx.Err()
		}
	}
}

// TryRecv returns the next event without blocking
func (r *Receiver) TryRecv() (Event, bool) {
	ev, ok, _ := r.ch.pop()
	return ev, ok
}

// Len returns the number of events waiting to be received
func (r *Receiver) Len() int {
	return r.ch.Len()
}
