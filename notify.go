package sitepress

import (
	"context"
	"sync"
)

// Op is the kind of table change carried by an Event. Consumers treat all
// ops identically: something changed, refetch.
type Op string

const (
	OpInsert Op = "insert"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Table names published on the notification bus.
const (
	TablePosts    = "posts"
	TableSections = "content_sections"
)

// Event is one change notification.
type Event struct {
	Table string
	Op    Op
}

// Notifier is the in-process change-notification bus. The store publishes
// after every successful write; consumers subscribe with a context and are
// removed deterministically when it is canceled.
type Notifier struct {
	mu     sync.Mutex
	subs   map[int]chan Event
	nextID int
	closed bool
}

// NewNotifier returns an empty bus.
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]chan Event)}
}

// Subscribe returns a channel of change events. The channel is closed and
// the subscription removed when ctx is canceled or the bus is closed.
func (n *Notifier) Subscribe(ctx context.Context) <-chan Event {
	ch := make(chan Event, 16)

	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		close(ch)
		return ch
	}
	id := n.nextID
	n.nextID++
	n.subs[id] = ch
	n.mu.Unlock()

	go func() {
		<-ctx.Done()
		n.mu.Lock()
		if _, ok := n.subs[id]; ok {
			delete(n.subs, id)
			close(ch)
		}
		n.mu.Unlock()
	}()

	return ch
}

// Publish delivers an event to every subscriber. Delivery is fire-and-forget:
// a subscriber with a full buffer misses the event rather than blocking the
// writer.
func (n *Notifier) Publish(e Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, ch := range n.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

// Close shuts the bus down and closes all subscriber channels.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}
	n.closed = true
	for id, ch := range n.subs {
		delete(n.subs, id)
		close(ch)
	}
}
