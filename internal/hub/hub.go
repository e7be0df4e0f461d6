// Package hub implements the Broadcast Hub: a reader-writer-guarded
// subscriber set with non-blocking, per-subscriber bounded publish. The
// register/unregister/broadcast shape is grounded in the retrieval pack's
// websocket hub, generalized here from one shared broadcast channel to a
// bounded inbox per subscriber so a slow reader's drops never affect
// anyone else, and so overflow alone never evicts a subscriber — only an
// explicit write failure signaled by the transport layer does.
package hub

import (
	"log/slog"
	"sync"

	"svctopo/internal/domain"
)

// Subscriber is a bounded inbox attached to one external stream.
type Subscriber struct {
	id     int64
	inbox  chan domain.StatusUpdate
	hub    *Hub
	closed bool
	mu     sync.Mutex
}

// NextMessage blocks until a message arrives or the subscriber is closed,
// in which case ok is false.
func (s *Subscriber) NextMessage() (domain.StatusUpdate, bool) {
	msg, ok := <-s.inbox
	return msg, ok
}

// Close signals a write failure on the transport side; the Hub evicts the
// subscriber immediately. Subsequent publishes never see it again.
func (s *Subscriber) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.hub.evict(s)
}

type Hub struct {
	log *slog.Logger

	mu          sync.RWMutex
	subscribers map[int64]*Subscriber
	nextID      int64

	inboxCap int
}

func New(inboxCap int, log *slog.Logger) *Hub {
	if inboxCap <= 0 {
		inboxCap = 100
	}
	return &Hub{
		log:         log,
		subscribers: make(map[int64]*Subscriber),
		inboxCap:    inboxCap,
	}
}

// Subscribe returns a new bounded-inbox Subscriber registered with the hub.
func (h *Hub) Subscribe() *Subscriber {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	id := h.nextID

	s := &Subscriber{id: id, inbox: make(chan domain.StatusUpdate, h.inboxCap), hub: h}
	h.subscribers[id] = s
	return s
}

func (h *Hub) evict(s *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subscribers[s.id]; ok {
		delete(h.subscribers, s.id)
		close(s.inbox)
	}
}

// Publish enqueues update to every live subscriber without blocking. A
// full inbox is a per-subscriber drop, logged but not evicting; this is
// the overflow policy from §4.5.
func (h *Hub) Publish(update domain.StatusUpdate) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, s := range h.subscribers {
		select {
		case s.inbox <- update:
		default:
			h.log.Warn("hub: subscriber inbox full, dropping update", "subscriber_id", s.id, "service_id", update.ServiceID)
		}
	}
}

// Count reports the number of live subscribers (diagnostic only).
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
