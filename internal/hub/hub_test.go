package hub

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"svctopo/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPublishOrderPerSubscriber(t *testing.T) {
	h := New(10, testLogger())
	sub := h.Subscribe()

	for i := 0; i < 5; i++ {
		h.Publish(domain.StatusUpdate{ServiceID: i})
	}

	for i := 0; i < 5; i++ {
		msg, ok := sub.NextMessage()
		if !ok {
			t.Fatalf("subscriber closed early at %d", i)
		}
		if msg.ServiceID != i {
			t.Fatalf("out of order: want %d got %d", i, msg.ServiceID)
		}
	}
}

func TestOverflowDropsWithoutEviction(t *testing.T) {
	h := New(2, testLogger())
	sub := h.Subscribe()

	for i := 0; i < 10; i++ {
		h.Publish(domain.StatusUpdate{ServiceID: i})
	}

	if h.Count() != 1 {
		t.Fatalf("overflow alone must not evict, count=%d", h.Count())
	}

	// The two oldest-buffered messages should still be the first two published.
	first, ok := sub.NextMessage()
	if !ok || first.ServiceID != 0 {
		t.Fatalf("want first buffered message service 0, got %+v ok=%v", first, ok)
	}
}

func TestCloseEvictsSubscriber(t *testing.T) {
	h := New(10, testLogger())
	sub := h.Subscribe()
	if h.Count() != 1 {
		t.Fatalf("want 1 subscriber, got %d", h.Count())
	}

	sub.Close()
	if h.Count() != 0 {
		t.Fatalf("want 0 subscribers after close, got %d", h.Count())
	}

	_, ok := sub.NextMessage()
	if ok {
		t.Fatal("closed subscriber inbox should be drained and closed")
	}
}

func TestIndependentSubscribersDontAffectEachOther(t *testing.T) {
	h := New(1, testLogger())
	fast := h.Subscribe()
	slow := h.Subscribe()

	h.Publish(domain.StatusUpdate{ServiceID: 1})
	h.Publish(domain.StatusUpdate{ServiceID: 2}) // both inboxes (cap 1) are full: dropped for each, neither evicted

	msg, ok := fast.NextMessage()
	if !ok || msg.ServiceID != 1 {
		t.Fatalf("fast subscriber expected first message, got %+v", msg)
	}

	msg, ok = slow.NextMessage()
	if !ok || msg.ServiceID != 1 {
		t.Fatalf("slow subscriber should still have its first buffered message, got %+v", msg)
	}

	select {
	case <-time.After(10 * time.Millisecond):
	}
}
