package audit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/citylibrary/lending-system/internal/core/ports"
)

type captureWriter struct {
	mu     sync.Mutex
	events []ports.LoanEvent
}

func (w *captureWriter) InsertLoanEvent(_ context.Context, event ports.LoanEvent) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.events = append(w.events, event)
	return nil
}

func (w *captureWriter) snapshot() []ports.LoanEvent {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]ports.LoanEvent(nil), w.events...)
}

func TestDispatcher_WritesAllEvents(t *testing.T) {
	writer := &captureWriter{}
	d := NewDispatcher(3, writer, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	const n = 50
	for i := 0; i < n; i++ {
		d.Record(ports.LoanEvent{
			LoanID: "loan",
			BookID: string(rune('a' + i%7)),
			Action: ports.LoanBorrowed,
		})
	}

	deadline := time.Now().Add(2 * time.Second)
	for len(writer.snapshot()) < n {
		if time.Now().After(deadline) {
			t.Fatalf("got %d events, want %d", len(writer.snapshot()), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// Events for the same book land on the same worker, so their write order
// matches enqueue order.
func TestDispatcher_SameBookOrdering(t *testing.T) {
	writer := &captureWriter{}
	d := NewDispatcher(4, writer, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	actions := []ports.LoanEventAction{
		ports.LoanBorrowed, ports.LoanReturned,
		ports.LoanBorrowed, ports.LoanReturned,
	}
	for _, a := range actions {
		d.Record(ports.LoanEvent{LoanID: "loan", BookID: "book-1", Action: a})
	}

	deadline := time.Now().Add(2 * time.Second)
	for len(writer.snapshot()) < len(actions) {
		if time.Now().After(deadline) {
			t.Fatalf("got %d events, want %d", len(writer.snapshot()), len(actions))
		}
		time.Sleep(5 * time.Millisecond)
	}

	for i, event := range writer.snapshot() {
		if event.Action != actions[i] {
			t.Errorf("event %d action = %q, want %q", i, event.Action, actions[i])
		}
	}
}

func TestDispatcher_DefaultsWorkerCount(t *testing.T) {
	d := NewDispatcher(0, &captureWriter{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Errorf("worker count = %d, want %d", len(d.workers), defaultWorkers)
	}
}
