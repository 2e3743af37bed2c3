// Package audit writes the loan event trail asynchronously so the lending
// workflow never blocks on the audit collection.
package audit

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/citylibrary/lending-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// EventWriter persists a single loan event.
type EventWriter interface {
	InsertLoanEvent(ctx context.Context, event ports.LoanEvent) error
}

// Dispatcher fans loan events out to a fixed set of workers using consistent
// hashing on the book id, so the trail for any one book is written in the
// order its transitions committed.
type Dispatcher struct {
	workers []chan ports.LoanEvent
	writer  EventWriter
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, writer EventWriter, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.LoanEvent, numWorkers),
		writer:  writer,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.LoanEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record enqueues an event for the worker owning its book. Implements the
// workflow's audit sink; non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Record(event ports.LoanEvent) {
	d.workers[d.shardIndex(event.BookID)] <- event
}

// shardIndex maps a book id deterministically to a worker index.
func (d *Dispatcher) shardIndex(bookID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(bookID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.LoanEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if err := d.writer.InsertLoanEvent(ctx, event); err != nil {
				d.log.Error().Err(err).
					Str("loan_id", event.LoanID).
					Int("worker_id", id).
					Msg("loan event write failed")
			}
		}
	}
}
