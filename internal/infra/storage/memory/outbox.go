package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	appoutbox "trio/internal/app/outbox"
)

// Sink receives records once the command that produced them has committed.
type Sink func(ctx context.Context, records []appoutbox.EventRecord) error

type batchKey struct{}

// Outbox buffers records per command until Flush hands them to the sink.
// Commands are told apart by the scope that Scope stores in their context.
type Outbox struct {
	Sink Sink

	mu      sync.Mutex
	batches map[string][]appoutbox.EventRecord
}

func NewOutbox(sink Sink) *Outbox {
	return &Outbox{Sink: sink, batches: make(map[string][]appoutbox.EventRecord)}
}

func (o *Outbox) Scope(ctx context.Context) context.Context {
	return context.WithValue(ctx, batchKey{}, uuid.NewString())
}

func (o *Outbox) Add(ctx context.Context, record appoutbox.EventRecord) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	id := batchID(ctx)
	o.batches[id] = append(o.batches[id], record)
	return nil
}

func (o *Outbox) Flush(ctx context.Context) error {
	o.mu.Lock()
	id := batchID(ctx)
	records := o.batches[id]
	delete(o.batches, id)
	o.mu.Unlock()
	if len(records) == 0 || o.Sink == nil {
		return nil
	}
	return o.Sink(ctx, records)
}

func (o *Outbox) Discard(ctx context.Context) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.batches, batchID(ctx))
}

// Pending reports how many records are buffered across all scopes.
func (o *Outbox) Pending() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	n := 0
	for _, batch := range o.batches {
		n += len(batch)
	}
	return n
}

func batchID(ctx context.Context) string {
	if id, ok := ctx.Value(batchKey{}).(string); ok {
		return id
	}
	return ""
}

var _ appoutbox.Outbox = (*Outbox)(nil)
