package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	appoutbox "trio/internal/app/outbox"
)

type Producer interface {
	Publish(ctx context.Context, topic string, key string, payload []byte, headers map[string]string) error
}

// Store hands out pending records one at a time and tracks delivery.
type Store interface {
	Claim(ctx context.Context, workerID string) (*EventDocument, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, next time.Time, errMsg string) error
}

var ErrWorkerNotConfigured = errors.New("outbox: worker missing dependencies")

// Relay turns outbox records into CloudEvents and publishes them.
type Relay struct {
	Producer    Producer
	TopicPrefix string
	Source      string
}

func (r Relay) Publish(ctx context.Context, record appoutbox.EventRecord) error {
	payload, headers, err := r.envelope(record)
	if err != nil {
		return err
	}
	return r.Producer.Publish(ctx, r.topicFor(record.Name), record.Aggregate, payload, headers)
}

// Deliver publishes records in order, stopping at the first failure.
func (r Relay) Deliver(ctx context.Context, records []appoutbox.EventRecord) error {
	if r.Producer == nil {
		return ErrWorkerNotConfigured
	}
	for _, rec := range records {
		if err := r.Publish(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

func (r Relay) envelope(record appoutbox.EventRecord) ([]byte, map[string]string, error) {
	data := map[string]any{}
	if err := json.Unmarshal(record.Payload, &data); err != nil {
		return nil, nil, err
	}
	id := record.ID
	if id == "" {
		id = uuid.NewString()
	}
	evt := map[string]any{
		"specversion":     "1.0",
		"id":              id,
		"type":            record.Name + ".v1",
		"source":          r.source(),
		"subject":         record.Aggregate,
		"time":            record.OccurredAt,
		"datacontenttype": "application/json",
		"data":            data,
	}
	if trace, ok := record.Headers["traceparent"]; ok {
		evt["traceparent"] = trace
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return nil, nil, err
	}
	headers := map[string]string{
		"content-type": "application/cloudevents+json",
	}
	for k, v := range record.Headers {
		headers[k] = v
	}
	return payload, headers, nil
}

func (r Relay) topicFor(name string) string {
	base := name
	if idx := strings.IndexRune(name, '.'); idx > 0 {
		base = name[:idx]
	}
	return r.TopicPrefix + base + ".events.v1"
}

func (r Relay) source() string {
	if r.Source != "" {
		return r.Source
	}
	return "app://trio"
}

// Worker polls the store and relays claimed records until the context ends.
type Worker struct {
	Store    Store
	Relay    Relay
	Interval time.Duration
	ID       string
	Backoff  []time.Duration
	Logger   *slog.Logger
}

func (w *Worker) Run(ctx context.Context) error {
	if w.Store == nil || w.Relay.Producer == nil {
		return ErrWorkerNotConfigured
	}
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	ticker := time.NewTicker(w.interval())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.Drain(ctx); err != nil && w.Logger != nil {
				w.Logger.Error("outbox relay failed", "worker", w.ID, "error", err)
			}
		}
	}
}

// Drain relays records until the store has nothing claimable left.
func (w *Worker) Drain(ctx context.Context) error {
	for {
		more, err := w.processOnce(ctx)
		if err != nil || !more {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (w *Worker) processOnce(ctx context.Context) (bool, error) {
	doc, err := w.Store.Claim(ctx, w.ID)
	if err != nil || doc == nil {
		return false, err
	}
	if err := w.Relay.Publish(ctx, doc.Record()); err != nil {
		if w.Logger != nil {
			w.Logger.Warn("outbox publish failed", "event_id", doc.ID, "name", doc.Name, "attempts", doc.Attempts+1, "error", err)
		}
		return true, w.Store.MarkFailed(ctx, doc.ID, w.nextRetry(doc.Attempts), err.Error())
	}
	return true, w.Store.MarkSent(ctx, doc.ID)
}

func (w *Worker) interval() time.Duration {
	if w.Interval <= 0 {
		return 500 * time.Millisecond
	}
	return w.Interval
}

func (w *Worker) nextRetry(attempts int) time.Time {
	if attempts < len(w.Backoff) {
		return time.Now().Add(w.Backoff[attempts])
	}
	if len(w.Backoff) > 0 {
		return time.Now().Add(w.Backoff[len(w.Backoff)-1])
	}
	return time.Now().Add(5 * time.Second)
}

// LogSink reports committed records through the logger when no broker is configured.
func LogSink(log *slog.Logger) func(ctx context.Context, records []appoutbox.EventRecord) error {
	return func(ctx context.Context, records []appoutbox.EventRecord) error {
		if log == nil {
			return nil
		}
		for _, rec := range records {
			log.InfoContext(ctx, "domain event", "name", rec.Name, "aggregate", rec.Aggregate, "event_id", rec.ID)
		}
		return nil
	}
}
