package booking

import (
	"context"
	"time"

	"trio/internal/app/outbox"
	"trio/internal/domain/shared/events"
)

func clock(now func() time.Time) time.Time {
	if now != nil {
		return now().UTC()
	}
	return time.Now().UTC()
}

func recordAll(ctx context.Context, box outbox.Outbox, encoder outbox.EventEncoder, batches ...[]events.DomainEvent) error {
	var all []events.DomainEvent
	for _, batch := range batches {
		all = append(all, batch...)
	}
	return outbox.RecordDomainEvents(ctx, box, encoder, all)
}
