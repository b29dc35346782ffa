package visit

import (
	"context"

	"city-api/internal/domain/entity"
	"city-api/internal/domain/model"
)

type UseCase interface {
	// RecordVisit stores the visit in the visitor document, creating it first if needed
	RecordVisit(ctx context.Context, dto model.VisitDTO) error

	// EnqueueVisit queues the visit when a queue is configured and records it directly otherwise.
	// It reports whether the visit was queued.
	EnqueueVisit(ctx context.Context, dto model.VisitDTO) (bool, error)

	// Watch listens to aggregate snapshots until ctx is cancelled or the listener fails
	Watch(ctx context.Context) error

	// Subscribe returns a stream of visit events and a func ending the subscription
	Subscribe() (<-chan entity.VisitEvent, func())

	// Latest returns the most recent aggregate, empty before the first snapshot
	Latest() entity.VisitAggregate
}
