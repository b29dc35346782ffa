package store

import (
	"context"

	"city-api/internal/domain/entity"
	"city-api/internal/domain/model"
)

// DisabledVisitStore backs the visit use case when no document store is configured.
// Writes fail with model.ErrVisitsDisabled and the watch ends immediately.
type DisabledVisitStore struct{}

var _ VisitStore = DisabledVisitStore{}

func (DisabledVisitStore) EnsureDocument(context.Context, string) error {
	return model.ErrVisitsDisabled
}

func (DisabledVisitStore) AddCity(context.Context, string, string, string) error {
	return model.ErrVisitsDisabled
}

func (DisabledVisitStore) WatchAggregates(context.Context) (<-chan entity.VisitAggregate, <-chan error) {
	aggregates := make(chan entity.VisitAggregate)
	errs := make(chan error)
	close(aggregates)
	close(errs)
	return aggregates, errs
}
