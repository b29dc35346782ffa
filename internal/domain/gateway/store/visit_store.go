package store

import (
	"context"

	"city-api/internal/domain/entity"
)

// VisitStore keeps one document per visitor holding the cities it visited
type VisitStore interface {
	// EnsureDocument creates an empty visitor document when missing
	EnsureDocument(ctx context.Context, visitor string) error

	// AddCity appends {name, countryCode} to the visitor document as a set union
	AddCity(ctx context.Context, visitor string, name string, countryCode string) error

	// WatchAggregates emits a fresh aggregate for every collection snapshot.
	// Both channels close once ctx is cancelled or the listener fails.
	WatchAggregates(ctx context.Context) (<-chan entity.VisitAggregate, <-chan error)
}

const (
	citiesField      = "cities"
	nameField        = "name"
	countryCodeField = "countryCode"
)

// Aggregate counts (name, countryCode) pairs across the cities arrays of all docs.
// Entries that are not objects are skipped and non-string fields read as "".
func Aggregate(docs []map[string]any) entity.VisitAggregate {
	aggregate := make(entity.VisitAggregate)

	for _, doc := range docs {
		cities, ok := doc[citiesField].([]any)
		if !ok {
			continue
		}

		for _, item := range cities {
			visit, ok := item.(map[string]any)
			if !ok {
				continue
			}
			name, _ := visit[nameField].(string)
			countryCode, _ := visit[countryCodeField].(string)
			aggregate[entity.VisitKey{Name: name, CountryCode: countryCode}]++
		}
	}

	return aggregate
}
