package city

import (
	"context"

	"city-api/internal/domain/entity"
)

// UseCase serves cities from the local cache, refreshing it from the remote API.
// None of the operations fail: errors are logged and the cached view is returned.
type UseCase interface {
	FetchCities(ctx context.Context) []entity.City
	FetchCitiesByName(ctx context.Context, name string) []entity.City
	// Search lists every city for a blank query and searches by name otherwise
	Search(ctx context.Context, query string) []entity.City
}
