package api

import (
	"context"

	"city-api/internal/domain/entity"
)

// CityGateway defines the remote cities API calls
type CityGateway interface {
	// FindCities lists cities with at least minPopulation inhabitants
	FindCities(ctx context.Context, minPopulation int, limit int) ([]entity.City, error)

	// FindCitiesByName lists cities matching name
	FindCitiesByName(ctx context.Context, name string, limit int) ([]entity.City, error)
}
