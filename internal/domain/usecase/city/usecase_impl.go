package city

import (
	"context"
	"strings"

	"city-api/internal/domain/entity"
	"city-api/internal/domain/gateway/api"
	"city-api/internal/domain/gateway/db"
	"city-api/pkg/log"
	"city-api/pkg/msg"

	"go.uber.org/zap"
)

type cityUseCase struct {
	apiGateway    api.CityGateway
	cacheGateway  db.CityCacheGateway
	limit         int
	minPopulation int
}

func NewCityUseCase(apiGateway api.CityGateway, cacheGateway db.CityCacheGateway, limit int, minPopulation int) UseCase {
	return &cityUseCase{
		apiGateway:    apiGateway,
		cacheGateway:  cacheGateway,
		limit:         limit,
		minPopulation: minPopulation,
	}
}

func (uc *cityUseCase) FetchCities(ctx context.Context) []entity.City {
	return uc.refresh(ctx,
		uc.cacheGateway.FindAll,
		func(ctx context.Context) ([]entity.City, error) {
			return uc.apiGateway.FindCities(ctx, uc.minPopulation, uc.limit)
		})
}

func (uc *cityUseCase) FetchCitiesByName(ctx context.Context, name string) []entity.City {
	return uc.refresh(ctx,
		func(ctx context.Context) ([]entity.City, error) {
			return uc.cacheGateway.FindByName(ctx, name)
		},
		func(ctx context.Context) ([]entity.City, error) {
			return uc.apiGateway.FindCitiesByName(ctx, name, uc.limit)
		})
}

func (uc *cityUseCase) Search(ctx context.Context, query string) []entity.City {
	query = strings.TrimSpace(query)
	if query == "" {
		return uc.FetchCities(ctx)
	}
	return uc.FetchCitiesByName(ctx, query)
}

type cityLoader func(ctx context.Context) ([]entity.City, error)

// refresh reads the cache, and writes the API result back unless every API city
// is already cached. The first cache read is returned on any later failure.
func (uc *cityUseCase) refresh(ctx context.Context, readCache cityLoader, fetchAPI cityLoader) []entity.City {
	cached, err := readCache(ctx)
	if err != nil {
		log.Error(msg.GetMessage("city.cache-read-failed", err), zap.Error(err))
		return []entity.City{}
	}

	remote, err := fetchAPI(ctx)
	if err != nil {
		log.Error(msg.GetMessage("city.api-failed", err), zap.Error(err))
		return cached
	}

	if containsAll(cached, remote) {
		log.Debug(msg.GetMessage("city.cache-hit", len(remote)))
		return cached
	}

	if err = uc.cacheGateway.Upsert(ctx, remote); err != nil {
		log.Error(msg.GetMessage("city.cache-write-failed", err), zap.Error(err))
		return cached
	}

	updated, err := readCache(ctx)
	if err != nil {
		log.Error(msg.GetMessage("city.cache-read-failed", err), zap.Error(err))
		return cached
	}
	return updated
}

// containsAll reports whether every city in subset has a city with the same key in cities
func containsAll(cities []entity.City, subset []entity.City) bool {
	keys := make(map[entity.CityKey]struct{}, len(cities))
	for _, city := range cities {
		keys[city.Key()] = struct{}{}
	}

	for _, city := range subset {
		if _, ok := keys[city.Key()]; !ok {
			return false
		}
	}
	return true
}
