package api

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"city-api/internal/domain/entity"
	"city-api/pkg/log"
	"city-api/pkg/redis"
)

// ResponseCache stores decoded API responses by key
type ResponseCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}) error
}

var _ ResponseCache = (*redis.Cache)(nil)

// cachedCityGateway memoises CityGateway responses. Cache failures fall through to the delegate.
type cachedCityGateway struct {
	delegate CityGateway
	cache    ResponseCache
}

func NewCachedCityGateway(delegate CityGateway, cache ResponseCache) CityGateway {
	return &cachedCityGateway{delegate: delegate, cache: cache}
}

func (g *cachedCityGateway) FindCities(ctx context.Context, minPopulation int, limit int) ([]entity.City, error) {
	key := fmt.Sprintf("min_population=%d&limit=%d", minPopulation, limit)
	return g.cached(ctx, key, func() ([]entity.City, error) {
		return g.delegate.FindCities(ctx, minPopulation, limit)
	})
}

func (g *cachedCityGateway) FindCitiesByName(ctx context.Context, name string, limit int) ([]entity.City, error) {
	key := fmt.Sprintf("name=%s&limit=%d", strings.ToLower(name), limit)
	return g.cached(ctx, key, func() ([]entity.City, error) {
		return g.delegate.FindCitiesByName(ctx, name, limit)
	})
}

func (g *cachedCityGateway) cached(ctx context.Context, key string, load func() ([]entity.City, error)) ([]entity.City, error) {
	var cities []entity.City
	err := g.cache.Get(ctx, key, &cities)
	if err == nil {
		return cities, nil
	}
	if !errors.Is(err, redis.ErrCacheMiss) {
		log.Warnf("city response cache read failed for %s: %v", key, err)
	}

	cities, err = load()
	if err != nil {
		return nil, err
	}

	if err := g.cache.Set(ctx, key, cities); err != nil {
		log.Warnf("city response cache write failed for %s: %v", key, err)
	}
	return cities, nil
}
