package city

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"city-api/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCity(name string, lat, lon float64) entity.City {
	return entity.City{Name: &name, Latitude: lat, Longitude: lon}
}

type fakeCache struct {
	cities      map[entity.CityKey]entity.City
	readErr     error
	failReadsAt int
	reads       int
	writeErr    error
	writes      int
}

func newFakeCache(cities ...entity.City) *fakeCache {
	cache := &fakeCache{cities: map[entity.CityKey]entity.City{}}
	for _, c := range cities {
		cache.cities[c.Key()] = c
	}
	return cache
}

func (f *fakeCache) EnsureSchema(context.Context) error { return nil }

func (f *fakeCache) read(match func(entity.City) bool) ([]entity.City, error) {
	f.reads++
	if f.readErr != nil || (f.failReadsAt > 0 && f.reads == f.failReadsAt) {
		return nil, errors.New("disk I/O error")
	}
	result := make([]entity.City, 0)
	for _, c := range f.cities {
		if match(c) {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].NameOrEmpty() < result[j].NameOrEmpty() })
	return result, nil
}

func (f *fakeCache) FindAll(context.Context) ([]entity.City, error) {
	return f.read(func(entity.City) bool { return true })
}

func (f *fakeCache) FindByName(_ context.Context, name string) ([]entity.City, error) {
	return f.read(func(c entity.City) bool {
		return strings.Contains(strings.ToLower(c.NameOrEmpty()), strings.ToLower(name))
	})
}

func (f *fakeCache) Upsert(_ context.Context, cities []entity.City) error {
	f.writes++
	if f.writeErr != nil {
		return f.writeErr
	}
	for _, c := range cities {
		f.cities[c.Key()] = c
	}
	return nil
}

type fakeAPI struct {
	cities       []entity.City
	err          error
	lastName     string
	lastLimit    int
	lastMinPop   int
	findAllCalls int
	byNameCalls  int
}

func (f *fakeAPI) FindCities(_ context.Context, minPopulation int, limit int) ([]entity.City, error) {
	f.findAllCalls++
	f.lastMinPop, f.lastLimit = minPopulation, limit
	return f.cities, f.err
}

func (f *fakeAPI) FindCitiesByName(_ context.Context, name string, limit int) ([]entity.City, error) {
	f.byNameCalls++
	f.lastName, f.lastLimit = name, limit
	return f.cities, f.err
}

func cityNames(cities []entity.City) []string {
	result := make([]string, len(cities))
	for i, c := range cities {
		result[i] = c.NameOrEmpty()
	}
	return result
}

func TestFetchCities_SubsetSkipsWrite(t *testing.T) {
	cache := newFakeCache(newCity("Lisbon", 38.7, -9.1), newCity("Porto", 41.1, -8.6))
	api := &fakeAPI{cities: []entity.City{newCity("Lisboa", 38.7, -9.1)}}

	result := NewCityUseCase(api, cache, 30, 1).FetchCities(context.Background())

	assert.Equal(t, []string{"Lisbon", "Porto"}, cityNames(result))
	assert.Zero(t, cache.writes)
	assert.Equal(t, 1, cache.reads)
	assert.Equal(t, 30, api.lastLimit)
	assert.Equal(t, 1, api.lastMinPop)
}

func TestFetchCities_NewCitiesAreUpsertedAndReRead(t *testing.T) {
	cache := newFakeCache(newCity("Porto", 41.1, -8.6))
	api := &fakeAPI{cities: []entity.City{newCity("Lisbon", 38.7, -9.1), newCity("Porto", 41.1, -8.6)}}

	result := NewCityUseCase(api, cache, 30, 1).FetchCities(context.Background())

	assert.Equal(t, []string{"Lisbon", "Porto"}, cityNames(result))
	assert.Equal(t, 1, cache.writes)
	assert.Equal(t, 2, cache.reads)
}

func TestFetchCities_EmptyAPIResultIsSubset(t *testing.T) {
	cache := newFakeCache()
	api := &fakeAPI{cities: []entity.City{}}

	result := NewCityUseCase(api, cache, 30, 1).FetchCities(context.Background())

	assert.NotNil(t, result)
	assert.Empty(t, result)
	assert.Zero(t, cache.writes)
}

func TestFetchCities_APIFailureReturnsCache(t *testing.T) {
	cache := newFakeCache(newCity("Porto", 41.1, -8.6))
	api := &fakeAPI{err: errors.New("network unreachable")}

	result := NewCityUseCase(api, cache, 30, 1).FetchCities(context.Background())

	assert.Equal(t, []string{"Porto"}, cityNames(result))
	assert.Zero(t, cache.writes)
}

func TestFetchCities_CacheReadFailureReturnsEmpty(t *testing.T) {
	cache := newFakeCache(newCity("Porto", 41.1, -8.6))
	cache.readErr = errors.New("locked")
	api := &fakeAPI{cities: []entity.City{newCity("Lisbon", 38.7, -9.1)}}

	result := NewCityUseCase(api, cache, 30, 1).FetchCities(context.Background())

	require.NotNil(t, result)
	assert.Empty(t, result)
	assert.Zero(t, api.findAllCalls)
}

func TestFetchCities_WriteFailureReturnsInitialRead(t *testing.T) {
	cache := newFakeCache(newCity("Porto", 41.1, -8.6))
	cache.writeErr = errors.New("read-only")
	api := &fakeAPI{cities: []entity.City{newCity("Lisbon", 38.7, -9.1)}}

	result := NewCityUseCase(api, cache, 30, 1).FetchCities(context.Background())

	assert.Equal(t, []string{"Porto"}, cityNames(result))
}

func TestFetchCities_ReReadFailureReturnsInitialRead(t *testing.T) {
	cache := newFakeCache(newCity("Porto", 41.1, -8.6))
	cache.failReadsAt = 2
	api := &fakeAPI{cities: []entity.City{newCity("Lisbon", 38.7, -9.1)}}

	result := NewCityUseCase(api, cache, 30, 1).FetchCities(context.Background())

	assert.Equal(t, []string{"Porto"}, cityNames(result))
	assert.Equal(t, 1, cache.writes)
}

func TestFetchCitiesByName_FiltersCache(t *testing.T) {
	cache := newFakeCache(newCity("Lima", -12, -77), newCity("Oslo", 59.9, 10.7))
	api := &fakeAPI{cities: []entity.City{newCity("Limassol", 34.7, 33.0)}}

	result := NewCityUseCase(api, cache, 10, 1).FetchCitiesByName(context.Background(), "lim")

	assert.Equal(t, []string{"Lima", "Limassol"}, cityNames(result))
	assert.Equal(t, "lim", api.lastName)
	assert.Equal(t, 10, api.lastLimit)
}

func TestFetchCitiesByName_Idempotent(t *testing.T) {
	cache := newFakeCache()
	api := &fakeAPI{cities: []entity.City{newCity("Lima", -12, -77)}}
	useCase := NewCityUseCase(api, cache, 30, 1)

	first := useCase.FetchCitiesByName(context.Background(), "Lima")
	second := useCase.FetchCitiesByName(context.Background(), "Lima")

	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.writes)
}

func TestSearch_BlankQueryFetchesAll(t *testing.T) {
	cache := newFakeCache(newCity("Oslo", 59.9, 10.7))
	api := &fakeAPI{cities: []entity.City{}}
	useCase := NewCityUseCase(api, cache, 30, 1)

	assert.Equal(t, []string{"Oslo"}, cityNames(useCase.Search(context.Background(), "   ")))
	assert.Equal(t, 1, api.findAllCalls)
	assert.Zero(t, api.byNameCalls)

	useCase.Search(context.Background(), " os ")
	assert.Equal(t, 1, api.byNameCalls)
	assert.Equal(t, "os", api.lastName)
}

func TestContainsAll(t *testing.T) {
	cached := []entity.City{newCity("A", 1, 1), newCity("B", 2, 2)}

	assert.True(t, containsAll(cached, nil))
	assert.True(t, containsAll(cached, []entity.City{newCity("renamed", 1, 1)}))
	assert.False(t, containsAll(cached, []entity.City{newCity("A", 1, 1.5)}))
	assert.False(t, containsAll(nil, []entity.City{newCity("A", 1, 1)}))
}
