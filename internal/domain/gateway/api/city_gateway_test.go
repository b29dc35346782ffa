package api

import (
	"context"
	"errors"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"city-api/internal/domain/entity"
	"city-api/pkg/http"
	"city-api/pkg/redis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const citiesJSON = `[
	{"name":"Lisbon","latitude":38.7,"longitude":-9.1,"country":"PT","population":500000,"is_capital":true},
	{"name":"Lima","latitude":-12.0,"longitude":-77.0,"country":"PE","population":null,"is_capital":null}
]`

func TestCityGateway_FindCities(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, "/v1/city", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("min_population"))
		assert.Equal(t, "30", r.URL.Query().Get("limit"))
		assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(citiesJSON))
	}))
	defer server.Close()

	gateway := NewCityGateway(server.URL+"/", "secret", http.ClientOptions{})
	cities, err := gateway.FindCities(context.Background(), 1, 30)

	require.NoError(t, err)
	require.Len(t, cities, 2)
	assert.Equal(t, "Lisbon", *cities[0].Name)
	assert.True(t, *cities[0].IsCapital)
	assert.Equal(t, 500000, *cities[0].Population)
	assert.Nil(t, cities[1].Population)
	assert.Nil(t, cities[1].IsCapital)
	assert.Zero(t, cities[0].Visited)
}

func TestCityGateway_FindCitiesByNameEncodesQuery(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, "San José", r.URL.Query().Get("name"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		assert.Empty(t, r.URL.Query().Get("min_population"))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	cities, err := NewCityGateway(server.URL, "k", http.ClientOptions{}).FindCitiesByName(context.Background(), "San José", 5)

	require.NoError(t, err)
	assert.Empty(t, cities)
}

func TestCityGateway_ErrorBody(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(nethttp.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Invalid API Key."}`))
	}))
	defer server.Close()

	_, err := NewCityGateway(server.URL, "bad", http.ClientOptions{}).FindCities(context.Background(), 1, 30)

	require.Error(t, err)
	assert.Equal(t, "Invalid API Key.", err.Error())
}

func TestCityGateway_ErrorWithoutBody(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.WriteHeader(nethttp.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := NewCityGateway(server.URL, "k", http.ClientOptions{}).FindCities(context.Background(), 1, 30)

	var httpErr *http.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, nethttp.StatusInternalServerError, httpErr.StatusCode)
}

type fakeCityGateway struct {
	calls  int
	cities []entity.City
	err    error
}

func (f *fakeCityGateway) FindCities(context.Context, int, int) ([]entity.City, error) {
	f.calls++
	return f.cities, f.err
}

func (f *fakeCityGateway) FindCitiesByName(context.Context, string, int) ([]entity.City, error) {
	f.calls++
	return f.cities, f.err
}

type mapStore struct {
	data   map[string][]byte
	getErr error
}

func (m *mapStore) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	m.data[key] = value.([]byte)
	return nil
}

func (m *mapStore) GetBytes(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, redis.ErrCacheMiss
	}
	return v, nil
}

func (m *mapStore) Delete(context.Context, ...string) error { return nil }

func (m *mapStore) Expire(context.Context, string, time.Duration) error { return nil }

func TestCachedCityGateway_MemoisesPerQuery(t *testing.T) {
	name := "Lisbon"
	delegate := &fakeCityGateway{cities: []entity.City{{Name: &name, Latitude: 38.7, Longitude: -9.1}}}
	store := &mapStore{data: map[string][]byte{}}
	cache := redis.NewCacheWithStore(store, nil, redis.NewCacheOptions().WithCacheName("cities-api"))
	gateway := NewCachedCityGateway(delegate, cache)

	first, err := gateway.FindCitiesByName(context.Background(), "Lis", 30)
	require.NoError(t, err)
	second, err := gateway.FindCitiesByName(context.Background(), "lis", 30)
	require.NoError(t, err)

	assert.Equal(t, 1, delegate.calls)
	assert.Equal(t, first, second)
	assert.Contains(t, store.data, "cities-api::name=lis&limit=30")

	_, err = gateway.FindCities(context.Background(), 1, 30)
	require.NoError(t, err)
	assert.Equal(t, 2, delegate.calls)
}

func TestCachedCityGateway_FallsThroughOnCacheFailure(t *testing.T) {
	delegate := &fakeCityGateway{cities: []entity.City{}}
	store := &mapStore{data: map[string][]byte{}, getErr: errors.New("connection refused")}
	gateway := NewCachedCityGateway(delegate, redis.NewCacheWithStore(store, nil, nil))

	_, err := gateway.FindCities(context.Background(), 1, 30)
	require.NoError(t, err)
	_, err = gateway.FindCities(context.Background(), 1, 30)
	require.NoError(t, err)

	assert.Equal(t, 2, delegate.calls)
}

func TestCachedCityGateway_DoesNotCacheErrors(t *testing.T) {
	delegate := &fakeCityGateway{err: errors.New("boom")}
	store := &mapStore{data: map[string][]byte{}}
	gateway := NewCachedCityGateway(delegate, redis.NewCacheWithStore(store, nil, nil))

	_, err := gateway.FindCities(context.Background(), 1, 30)
	assert.EqualError(t, err, "boom")
	assert.Empty(t, store.data)
}
