package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	values map[string][]byte
	ttls   map[string]time.Duration
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *memoryStore) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	m.values[key] = value.([]byte)
	m.ttls[key] = expiration
	return nil
}

func (m *memoryStore) GetBytes(_ context.Context, key string) ([]byte, error) {
	v, ok := m.values[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	return v, nil
}

func (m *memoryStore) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

func (m *memoryStore) Expire(_ context.Context, key string, expiration time.Duration) error {
	m.ttls[key] = expiration
	return nil
}

func TestCache_SetGetUsesNamespacedKeyAndConfiguredTTL(t *testing.T) {
	store := newMemoryStore()
	config := NewRedisConfig().WithCacheTTL("cities", 2*time.Minute)
	cache := NewCacheWithStore(store, config, NewCacheOptions().WithCacheName("cities"))

	require.NoError(t, cache.Set(context.Background(), "name=lis", []string{"Lisbon"}))

	assert.Contains(t, store.values, "cities::name=lis")
	assert.Equal(t, 2*time.Minute, store.ttls["cities::name=lis"])

	var got []string
	require.NoError(t, cache.Get(context.Background(), "name=lis", &got))
	assert.Equal(t, []string{"Lisbon"}, got)
}

func TestCache_MissAndDelete(t *testing.T) {
	store := newMemoryStore()
	cache := NewCacheWithStore(store, nil, NewCacheOptions().WithTTL(time.Minute))

	var got string
	assert.ErrorIs(t, cache.Get(context.Background(), "absent", &got), ErrCacheMiss)

	require.NoError(t, cache.Set(context.Background(), "k", "v"))
	assert.Equal(t, time.Minute, store.ttls["k"])
	require.NoError(t, cache.Delete(context.Background(), "k"))
	assert.ErrorIs(t, cache.Get(context.Background(), "k", &got), ErrCacheMiss)
}

func TestCache_DefaultTTLForUnlistedName(t *testing.T) {
	store := newMemoryStore()
	config := NewRedisConfig().WithDefaultCacheTTL(30 * time.Second)
	cache := NewCacheWithStore(store, config, NewCacheOptions().WithCacheName("other").WithRefreshTTL(true))

	require.NoError(t, cache.Set(context.Background(), "k", 1))
	assert.Equal(t, 30*time.Second, store.ttls["other::k"])
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, NewRedisConfig().Validate())
	assert.Error(t, NewRedisConfig().WithHost("").Validate())
	assert.Error(t, NewRedisConfig().WithPort(70000).Validate())
	assert.Error(t, NewRedisConfig().WithDatabase(16).Validate())
	assert.Error(t, NewRedisConfig().WithCacheTTL("x", -time.Second).Validate())
}

func TestPubSubConfig_ChannelName(t *testing.T) {
	assert.Equal(t, "visits", NewPubSubConfig().channelName("visits"))
	assert.Equal(t, "city-api::visits", NewPubSubConfig().WithChannelNamespace("city-api").channelName("visits"))
}
