package cache

import (
	"context"
	"fmt"

	"city-api/pkg/redis"
	"city-api/pkg/resource"
)

// CitiesAPICacheName names the cache memoising remote city queries
const CitiesAPICacheName = "cities-api"

// NewRedisClient builds the redis client from app.redis and checks the connection
func NewRedisClient(ctx context.Context) (*redis.Client, error) {
	config := redis.NewRedisConfig().
		WithHost(resource.GetString("app.redis.host")).
		WithPort(resource.GetInt("app.redis.port")).
		WithPassword(resource.GetString("app.redis.password")).
		WithDatabase(resource.GetInt("app.redis.database")).
		WithCacheTTL(CitiesAPICacheName, resource.GetDuration("app.cities-api.cache.ttl"))
	config.MaxActive = resource.GetIntOrDefault("app.redis.max-active", config.MaxActive)

	client, err := redis.NewClient(config)
	if err != nil {
		return nil, err
	}

	if err = client.Ping(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s:%d: %w", config.Host, config.Port, err)
	}

	return client, nil
}

// NewCitiesAPICache builds the response cache used by the cached city gateway
func NewCitiesAPICache(client *redis.Client) *redis.Cache {
	return redis.NewCache(client, redis.NewCacheOptions().WithCacheName(CitiesAPICacheName))
}

// PubSubConfig namespaces channels with app.redis.namespace
func PubSubConfig() *redis.PubSubConfig {
	return redis.NewPubSubConfig().WithChannelNamespace(resource.GetString("app.redis.namespace"))
}
