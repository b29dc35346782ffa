package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrCacheMiss is returned when a key is absent.
var ErrCacheMiss = errors.New("cache miss")

// CacheOptions represents options for cache operations
type CacheOptions struct {
	// TTL is used when the client config has no entry for CacheName
	TTL time.Duration
	// RefreshTTL indicates whether to refresh the TTL on access
	RefreshTTL bool
	Serializer   func(interface{}) ([]byte, error)
	Deserializer func([]byte, interface{}) error
	// CacheName prefixes keys as CacheName::key and selects the configured TTL
	CacheName string
}

// NewCacheOptions creates a new cache options with default values
func NewCacheOptions() *CacheOptions {
	return &CacheOptions{
		TTL:          time.Hour,
		Serializer:   json.Marshal,
		Deserializer: json.Unmarshal,
	}
}

// WithTTL sets the TTL for cache operations
func (co *CacheOptions) WithTTL(ttl time.Duration) *CacheOptions {
	co.TTL = ttl
	return co
}

// WithRefreshTTL enables TTL refresh on access
func (co *CacheOptions) WithRefreshTTL(refresh bool) *CacheOptions {
	co.RefreshTTL = refresh
	return co
}

// WithCacheName sets the cache name for TTL lookup
func (co *CacheOptions) WithCacheName(cacheName string) *CacheOptions {
	co.CacheName = cacheName
	return co
}

// Store is the subset of Client used by Cache.
type Store interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	GetBytes(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, keys ...string) error
	Expire(ctx context.Context, key string, expiration time.Duration) error
}

// Cache provides high-level caching operations
type Cache struct {
	store  Store
	config *Config
	opts   *CacheOptions
}

// NewCache creates a new cache instance
func NewCache(client *Client, opts *CacheOptions) *Cache {
	return NewCacheWithStore(client, client.config, opts)
}

// NewCacheWithStore builds a Cache over any Store, falling back to the default config.
func NewCacheWithStore(store Store, config *Config, opts *CacheOptions) *Cache {
	if opts == nil {
		opts = NewCacheOptions()
	}
	if config == nil {
		config = NewRedisConfig()
	}
	return &Cache{store: store, config: config, opts: opts}
}

// ttl returns the configured TTL for the cache name, then the default, then the options TTL
func (c *Cache) ttl() time.Duration {
	if c.opts.CacheName != "" {
		if ttl, exists := c.config.CacheTTLs[c.opts.CacheName]; exists {
			return ttl
		}
		if c.config.DefaultCacheTTL > 0 {
			return c.config.DefaultCacheTTL
		}
	}
	return c.opts.TTL
}

func (c *Cache) buildCacheKey(key string) string {
	if c.opts.CacheName != "" {
		return c.opts.CacheName + "::" + key
	}
	return key
}

// Get retrieves a value from cache and deserializes it into dest
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) error {
	fullKey := c.buildCacheKey(key)
	data, err := c.store.GetBytes(ctx, fullKey)
	if err != nil {
		return err
	}

	if c.opts.RefreshTTL {
		_ = c.store.Expire(ctx, fullKey, c.ttl())
	}

	return c.opts.Deserializer(data, dest)
}

// Set stores a value in cache with serialization
func (c *Cache) Set(ctx context.Context, key string, value interface{}) error {
	data, err := c.opts.Serializer(value)
	if err != nil {
		return fmt.Errorf("failed to serialize value: %w", err)
	}

	return c.store.Set(ctx, c.buildCacheKey(key), data, c.ttl())
}

// Delete removes a value from cache
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.store.Delete(ctx, c.buildCacheKey(key))
}
