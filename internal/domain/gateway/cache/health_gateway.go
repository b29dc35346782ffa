package cache

import (
	"city-api/internal/domain/model"
	"city-api/pkg/redis"
)

type HealthGateway interface {
	Health() model.ComponentHealthStatus
}

// RedisHealthGateway reports the redis connection used for caching, locks and notifications
type RedisHealthGateway struct {
	client *redis.Client
}

var _ HealthGateway = (*RedisHealthGateway)(nil)

func NewRedisHealthGateway(client *redis.Client) *RedisHealthGateway {
	return &RedisHealthGateway{client: client}
}

func (gateway *RedisHealthGateway) Health() model.ComponentHealthStatus {
	status, details := gateway.client.Health()
	return model.ComponentHealthStatus{
		Status:  model.HealthStatus(status),
		Details: details,
	}
}
