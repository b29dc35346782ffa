package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"city-api/internal/domain/model"
	"city-api/pkg/redis"
)

// NotificationGateway announces visit total increases
type NotificationGateway interface {
	NotifyVisits(ctx context.Context, notification model.VisitNotification) error
}

type RedisNotificationGateway struct {
	publisher *redis.Publisher
	channel   string
}

var _ NotificationGateway = (*RedisNotificationGateway)(nil)

func NewRedisNotificationGateway(publisher *redis.Publisher, channel string) *RedisNotificationGateway {
	return &RedisNotificationGateway{publisher: publisher, channel: channel}
}

func (gateway *RedisNotificationGateway) NotifyVisits(ctx context.Context, notification model.VisitNotification) error {
	if err := gateway.publisher.PublishJSON(ctx, gateway.channel, notification); err != nil {
		return fmt.Errorf("failed to publish visit notification: %w", err)
	}
	return nil
}

// DecodeVisitNotification parses a payload published by NotifyVisits
func DecodeVisitNotification(payload string) (model.VisitNotification, error) {
	var notification model.VisitNotification
	if err := json.Unmarshal([]byte(payload), &notification); err != nil {
		return model.VisitNotification{}, fmt.Errorf("invalid visit notification: %w", err)
	}
	return notification, nil
}
