package main

import (
	"context"
	"os/signal"
	"syscall"

	_ "city-api/configs"
	"city-api/internal/domain/gateway/notification"
	infracache "city-api/internal/infra/cache"
	"city-api/pkg/log"
	"city-api/pkg/msg"
	"city-api/pkg/redis"
	"city-api/pkg/resource"

	"go.uber.org/zap"
)

func main() {
	log.Info(msg.GetMessage("app.start"))
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := infracache.NewRedisClient(ctx)
	if err != nil {
		log.Fatal(msg.GetMessage("app.component-failed", "redis", err), zap.Error(err))
	}
	defer func() { _ = client.Close() }()

	handler := redis.HandlerFunc(func(_ context.Context, channel string, payload string) error {
		notice, err := notification.DecodeVisitNotification(payload)
		if err != nil {
			log.Warn("Discarding malformed visit notification", zap.String("channel", channel), zap.Error(err))
			return err
		}
		log.Info(msg.GetMessage("visit.notification", notice.Previous, notice.Total),
			zap.Int("previous", notice.Previous), zap.Int("total", notice.Total))
		return nil
	})

	subscriber := redis.NewSubscriber(client, resource.GetString("app.visits.notification-channel"), handler, infracache.PubSubConfig())
	subscriber.Start(ctx)

	log.Info(msg.GetMessage("app.stopped"))
}
