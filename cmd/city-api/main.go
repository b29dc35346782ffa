package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "city-api/configs"
	_ "city-api/docs"
	"city-api/internal/application/controller"
	"city-api/internal/application/middleware"
	"city-api/internal/application/processor"
	"city-api/internal/application/schedule"
	"city-api/internal/domain/gateway/api"
	"city-api/internal/domain/gateway/cache"
	"city-api/internal/domain/gateway/db"
	"city-api/internal/domain/gateway/notification"
	"city-api/internal/domain/gateway/queue"
	"city-api/internal/domain/gateway/store"
	"city-api/internal/domain/usecase/city"
	"city-api/internal/domain/usecase/health"
	"city-api/internal/domain/usecase/visit"
	"city-api/internal/infra/aws"
	infracache "city-api/internal/infra/cache"
	"city-api/internal/infra/database"
	infragorm "city-api/internal/infra/database/gorm"
	"city-api/internal/infra/database/postgres"
	"city-api/internal/infra/database/sqlite"
	"city-api/internal/infra/firestore"
	httpclient "city-api/pkg/http"
	"city-api/pkg/log"
	"city-api/pkg/msg"
	"city-api/pkg/redis"
	"city-api/pkg/resource"
	"city-api/pkg/sqs"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

// @title City API
// @version 1.0
// @description Browse cached cities from the remote cities API and follow their visit counts.
// @BasePath /city-api
func main() {
	log.Info(msg.GetMessage("app.start"))
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Init infra
	e := echo.New()
	e.HideBanner = true
	middleware.SetupRequestLogger(e)
	if resource.GetBool("app.server.rate-limit.enabled") {
		middleware.SetupRateLimiter(e, middleware.RateLimitConfig{
			Rate:      resource.GetFloat64("app.server.rate-limit.rate"),
			Burst:     resource.GetInt("app.server.rate-limit.burst"),
			ExpiresIn: resource.GetDuration("app.server.rate-limit.expires-in"),
		})
	}
	contextPath := resource.GetString("app.server.context-path")
	api := e.Group(contextPath)
	e.GET(contextPath+"/swagger/*", echoSwagger.WrapHandler)

	redisClient := initRedis(ctx)
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}

	// Init Gateways
	cityCacheGateway, dbHealthGateway, closeDB := initDatabase(ctx)
	defer closeDB()

	cityGateway := initCityGateway(redisClient)

	var cacheHealthGateway cache.HealthGateway
	if redisClient != nil {
		cacheHealthGateway = cache.NewRedisHealthGateway(redisClient)
	}

	// Init UseCase
	cityUseCase := city.NewCityUseCase(cityGateway, cityCacheGateway,
		resource.GetInt("app.cities-api.limit"),
		resource.GetInt("app.cities-api.min-population"))

	visitUseCase, queueHealthGateway := initVisits(ctx, redisClient)

	healthUseCase := health.NewHealthUseCase(dbHealthGateway, cacheHealthGateway, queueHealthGateway)

	// Init Controller
	healthController := controller.NewHealthController(api, healthUseCase)
	cityController := controller.NewCityController(api, cityUseCase, visitUseCase)
	visitController := controller.NewVisitController(api, visitUseCase)

	// Init Routes
	healthController.InitHealthRoutes()
	cityController.InitCityRoutes()
	visitController.InitVisitRoutes()

	// Init Schedule
	initScheduler(ctx, cityUseCase, redisClient)

	// Start Routes
	go func() {
		if err := e.Start(":" + resource.GetString("app.server.port")); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()
	log.Info(msg.GetMessage("app.started"))

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to shutdown server", zap.Error(err))
	}
	log.Info(msg.GetMessage("app.stopped"))
}

func initRedis(ctx context.Context) *redis.Client {
	if !resource.GetBool("app.redis.enabled") {
		log.Info(msg.GetMessage("app.component-disabled", "redis"))
		return nil
	}

	client, err := infracache.NewRedisClient(ctx)
	if err != nil {
		log.Fatal(msg.GetMessage("app.component-failed", "redis", err), zap.Error(err))
	}
	return client
}

// initDatabase opens the city cache for app.db.driver
func initDatabase(ctx context.Context) (db.CityCacheGateway, db.HealthDBGateway, func()) {
	config := database.LoadConfig()

	var (
		cacheGateway  db.CityCacheGateway
		healthGateway db.HealthDBGateway
		closeDB       func()
	)

	switch config.Driver {
	case database.DriverGorm:
		gormDB, err := infragorm.Open(config)
		if err != nil {
			log.Fatal(msg.GetMessage("app.component-failed", "database", err), zap.Error(err))
		}
		cacheGateway = db.NewGormCityCacheGateway(gormDB)
		healthGateway = db.NewGormHealthDBGateway(gormDB)
		closeDB = func() {
			if sqlDB, err := gormDB.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
	case database.DriverPostgres:
		sqlDB, err := postgres.Open(ctx, config)
		if err != nil {
			log.Fatal(msg.GetMessage("app.component-failed", "database", err), zap.Error(err))
		}
		cacheGateway = db.NewSQLCityCacheGateway(sqlDB, db.DialectPostgres)
		healthGateway = db.NewSQLHealthDBGateway(sqlDB, database.DriverPostgres)
		closeDB = func() { _ = sqlDB.Close() }
	default:
		sqlDB, err := sqlite.Open(ctx, config.SQLitePath)
		if err != nil {
			log.Fatal(msg.GetMessage("app.component-failed", "database", err), zap.Error(err))
		}
		cacheGateway = db.NewSQLCityCacheGateway(sqlDB, db.DialectSQLite)
		healthGateway = db.NewSQLHealthDBGateway(sqlDB, database.DriverSQLite)
		closeDB = func() { _ = sqlDB.Close() }
	}

	if err := cacheGateway.EnsureSchema(ctx); err != nil {
		log.Fatal(msg.GetMessage("app.component-failed", "database", err), zap.Error(err))
	}
	return cacheGateway, healthGateway, closeDB
}

func initCityGateway(redisClient *redis.Client) api.CityGateway {
	clientOptions := httpclient.ClientOptions{
		ReadTimeout: resource.GetDuration("app.cities-api.timeout"),
	}
	if maxRetries := resource.GetInt("app.cities-api.max-retries"); maxRetries > 0 {
		clientOptions.Backoff = httpclient.NewBackoffConfig(maxRetries)
	}

	cityGateway := api.NewCityGateway(
		resource.GetString("app.cities-api.base-url"),
		resource.GetString("app.cities-api.api-key"),
		clientOptions)

	if redisClient != nil && resource.GetBool("app.cities-api.cache.enabled") {
		return api.NewCachedCityGateway(cityGateway, infracache.NewCitiesAPICache(redisClient))
	}
	return cityGateway
}

// initVisits wires the visit store, queue and notifier, and starts the listeners.
// The returned health gateway is nil when the queue is disabled.
func initVisits(ctx context.Context, redisClient *redis.Client) (visit.UseCase, queue.HealthGateway) {
	namespace := resource.GetString("app.visits.namespace")

	if !resource.GetBool("app.visits.enabled") {
		log.Info(msg.GetMessage("app.component-disabled", "visits"))
		return visit.NewVisitUseCase(namespace, "", store.DisabledVisitStore{}, nil, nil), nil
	}

	firestoreClient, err := firestore.NewClient(ctx)
	if err != nil {
		log.Fatal(msg.GetMessage("app.component-failed", "visits", err), zap.Error(err))
	}
	context.AfterFunc(ctx, func() { _ = firestoreClient.Close() })
	visitStore := store.NewFirestoreVisitStore(firestoreClient, resource.GetString("app.visits.collection"))

	var notifier notification.NotificationGateway
	if redisClient != nil {
		publisher := redis.NewPublisher(redisClient, infracache.PubSubConfig())
		notifier = notification.NewRedisNotificationGateway(publisher, resource.GetString("app.visits.notification-channel"))
	}

	var (
		queueSender queue.Sender
		queueName   string
		queueHealth queue.HealthGateway
		sqsClient   sqs.API
	)
	if resource.GetBool("app.visits.queue.enabled") {
		awsConfig, err := aws.LoadConfig(ctx)
		if err != nil {
			log.Fatal(msg.GetMessage("app.component-failed", "queue", err), zap.Error(err))
		}
		sqsClient = aws.NewSqsClient(awsConfig)
		queueSender = aws.NewSQSSenderAdapter(sqsClient)
		queueName = resource.GetString("app.visits.queue.name")
	}

	visitUseCase := visit.NewVisitUseCase(namespace, queueName, visitStore, queueSender, notifier)

	go func() {
		_ = visitUseCase.Watch(ctx)
	}()

	if sqsClient != nil {
		worker, err := sqs.NewWorker(ctx, sqsClient, queueName, processor.NewVisitProcessor(visitUseCase), &sqs.WorkerConfig{
			PoolSize: resource.GetIntOrDefault("app.visits.queue.pool-size", 1),
		})
		if err != nil {
			log.Fatal(msg.GetMessage("app.component-failed", "queue", err), zap.Error(err))
		}

		queueHealthGateway := queue.NewQueueHealthGateway()
		queueHealthGateway.RegisterWorker(queueName, aws.NewSQSWorkerAdapter(worker))
		queueHealth = queueHealthGateway
		go worker.Start(ctx)
	}

	return visitUseCase, queueHealth
}

func initScheduler(ctx context.Context, cityUseCase city.UseCase, redisClient *redis.Client) {
	if !resource.GetBool("app.refresh.enabled") {
		log.Info(msg.GetMessage("app.component-disabled", "city refresh"))
		return
	}

	lockTTL := resource.GetDuration("app.refresh.lock-ttl")

	var lock schedule.Locker
	if redisClient != nil {
		lock = schedule.NewRedisLock(redisClient, resource.GetString("app.redis.namespace"), lockTTL)
	}

	scheduler := schedule.NewCityRefreshScheduler(cityUseCase, lock, schedule.CityRefreshSchedulerConfig{
		CronExpression: resource.GetString("app.refresh.cron"),
		LockTTL:        lockTTL,
	})
	if err := scheduler.InitCityRefreshTasks(ctx); err != nil {
		log.Fatal(msg.GetMessage("app.component-failed", "city refresh", err), zap.Error(err))
	}
}
