package schedule

import (
	"context"
	"errors"
	"time"

	"city-api/internal/domain/usecase/city"
	"city-api/pkg/log"
	"city-api/pkg/msg"
	"city-api/pkg/redis"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const refreshLockName = "city_refresh_scheduler"

// Locker holds the scheduling lock while the cron runs
type Locker interface {
	TryLock(ctx context.Context) error
	AutoRefresh(ctx context.Context, interval time.Duration) <-chan error
}

// CityRefreshSchedulerConfig holds configuration for the city refresh scheduler
type CityRefreshSchedulerConfig struct {
	CronExpression string
	LockTTL        time.Duration
}

// CityRefreshScheduler warms the city cache on a cron. With a Locker, only the
// instance holding the lock schedules; the others retry acquiring it.
type CityRefreshScheduler struct {
	cron    *cron.Cron
	useCase city.UseCase
	lock    Locker
	config  CityRefreshSchedulerConfig
}

func NewCityRefreshScheduler(useCase city.UseCase, lock Locker, config CityRefreshSchedulerConfig) *CityRefreshScheduler {
	if config.LockTTL <= 0 {
		config.LockTTL = 5 * time.Minute
	}
	return &CityRefreshScheduler{
		cron:    cron.New(cron.WithSeconds()),
		useCase: useCase,
		lock:    lock,
		config:  config,
	}
}

// NewRedisLock builds the scheduler lock on redis
func NewRedisLock(client *redis.Client, namespace string, ttl time.Duration) Locker {
	return redis.NewLock(client, namespace, refreshLockName, ttl)
}

// InitCityRefreshTasks registers the refresh job and starts the cron in the background
func (s *CityRefreshScheduler) InitCityRefreshTasks(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.config.CronExpression, func() { s.ExecuteScheduledTask(ctx) }); err != nil {
		return err
	}

	go s.run(ctx)
	return nil
}

func (s *CityRefreshScheduler) run(ctx context.Context) {
	if s.lock == nil {
		s.cron.Start()
		log.Info(msg.GetMessage("city.refresh.scheduled", s.config.CronExpression))
		<-ctx.Done()
		s.Stop()
		return
	}

	retry := time.NewTicker(s.refreshInterval())
	defer retry.Stop()

	for {
		err := s.lock.TryLock(ctx)
		if err == nil {
			s.runLocked(ctx)
		} else if errors.Is(err, redis.ErrLockNotAcquired) {
			log.Debug(msg.GetMessage("city.refresh.lock-held"))
		} else {
			log.Error(msg.GetMessage("city.refresh.lock-failed", err), zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-retry.C:
		}
	}
}

// runLocked runs the cron until ctx ends or the lock is lost
func (s *CityRefreshScheduler) runLocked(ctx context.Context) {
	refreshErr := s.lock.AutoRefresh(ctx, s.refreshInterval())

	s.cron.Start()
	log.Info(msg.GetMessage("city.refresh.scheduled", s.config.CronExpression))

	err := <-refreshErr
	s.Stop()

	if err != nil {
		log.Error(msg.GetMessage("city.refresh.lock-failed", err), zap.Error(err))
		return
	}
	log.Info(msg.GetMessage("city.refresh.stopped"))
}

// ExecuteScheduledTask refreshes the city cache from the remote API
func (s *CityRefreshScheduler) ExecuteScheduledTask(ctx context.Context) {
	requestID := uuid.New().String()
	log.Info(msg.GetMessage("city.refresh.start", requestID), zap.String("request_id", requestID))

	cities := s.useCase.FetchCities(ctx)

	log.Info(msg.GetMessage("city.refresh.end", requestID, len(cities)),
		zap.String("request_id", requestID), zap.Int("cities", len(cities)))
}

// Stop waits for running jobs and stops the cron
func (s *CityRefreshScheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *CityRefreshScheduler) refreshInterval() time.Duration {
	return s.config.LockTTL / 3
}
