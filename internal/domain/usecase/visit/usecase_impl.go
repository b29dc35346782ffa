package visit

import (
	"context"
	"fmt"
	"sync"

	"city-api/internal/domain/entity"
	"city-api/internal/domain/gateway/notification"
	"city-api/internal/domain/gateway/queue"
	"city-api/internal/domain/gateway/store"
	"city-api/internal/domain/model"
	"city-api/pkg/log"
	"city-api/pkg/msg"

	"go.uber.org/zap"
)

type visitUseCase struct {
	namespace   string
	queueName   string
	store       store.VisitStore
	queueSender queue.Sender
	notifier    notification.NotificationGateway
	broadcaster *broadcaster

	mu          sync.RWMutex
	latest      entity.VisitAggregate
	lastTotal   int
	hasSnapshot bool
}

// NewVisitUseCase builds the visit use case. queueSender and notifier are optional.
func NewVisitUseCase(namespace string, queueName string, visitStore store.VisitStore, queueSender queue.Sender, notifier notification.NotificationGateway) UseCase {
	return &visitUseCase{
		namespace:   namespace,
		queueName:   queueName,
		store:       visitStore,
		queueSender: queueSender,
		notifier:    notifier,
		broadcaster: newBroadcaster(),
		latest:      entity.VisitAggregate{},
	}
}

func (uc *visitUseCase) RecordVisit(ctx context.Context, dto model.VisitDTO) error {
	if err := uc.prepare(&dto); err != nil {
		return err
	}

	if err := uc.store.EnsureDocument(ctx, dto.Visitor); err != nil {
		return err
	}
	if err := uc.store.AddCity(ctx, dto.Visitor, dto.Name, dto.CountryCode); err != nil {
		return err
	}

	log.Info(msg.GetMessage("visit.recorded", dto.Visitor, dto.Name, dto.CountryCode))
	return nil
}

func (uc *visitUseCase) EnqueueVisit(ctx context.Context, dto model.VisitDTO) (bool, error) {
	if err := uc.prepare(&dto); err != nil {
		return false, err
	}

	if uc.queueSender == nil || uc.queueName == "" {
		return false, uc.RecordVisit(ctx, dto)
	}

	if err := uc.queueSender.SendMessage(ctx, uc.queueName, dto); err != nil {
		return false, fmt.Errorf("failed to queue visit: %w", err)
	}

	log.Info(msg.GetMessage("visit.queued", dto.Visitor, dto.Name, dto.CountryCode))
	return true, nil
}

// prepare validates the visit and defaults the visitor to the namespace
func (uc *visitUseCase) prepare(dto *model.VisitDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}
	if dto.Visitor == "" {
		dto.Visitor = uc.namespace
	}
	return nil
}

func (uc *visitUseCase) Watch(ctx context.Context) error {
	aggregates, errs := uc.store.WatchAggregates(ctx)
	log.Info(msg.GetMessage("visit.watch-start"))
	defer log.Info(msg.GetMessage("visit.watch-end"))

	for {
		select {
		case aggregate, ok := <-aggregates:
			if !ok {
				return uc.listenerError(errs)
			}
			uc.publish(ctx, aggregate)
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			if err != nil {
				log.Error(msg.GetMessage("visit.watch-failed", err), zap.Error(err))
				return err
			}
		}
	}
}

func (uc *visitUseCase) listenerError(errs <-chan error) error {
	if errs == nil {
		return nil
	}
	if err := <-errs; err != nil {
		log.Error(msg.GetMessage("visit.watch-failed", err), zap.Error(err))
		return err
	}
	return nil
}

// publish stores the snapshot, notifies on a total increase and broadcasts the event
func (uc *visitUseCase) publish(ctx context.Context, aggregate entity.VisitAggregate) {
	total := aggregate.Total()

	uc.mu.Lock()
	event := entity.VisitEvent{
		Aggregate: aggregate,
		Total:     total,
		Previous:  uc.lastTotal,
		Notify:    uc.hasSnapshot && total > uc.lastTotal,
	}
	uc.latest = aggregate
	uc.lastTotal = total
	uc.hasSnapshot = true
	uc.mu.Unlock()

	if event.Notify {
		log.Info(msg.GetMessage("visit.notification", event.Previous, event.Total))
		if uc.notifier != nil {
			notice := model.VisitNotification{Previous: event.Previous, Total: event.Total}
			if err := uc.notifier.NotifyVisits(ctx, notice); err != nil {
				log.Warn(msg.GetMessage("visit.notify-failed", err), zap.Error(err))
			}
		}
	}

	uc.broadcaster.broadcast(event)
}

func (uc *visitUseCase) Subscribe() (<-chan entity.VisitEvent, func()) {
	return uc.broadcaster.subscribe()
}

func (uc *visitUseCase) Latest() entity.VisitAggregate {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.latest
}
