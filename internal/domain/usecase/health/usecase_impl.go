package health

import (
	"city-api/internal/domain/gateway/cache"
	"city-api/internal/domain/gateway/db"
	"city-api/internal/domain/gateway/queue"
	"city-api/internal/domain/model"
)

type healthUseCase struct {
	dbGateway    db.HealthDBGateway
	cacheGateway cache.HealthGateway
	queueGateway queue.HealthGateway
}

// NewHealthUseCase aggregates component health. A nil cache or queue gateway reports the component as disabled.
func NewHealthUseCase(dbGateway db.HealthDBGateway, cacheGateway cache.HealthGateway, queueGateway queue.HealthGateway) UseCase {
	return &healthUseCase{
		dbGateway:    dbGateway,
		cacheGateway: cacheGateway,
		queueGateway: queueGateway,
	}
}

func (useCase *healthUseCase) CheckHealth() model.HealthResponse {
	dbHealth := useCase.dbGateway.Health()

	cacheHealth := model.DisabledComponent("cache")
	if useCase.cacheGateway != nil {
		cacheHealth = useCase.cacheGateway.Health()
	}

	queueHealth := model.DisabledComponent("queue")
	if useCase.queueGateway != nil {
		queueHealth = useCase.queueGateway.Health()
	}

	overallStatus := model.StatusUp
	for _, component := range []model.ComponentHealthStatus{dbHealth, cacheHealth, queueHealth} {
		if component.Status == model.StatusDown {
			overallStatus = model.StatusDown
		}
	}

	return model.HealthResponse{
		Status:   overallStatus,
		Database: dbHealth,
		Cache:    cacheHealth,
		Queue:    queueHealth,
	}
}
