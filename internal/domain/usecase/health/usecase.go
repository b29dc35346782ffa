package health

import "city-api/internal/domain/model"

type UseCase interface {
	CheckHealth() model.HealthResponse
}
