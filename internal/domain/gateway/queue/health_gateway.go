package queue

import (
	"city-api/internal/domain/model"
)

// Worker is a queue consumer able to report its own health
type Worker interface {
	HealthCheck() (model.HealthStatus, map[string]string)
}

type HealthGateway interface {
	Health() model.ComponentHealthStatus
	RegisterWorker(name string, worker Worker)
	UnregisterWorker(name string)
}
