package aws

import (
	"city-api/internal/domain/gateway/queue"
	"city-api/internal/domain/model"
	"city-api/pkg/sqs"
)

// SQSWorkerAdapter exposes a pkg/sqs worker to the queue health gateway
type SQSWorkerAdapter struct {
	worker *sqs.Worker
}

var _ queue.Worker = (*SQSWorkerAdapter)(nil)

func NewSQSWorkerAdapter(worker *sqs.Worker) *SQSWorkerAdapter {
	return &SQSWorkerAdapter{worker: worker}
}

func (adapter *SQSWorkerAdapter) HealthCheck() (model.HealthStatus, map[string]string) {
	status, details := adapter.worker.HealthCheck()
	if status == sqs.StatusUp {
		return model.StatusUp, details
	}
	return model.StatusDown, details
}
