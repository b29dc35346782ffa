package processor

import (
	"context"
	"encoding/json"
	"fmt"

	"city-api/internal/domain/model"
	"city-api/internal/domain/usecase/visit"
	"city-api/pkg/log"
	"city-api/pkg/msg"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

type VisitProcessor struct {
	visitUseCase visit.UseCase
}

func NewVisitProcessor(visitUseCase visit.UseCase) *VisitProcessor {
	return &VisitProcessor{
		visitUseCase: visitUseCase,
	}
}

// HandleMessage implements the sqs.Handler interface
func (p *VisitProcessor) HandleMessage(ctx context.Context, message types.Message) error {
	if message.Body == nil {
		return fmt.Errorf("received message %s without body", aws.ToString(message.MessageId))
	}

	log.Debugf("Processing visit message: %s", aws.ToString(message.MessageId))

	var dto model.VisitDTO
	if err := json.Unmarshal([]byte(*message.Body), &dto); err != nil {
		log.Error(msg.GetMessage("visit.process-failed", aws.ToString(message.MessageId), err))
		return fmt.Errorf("failed to unmarshal message body: %w", err)
	}

	if err := p.visitUseCase.RecordVisit(ctx, dto); err != nil {
		log.Error(msg.GetMessage("visit.process-failed", aws.ToString(message.MessageId), err))
		return fmt.Errorf("failed to record visit to %s: %w", dto.Name, err)
	}

	return nil
}
