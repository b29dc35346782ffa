package processor

import (
	"context"
	"errors"
	"testing"

	"city-api/internal/domain/entity"
	"city-api/internal/domain/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingVisitUseCase struct {
	recorded []model.VisitDTO
	err      error
}

func (r *recordingVisitUseCase) RecordVisit(_ context.Context, dto model.VisitDTO) error {
	r.recorded = append(r.recorded, dto)
	return r.err
}

func (r *recordingVisitUseCase) EnqueueVisit(context.Context, model.VisitDTO) (bool, error) {
	return false, nil
}

func (r *recordingVisitUseCase) Watch(context.Context) error { return nil }

func (r *recordingVisitUseCase) Subscribe() (<-chan entity.VisitEvent, func()) {
	return nil, func() {}
}

func (r *recordingVisitUseCase) Latest() entity.VisitAggregate { return entity.VisitAggregate{} }

func message(body *string) types.Message {
	return types.Message{MessageId: aws.String("m-1"), Body: body}
}

func TestVisitProcessor_RecordsVisit(t *testing.T) {
	useCase := &recordingVisitUseCase{}
	processor := NewVisitProcessor(useCase)

	err := processor.HandleMessage(context.Background(), message(aws.String(`{"name":"Lima","countryCode":"PE","visitor":"bob"}`)))

	require.NoError(t, err)
	assert.Equal(t, []model.VisitDTO{{Name: "Lima", CountryCode: "PE", Visitor: "bob"}}, useCase.recorded)
}

func TestVisitProcessor_Failures(t *testing.T) {
	processor := NewVisitProcessor(&recordingVisitUseCase{})
	assert.Error(t, processor.HandleMessage(context.Background(), message(nil)))
	assert.Error(t, processor.HandleMessage(context.Background(), message(aws.String("not-json"))))

	failing := NewVisitProcessor(&recordingVisitUseCase{err: errors.New("unavailable")})
	err := failing.HandleMessage(context.Background(), message(aws.String(`{"name":"Lima","countryCode":"PE"}`)))
	assert.ErrorContains(t, err, "unavailable")
}
