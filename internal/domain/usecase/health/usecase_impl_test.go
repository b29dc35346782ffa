package health

import (
	"testing"

	"city-api/internal/domain/gateway/queue"
	"city-api/internal/domain/model"

	"github.com/stretchr/testify/assert"
)

type stubGateway struct {
	status model.HealthStatus
}

func (s stubGateway) Health() model.ComponentHealthStatus {
	return model.ComponentHealthStatus{Status: s.status, Details: map[string]string{}}
}

func TestCheckHealth_DisabledComponentsDoNotFail(t *testing.T) {
	response := NewHealthUseCase(stubGateway{model.StatusUp}, nil, nil).CheckHealth()

	assert.Equal(t, model.StatusUp, response.Status)
	assert.Equal(t, model.StatusDisabled, response.Cache.Status)
	assert.Equal(t, model.StatusDisabled, response.Queue.Status)
}

func TestCheckHealth_AnyDownComponentIsDown(t *testing.T) {
	response := NewHealthUseCase(stubGateway{model.StatusUp}, stubGateway{model.StatusDown}, nil).CheckHealth()
	assert.Equal(t, model.StatusDown, response.Status)

	response = NewHealthUseCase(stubGateway{model.StatusDown}, stubGateway{model.StatusUp}, nil).CheckHealth()
	assert.Equal(t, model.StatusDown, response.Status)
}

func TestCheckHealth_UnknownQueueIsNotDown(t *testing.T) {
	response := NewHealthUseCase(stubGateway{model.StatusUp}, stubGateway{model.StatusUp}, queue.NewQueueHealthGateway()).CheckHealth()

	assert.Equal(t, model.StatusUp, response.Status)
	assert.Equal(t, model.StatusUnknown, response.Queue.Status)
}
