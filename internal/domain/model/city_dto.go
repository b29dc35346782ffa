package model

import "city-api/internal/domain/entity"

// CitiesResponse is the payload of the city list endpoints
type CitiesResponse struct {
	Cities  []entity.City `json:"cities"`
	Total   int           `json:"total"`
	Message string        `json:"message,omitempty"`
}

// VisitNotification is published when the total visit count grows
type VisitNotification struct {
	Previous int `json:"previous"`
	Total    int `json:"total"`
}
