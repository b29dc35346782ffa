package model

import (
	"errors"
	"sort"
	"strings"

	"city-api/internal/domain/entity"
)

var (
	ErrInvalidVisit   = errors.New("name and countryCode are required")
	ErrVisitsDisabled = errors.New("visits are disabled")
)

// VisitDTO registers a visit by a visitor to a city
type VisitDTO struct {
	Name        string `json:"name" example:"Lisbon"`
	CountryCode string `json:"countryCode" example:"PT"`
	Visitor     string `json:"visitor,omitempty" example:"demo-device"`
}

// Validate trims the fields and checks the required ones
func (dto *VisitDTO) Validate() error {
	dto.Name = strings.TrimSpace(dto.Name)
	dto.CountryCode = strings.TrimSpace(dto.CountryCode)
	dto.Visitor = strings.TrimSpace(dto.Visitor)

	if dto.Name == "" || dto.CountryCode == "" {
		return ErrInvalidVisit
	}
	return nil
}

// VisitCountDTO is one row of the aggregate
type VisitCountDTO struct {
	Name        string `json:"name"`
	CountryCode string `json:"countryCode"`
	Count       int    `json:"count"`
}

// VisitsResponse lists the aggregate sorted by count, then name
type VisitsResponse struct {
	Visits []VisitCountDTO `json:"visits"`
	Total  int             `json:"total"`
}

func NewVisitsResponse(aggregate entity.VisitAggregate) VisitsResponse {
	visits := make([]VisitCountDTO, 0, len(aggregate))
	for key, count := range aggregate {
		visits = append(visits, VisitCountDTO{Name: key.Name, CountryCode: key.CountryCode, Count: count})
	}

	sort.Slice(visits, func(i, j int) bool {
		if visits[i].Count != visits[j].Count {
			return visits[i].Count > visits[j].Count
		}
		if visits[i].Name != visits[j].Name {
			return visits[i].Name < visits[j].Name
		}
		return visits[i].CountryCode < visits[j].CountryCode
	})

	return VisitsResponse{Visits: visits, Total: aggregate.Total()}
}
