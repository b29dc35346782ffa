package api

import (
	"context"
	"errors"
	"strconv"

	"city-api/internal/domain/entity"
	"city-api/internal/domain/model/external"
	"city-api/pkg/http"
)

const (
	citiesPath   = "/v1/city"
	apiKeyHeader = "X-Api-Key"
)

// cityGatewayImpl implements CityGateway over the cities HTTP API
type cityGatewayImpl struct {
	httpClient *http.Client
}

// NewCityGateway creates a CityGateway that authenticates every call with apiKey
func NewCityGateway(baseUrl string, apiKey string, clientOptions http.ClientOptions) CityGateway {
	headers := make(map[string]string, len(clientOptions.DefaultHeaders)+1)
	for k, v := range clientOptions.DefaultHeaders {
		headers[k] = v
	}
	headers[apiKeyHeader] = apiKey
	clientOptions.DefaultHeaders = headers

	return &cityGatewayImpl{
		httpClient: http.NewHttpClient(baseUrl, clientOptions),
	}
}

// FindCities lists cities by minimum population
func (g *cityGatewayImpl) FindCities(ctx context.Context, minPopulation int, limit int) ([]entity.City, error) {
	return g.findCities(ctx, map[string]string{
		"min_population": strconv.Itoa(minPopulation),
		"limit":          strconv.Itoa(limit),
	})
}

// FindCitiesByName lists cities by name
func (g *cityGatewayImpl) FindCitiesByName(ctx context.Context, name string, limit int) ([]entity.City, error) {
	return g.findCities(ctx, map[string]string{
		"name":  name,
		"limit": strconv.Itoa(limit),
	})
}

func (g *cityGatewayImpl) findCities(ctx context.Context, query map[string]string) ([]entity.City, error) {
	successResp, errResp, _, err := g.httpClient.Request().
		WithContext(ctx).
		WithMethod(http.GET).
		WithPath(citiesPath).
		WithQueryParams(query).
		WithSuccessResp(&[]entity.City{}).
		WithErrorResp(&external.APIErrorResponse{}).
		Execute()

	if err == nil {
		if successResp == nil {
			return []entity.City{}, nil
		}
		return *successResp.(*[]entity.City), nil
	}

	if errResp != nil {
		if text := errResp.(*external.APIErrorResponse).Text(); text != "" {
			return nil, errors.New(text)
		}
	}

	return nil, err
}
