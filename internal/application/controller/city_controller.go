package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"city-api/internal/domain/entity"
	"city-api/internal/domain/model"
	"city-api/internal/domain/usecase/city"
	"city-api/internal/domain/usecase/visit"
	"city-api/pkg/msg"

	"github.com/labstack/echo/v4"
)

const (
	citiesEvent       = "cities"
	notificationEvent = "notification"
)

type CityController struct {
	api          *echo.Group
	cityUseCase  city.UseCase
	visitUseCase visit.UseCase
	heartbeat    time.Duration
}

func NewCityController(api *echo.Group, cityUseCase city.UseCase, visitUseCase visit.UseCase) *CityController {
	return &CityController{
		api:          api,
		cityUseCase:  cityUseCase,
		visitUseCase: visitUseCase,
		heartbeat:    15 * time.Second,
	}
}

// InitCityRoutes initializes city routes
func (controller *CityController) InitCityRoutes() {
	controller.api.GET("/cities", controller.FindCities)
	controller.api.GET("/cities/stream", controller.StreamCities)
}

// FindCities godoc
// @Summary Search cities
// @Description List cached cities, refreshed from the remote API, with their visit counts. A blank name lists every city.
// @Tags cities
// @Produce json
// @Param name query string false "Text contained in the city name"
// @Success 200 {object} model.CitiesResponse "Cities ordered by name"
// @Router /cities [get]
func (controller *CityController) FindCities(c echo.Context) error {
	cities := controller.cityUseCase.Search(c.Request().Context(), c.QueryParam("name"))
	return c.JSON(http.StatusOK, newCitiesResponse(visit.AttachVisits(cities, controller.visitUseCase.Latest())))
}

// StreamCities godoc
// @Summary Stream cities with live visit counts
// @Description Server-Sent Events stream. Emits a "cities" event on connect and on every visit change, and a "notification" event when the visit total grows.
// @Tags cities
// @Produce text/event-stream
// @Param name query string false "Text contained in the city name"
// @Success 200 {string} string "Event stream"
// @Router /cities/stream [get]
func (controller *CityController) StreamCities(c echo.Context) error {
	ctx := c.Request().Context()

	events, unsubscribe := controller.visitUseCase.Subscribe()
	defer unsubscribe()

	cities := controller.cityUseCase.Search(ctx, c.QueryParam("name"))

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)

	if err := writeEvent(res, citiesEvent, newCitiesResponse(visit.AttachVisits(cities, controller.visitUseCase.Latest()))); err != nil {
		return nil
	}

	ticker := time.NewTicker(controller.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := fmt.Fprint(res, ": ping\n\n"); err != nil {
				return nil
			}
			res.Flush()
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if event.Notify {
				notice := model.VisitNotification{Previous: event.Previous, Total: event.Total}
				if err := writeEvent(res, notificationEvent, notice); err != nil {
					return nil
				}
			}
			if err := writeEvent(res, citiesEvent, newCitiesResponse(visit.AttachVisits(cities, event.Aggregate))); err != nil {
				return nil
			}
		}
	}
}

func newCitiesResponse(cities []entity.City) model.CitiesResponse {
	response := model.CitiesResponse{Cities: cities, Total: len(cities)}
	if len(cities) == 0 {
		response.Message = msg.GetMessage("city.empty")
	}
	return response
}

func writeEvent(res *echo.Response, name string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if _, err = fmt.Fprintf(res, "event: %s\ndata: %s\n\n", name, data); err != nil {
		return err
	}
	res.Flush()
	return nil
}
