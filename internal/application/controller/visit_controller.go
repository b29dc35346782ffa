package controller

import (
	"errors"
	"net/http"

	"city-api/internal/domain/model"
	"city-api/internal/domain/usecase/visit"
	"city-api/pkg/log"
	"city-api/pkg/msg"

	"github.com/labstack/echo/v4"
)

type VisitController struct {
	api     *echo.Group
	useCase visit.UseCase
}

func NewVisitController(api *echo.Group, useCase visit.UseCase) *VisitController {
	return &VisitController{api: api, useCase: useCase}
}

// InitVisitRoutes initializes visit routes
func (controller *VisitController) InitVisitRoutes() {
	controller.api.GET("/visits", controller.FindVisits)
	controller.api.POST("/visits", controller.RegisterVisit)
}

// FindVisits godoc
// @Summary Visit counts
// @Description Latest visit aggregate across all visitors
// @Tags visits
// @Produce json
// @Success 200 {object} model.VisitsResponse "Visit counts by city"
// @Router /visits [get]
func (controller *VisitController) FindVisits(c echo.Context) error {
	return c.JSON(http.StatusOK, model.NewVisitsResponse(controller.useCase.Latest()))
}

// RegisterVisit godoc
// @Summary Register a visit
// @Description Record that a visitor opened a city. The visit is queued when the visits queue is enabled.
// @Tags visits
// @Accept json
// @Produce json
// @Param visit body model.VisitDTO true "Visited city"
// @Success 201 {object} model.VisitDTO "Visit recorded"
// @Success 202 {object} model.VisitDTO "Visit queued"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 500 {object} map[string]string "Internal server error"
// @Failure 503 {object} map[string]string "Visits disabled"
// @Router /visits [post]
func (controller *VisitController) RegisterVisit(c echo.Context) error {
	var dto model.VisitDTO
	if err := c.Bind(&dto); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	queued, err := controller.useCase.EnqueueVisit(c.Request().Context(), dto)
	if errors.Is(err, model.ErrInvalidVisit) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": msg.GetMessage("visit.invalid", "name and countryCode")})
	}
	if errors.Is(err, model.ErrVisitsDisabled) {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
	}
	if err != nil {
		log.Error(msg.GetMessage("visit.record-failed", err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	if queued {
		return c.JSON(http.StatusAccepted, dto)
	}
	return c.JSON(http.StatusCreated, dto)
}
