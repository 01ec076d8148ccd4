package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type ModelStatus interface {
	Available() bool
}

type HealthHandler struct {
	models ModelStatus
}

func NewHealthHandler(models ModelStatus) *HealthHandler {
	return &HealthHandler{models: models}
}

type HealthResponse struct {
	Status          string `json:"status"`
	ModelsAvailable bool   `json:"models_available"`
}

// Health reports liveness. Missing models degrade analysis to the fallback
// result but do not make the service unhealthy.
func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:          "ok",
		ModelsAvailable: h.models.Available(),
	})
}
