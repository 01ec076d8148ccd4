package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"cogniLearn/business/dashboard"
	"cogniLearn/domain"
	"cogniLearn/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type DashboardService interface {
	GetDashboard(ctx context.Context, userID uint) (any, error)
}

type DashboardHandler struct {
	dashboardService DashboardService
	timeout          time.Duration
}

func NewDashboardHandler(dashboardService DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		timeout:          10 * time.Second,
	}
}

func (h *DashboardHandler) GetDashboard(c echo.Context) error {
	userID, err := parseUserID(c, "user_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid user ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	d, err := h.dashboardService.GetDashboard(ctx, userID)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, ResponseError{Message: "user not found"})
	case errors.Is(err, dashboard.ErrUnsupportedRole):
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	case err != nil:
		logger.Error("Failed to build dashboard", err, "user_id", userID)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "failed to build dashboard"})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(d))
}
