package rest

import (
	"context"
	"net/http"
	"time"

	"cogniLearn/domain"
	"cogniLearn/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type CognitiveService interface {
	GetCognitive(ctx context.Context, userID uint) (domain.CognitiveResult, error)
}

type CognitiveHandler struct {
	cognitiveService CognitiveService
	timeout          time.Duration
}

func NewCognitiveHandler(cognitiveService CognitiveService) *CognitiveHandler {
	return &CognitiveHandler{
		cognitiveService: cognitiveService,
		timeout:          10 * time.Second,
	}
}

func (h *CognitiveHandler) GetCognitive(c echo.Context) error {
	userID, err := parseUserID(c, "user_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid user ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	res, err := h.cognitiveService.GetCognitive(ctx, userID)
	if err != nil {
		logger.Error("Failed to get cognitive result", err, "user_id", userID)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(res))
}
