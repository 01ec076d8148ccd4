package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"cogniLearn/business/analyzer"
	"cogniLearn/business/behavior"
	"cogniLearn/domain"
	"cogniLearn/pkg/logger"
	"cogniLearn/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	BehaviorHandler struct {
		validate        *validator.Validate
		behaviorService BehaviorService
		timeout         time.Duration
	}

	BehaviorService interface {
		LogBehavior(ctx context.Context, userID uint, log domain.BehaviorLog) (behavior.Outcome, error)
		RecentLogs(ctx context.Context, userID uint, limit int) ([]domain.BehaviorLog, error)
	}

	BehaviorLogInput struct {
		Action       string  `json:"action" validate:"required"`
		LessonID     string  `json:"lesson_id" validate:"required"`
		ResponseTime float64 `json:"response_time" validate:"gte=0"`
		RetryCount   int     `json:"retry_count" validate:"gte=0"`
		Mistakes     int     `json:"mistakes" validate:"gte=0"`
		FocusScore   float64 `json:"focus_score" validate:"gte=0,lte=100"`
	}

	BehaviorLogResponse struct {
		Message  string          `json:"message"`
		LogID    string          `json:"log_id"`
		Analysis analyzer.Result `json:"analysis"`
	}
)

func NewBehaviorHandler(behaviorService BehaviorService) *BehaviorHandler {
	return &BehaviorHandler{
		validate:        validator.New(),
		behaviorService: behaviorService,
		timeout:         10 * time.Second,
	}
}

func (h *BehaviorHandler) LogBehavior(c echo.Context) error {
	start := time.Now()
	defer func() {
		metrics.BehaviorLogLatency.Observe(time.Since(start).Seconds())
	}()

	userID, ok := c.Get("user_id").(uint)
	if !ok {
		metrics.BehaviorLogRequests.WithLabelValues("unauthorized").Inc()
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var request BehaviorLogInput
	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		metrics.BehaviorLogRequests.WithLabelValues("invalid").Inc()
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed to validate behavior log", err)
		metrics.BehaviorLogRequests.WithLabelValues("invalid").Inc()
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	out, err := h.behaviorService.LogBehavior(ctx, userID, domain.BehaviorLog{
		Action:       request.Action,
		LessonID:     request.LessonID,
		ResponseTime: request.ResponseTime,
		RetryCount:   request.RetryCount,
		Mistakes:     request.Mistakes,
		FocusScore:   request.FocusScore,
	})
	if err != nil {
		logger.Error("Failed to log behavior", err, "user_id", userID)
		metrics.BehaviorLogRequests.WithLabelValues("error").Inc()
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "failed to log behavior"})
	}

	metrics.BehaviorLogRequests.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(BehaviorLogResponse{
		Message:  "Behavior logged successfully",
		LogID:    out.Log.ID,
		Analysis: out.Analysis,
	}))
}

func (h *BehaviorHandler) GetBehaviorLogs(c echo.Context) error {
	userID, err := parseUserID(c, "user_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid user ID"})
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "limit must be a positive integer"})
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	logs, err := h.behaviorService.RecentLogs(ctx, userID, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(logs))
}
