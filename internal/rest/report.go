package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"cogniLearn/business/report"
	"cogniLearn/domain"
	"cogniLearn/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type ReportService interface {
	GetReport(ctx context.Context, userID uint, reportType string) (domain.Report, error)
}

type ReportHandler struct {
	reportService ReportService
	timeout       time.Duration
}

func NewReportHandler(reportService ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		timeout:       10 * time.Second,
	}
}

func (h *ReportHandler) GetWeeklyReport(c echo.Context) error {
	return h.getReport(c, domain.ReportWeekly)
}

func (h *ReportHandler) GetMonthlyReport(c echo.Context) error {
	return h.getReport(c, domain.ReportMonthly)
}

func (h *ReportHandler) getReport(c echo.Context, reportType string) error {
	userID, err := parseUserID(c, "user_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid user ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	r, err := h.reportService.GetReport(ctx, userID, reportType)
	if err != nil {
		if errors.Is(err, report.ErrInvalidReportType) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to get report", err, "user_id", userID, "type", reportType)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(r))
}
