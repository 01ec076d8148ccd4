package router

import (
	"cogniLearn/internal/middleware"
	"cogniLearn/internal/rest"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc) {
	api.POST("/register", handler.Register)
	api.POST("/login", handler.Login)
	api.POST("/refresh-token", handler.RefreshToken, authRequired)
	api.POST("/logout", handler.Logout, authRequired)

	api.GET("/users/:id", handler.GetUserByID, authRequired, middleware.SelfOrSupervisor("id"))
}

func SetupBehaviorRoutes(api *echo.Group, handler *rest.BehaviorHandler, authRequired echo.MiddlewareFunc) {
	logs := api.Group("/behavior-log", authRequired)
	logs.POST("", handler.LogBehavior)
	logs.GET("/:user_id", handler.GetBehaviorLogs, middleware.SelfOrSupervisor("user_id"))
}

func SetupCognitiveRoutes(api *echo.Group, handler *rest.CognitiveHandler, authRequired echo.MiddlewareFunc) {
	api.GET("/cognitive/:user_id", handler.GetCognitive, authRequired, middleware.SelfOrSupervisor("user_id"))
}

func SetupDashboardRoutes(api *echo.Group, handler *rest.DashboardHandler, authRequired echo.MiddlewareFunc) {
	api.GET("/dashboard/:user_id", handler.GetDashboard, authRequired, middleware.SelfOrSupervisor("user_id"))
}

func SetupReportRoutes(api *echo.Group, handler *rest.ReportHandler, authRequired echo.MiddlewareFunc) {
	owner := middleware.SelfOrSupervisor("user_id")
	api.GET("/weekly-report/:user_id", handler.GetWeeklyReport, authRequired, owner)
	api.GET("/monthly-report/:user_id", handler.GetMonthlyReport, authRequired, owner)
}

func SetupOpsRoutes(e *echo.Echo, handler *rest.HealthHandler) {
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}
