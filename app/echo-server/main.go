package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cogniLearn/app/echo-server/metrics"
	"cogniLearn/app/echo-server/router"
	"cogniLearn/business/analyzer"
	"cogniLearn/business/behavior"
	"cogniLearn/business/cognitive"
	"cogniLearn/business/dashboard"
	"cogniLearn/business/report"
	userService "cogniLearn/business/user"
	"cogniLearn/internal/middleware"
	psqlRepo "cogniLearn/internal/repository/postgres"
	redisRepo "cogniLearn/internal/repository/redis"
	"cogniLearn/internal/rest"
	"cogniLearn/pkg/config"
	"cogniLearn/pkg/database"
	redisClient "cogniLearn/pkg/database/redis"
	"cogniLearn/pkg/logger"
	behaviorMetrics "cogniLearn/pkg/metrics"
	"cogniLearn/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment, cfg.App.LogLevel)
	logger.Info("Starting "+cfg.App.Name, "version", cfg.App.Version)

	utils.InitJWT(cfg.JWT.SecretKey, cfg.JWT.TTL)
	metrics.Init()
	behaviorMetrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", err)
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal("Failed to migrate database", err)
	}

	logger.Info("Database connected successfully")

	rdb, err := redisClient.NewRedisClient(context.Background(), cfg)
	if err != nil {
		logger.Fatal("Failed to connect to redis", err)
	}
	defer func() {
		if err := redisClient.CloseRedisClient(rdb); err != nil {
			logger.Error("Failed to close redis client", err)
		}
	}()

	// Models load once; a failure degrades to fallback analysis
	behaviorAnalyzer := analyzer.NewFromDir(cfg.Models.Dir)

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	behaviorLogRepo := psqlRepo.NewBehaviorLogRepository(db)
	cognitiveRepo := psqlRepo.NewCognitiveResultRepository(db)
	reportRepo := psqlRepo.NewReportRepository(db)
	tokenRepo := redisRepo.NewTokenRepository(rdb)

	// Init service
	userService := userService.NewUserService(userRepo, tokenRepo, validate)
	behaviorService := behavior.NewService(behaviorLogRepo, cognitiveRepo, behaviorAnalyzer)
	cognitiveService := cognitive.NewService(cognitiveRepo)
	dashboardService := dashboard.NewService(userRepo, behaviorLogRepo, cognitiveRepo)
	reportService := report.NewService(reportRepo, behaviorLogRepo, userRepo)

	scheduler, err := report.NewScheduler(reportService, cfg.Report.WeeklyCron, cfg.Report.MonthlyCron)
	if err != nil {
		logger.Fatal("Failed to schedule reports", err)
	}

	// Init handler
	userHandler := rest.NewUserHandler(userService)
	behaviorHandler := rest.NewBehaviorHandler(behaviorService)
	cognitiveHandler := rest.NewCognitiveHandler(cognitiveService)
	dashboardHandler := rest.NewDashboardHandler(dashboardService)
	reportHandler := rest.NewReportHandler(reportService)
	healthHandler := rest.NewHealthHandler(behaviorAnalyzer)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.Trace())
	e.Use(metrics.Middleware())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	authRequired := middleware.AuthMiddlewareWithRedis(userService)

	// Setup routes
	router.SetupOpsRoutes(e, healthHandler)

	api := e.Group("/api/v1")
	router.SetupUserRoutes(api, userHandler, authRequired)
	router.SetupBehaviorRoutes(api, behaviorHandler, authRequired)
	router.SetupCognitiveRoutes(api, cognitiveHandler, authRequired)
	router.SetupDashboardRoutes(api, dashboardHandler, authRequired)
	router.SetupReportRoutes(api, reportHandler, authRequired)

	scheduler.Start()

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := scheduler.Stop(ctx); err != nil {
		logger.Error("Report scheduler stop error", err)
	}

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Info("Server stopped")
}
