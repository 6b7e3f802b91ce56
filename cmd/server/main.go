package main

import (
	"fmt"
	"log"

	analyticsHandlers "github.com/architect/study-companion/internal/analytics/handlers"
	analyticsModels "github.com/architect/study-companion/internal/analytics/models"
	"github.com/architect/study-companion/internal/common/database"
	commonHandlers "github.com/architect/study-companion/internal/common/handlers"
	"github.com/architect/study-companion/internal/common/health"
	"github.com/architect/study-companion/internal/common/middleware"
	reviewHandlers "github.com/architect/study-companion/internal/review/handlers"
	reviewModels "github.com/architect/study-companion/internal/review/models"
	studyHandlers "github.com/architect/study-companion/internal/study/handlers"
	studyModels "github.com/architect/study-companion/internal/study/models"
	"github.com/architect/study-companion/pkg/config"
	"github.com/architect/study-companion/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize database (SQLite for development, PostgreSQL for production)
	if err := database.InitWithType(cfg.Database.Type, cfg.Database.DSN); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	if err := database.DB.AutoMigrate(
		&reviewModels.ReviewState{},
		&studyModels.StudySession{},
		&studyModels.SessionActivity{},
		&studyModels.QuizResult{},
		&analyticsModels.AnalyticsSnapshot{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Create Gin engine
	router := gin.New()
	router.Use(gin.Recovery())

	// Apply middleware
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.ErrorHandler())

	// Health check endpoints
	healthChecker := health.NewHealthChecker(database.GetDB(), "1.0.0")
	healthHandler := commonHandlers.NewHealthHandler(healthChecker)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/readiness", healthHandler.Readiness)
	router.GET("/health/liveness", healthHandler.Liveness)
	router.GET("/health/detailed", healthHandler.Detailed)

	// Prometheus scrape endpoint
	router.GET("/metrics", middleware.MetricsHandler())

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		reviewGroup := v1.Group("/review")
		{
			reviewGroup.POST("/grade", middleware.AuthRequired(), reviewHandlers.ApplyGrade)
			reviewGroup.GET("/due", middleware.AuthRequired(), reviewHandlers.GetDueCards)
		}

		studyGroup := v1.Group("/study")
		{
			studyGroup.POST("/sessions", middleware.AuthRequired(), studyHandlers.StartSession)
			studyGroup.POST("/sessions/:id/end", middleware.AuthRequired(), studyHandlers.EndSession)
			studyGroup.POST("/sessions/:id/activities", middleware.AuthRequired(), studyHandlers.LogActivity)
			studyGroup.POST("/quizzes", middleware.AuthRequired(), studyHandlers.RecordQuiz)
		}

		analyticsGroup := v1.Group("/analytics")
		{
			analyticsGroup.GET("", middleware.AuthRequired(), analyticsHandlers.GetAnalytics)
			analyticsGroup.POST("/refresh", middleware.AuthRequired(), analyticsHandlers.RefreshAnalytics)
			analyticsGroup.POST("/fold/:session_id", middleware.AuthRequired(), analyticsHandlers.FoldSession)
		}
	}

	// Start server
	address := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Starting server", zap.String("address", address))

	if err := router.Run(address); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
