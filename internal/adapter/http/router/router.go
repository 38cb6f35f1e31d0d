package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ADPer0705/parsec/internal/adapter/client"
	"github.com/ADPer0705/parsec/internal/adapter/http/handler"
	"github.com/ADPer0705/parsec/internal/adapter/http/middleware"
	"github.com/ADPer0705/parsec/internal/adapter/repository/postgres"
	"github.com/ADPer0705/parsec/internal/domain/repository"
	"github.com/ADPer0705/parsec/internal/domain/service"
	"github.com/ADPer0705/parsec/internal/usecase"
)

// Dependencies carries everything the router needs. Only Engine and
// Logger are required; the rest may be nil when the corresponding
// component is disabled.
type Dependencies struct {
	Engine      service.Classifier
	ModelClient *client.ZeroShotClient
	DB          *gorm.DB
	Redis       *redis.Client
	Logger      *zap.Logger
	CacheTTL    time.Duration
}

// Setup creates and configures the Gin router
func Setup(deps Dependencies) *gin.Engine {
	router := gin.New()

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(deps.Logger))
	router.Use(middleware.Recovery(deps.Logger))
	router.Use(middleware.CORS())

	// Health endpoints
	healthHandler := handler.NewHealthHandler(deps.DB, deps.Redis, deps.ModelClient)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Initialize repositories
	var decisionRepo repository.DecisionRepository
	if deps.DB != nil {
		decisionRepo = postgres.NewDecisionRepository(deps.DB)
	}

	// Initialize usecases
	classifierUC := usecase.NewClassifierUsecase(deps.Engine, decisionRepo, deps.Redis, deps.CacheTTL, deps.Logger)

	// Initialize handlers
	classifyHandler := handler.NewClassifyHandler(classifierUC, deps.Logger)
	decisionHandler := handler.NewDecisionHandler(classifierUC)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/classify", classifyHandler.Classify)
		v1.POST("/classify/batch", classifyHandler.ClassifyBatch)

		decisions := v1.Group("/decisions")
		{
			decisions.GET("", decisionHandler.ListDecisions)
			decisions.GET("/:id", decisionHandler.GetDecision)
		}
	}

	return router
}
