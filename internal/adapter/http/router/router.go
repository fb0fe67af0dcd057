package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/1234-ad/intelligent-content-orchestrator/internal/adapter/http/handler"
	"github.com/1234-ad/intelligent-content-orchestrator/internal/adapter/http/middleware"
	"github.com/1234-ad/intelligent-content-orchestrator/internal/domain/entity"
	"github.com/1234-ad/intelligent-content-orchestrator/internal/observability/metrics"
	"github.com/1234-ad/intelligent-content-orchestrator/internal/usecase"
)

// Setup creates and configures the Gin router
func Setup(analysisUC usecase.AnalysisUsecase, catalog entity.ModelCatalog, m *metrics.ServerMetrics, logger *zap.Logger) *gin.Engine {
	router := gin.New()

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS())
	router.Use(m.Middleware(catalog.Service))

	// Service metadata and health endpoints
	serviceHandler := handler.NewServiceHandler(catalog)
	router.GET("/", serviceHandler.Root)
	router.GET("/health", serviceHandler.Health)
	router.GET("/models/info", serviceHandler.ModelsInfo)

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(m.Handler()))

	// Analysis routes
	analysisHandler := handler.NewAnalysisHandler(analysisUC)
	router.POST("/analyze", analysisHandler.Analyze)
	router.POST("/sentiment", analysisHandler.Sentiment)
	router.POST("/entities", analysisHandler.Entities)
	router.POST("/topics", analysisHandler.Topics)
	router.POST("/keywords", analysisHandler.Keywords)
	router.POST("/readability", analysisHandler.Readability)
	router.POST("/detect-language", analysisHandler.DetectLanguage)

	return router
}
