package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/1234-ad/intelligent-content-orchestrator/internal/adapter/client"
	"github.com/1234-ad/intelligent-content-orchestrator/internal/adapter/http/router"
	"github.com/1234-ad/intelligent-content-orchestrator/internal/adapter/inference/langid"
	"github.com/1234-ad/intelligent-content-orchestrator/internal/adapter/inference/onnx"
	"github.com/1234-ad/intelligent-content-orchestrator/internal/adapter/inference/vader"
	"github.com/1234-ad/intelligent-content-orchestrator/internal/adapter/nlp"
	"github.com/1234-ad/intelligent-content-orchestrator/internal/domain/entity"
	"github.com/1234-ad/intelligent-content-orchestrator/internal/infrastructure/config"
	"github.com/1234-ad/intelligent-content-orchestrator/internal/infrastructure/logger"
	"github.com/1234-ad/intelligent-content-orchestrator/internal/observability/metrics"
	"github.com/1234-ad/intelligent-content-orchestrator/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// Set Gin mode
	gin.SetMode(cfg.Server.Mode)

	// Build the analyzer set for the configured inference backend
	analyzers, catalog, cleanup, err := buildAnalyzers(cfg, log)
	if err != nil {
		log.Error("Failed to initialize inference backend", zap.Error(err))
		return fmt.Errorf("failed to initialize inference backend: %w", err)
	}
	defer cleanup()
	log.Info("Inference backend ready", zap.String("backend", cfg.Inference.Backend))

	// Metrics and usecase
	m := metrics.NewServerMetrics(config.ServiceName)
	analysisUC := metrics.InstrumentUsecase(usecase.NewAnalysisUsecase(analyzers, log), m, config.ServiceName)

	// Setup router
	r := router.Setup(analysisUC, catalog, m, log)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("Starting server", zap.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
	return nil
}

// buildAnalyzers assembles the inference backends and the model catalog the
// metadata endpoints report. The returned cleanup releases backend resources
// on shutdown.
func buildAnalyzers(cfg *config.Config, log *zap.Logger) (usecase.AnalyzerSet, entity.ModelCatalog, func(), error) {
	set := usecase.AnalyzerSet{
		Language:  langid.NewDetector(),
		Annotator: nlp.NewProseAnnotator(),
	}
	cleanup := func() {}

	models := map[string]entity.ModelInfo{
		"language_detection": {Name: "lingua", Task: "language-detection", Status: "loaded"},
		"nlp_pipeline":       {Name: "prose", Task: "text-annotation", Status: "loaded"},
	}

	switch cfg.Inference.Backend {
	case "remote":
		remote := client.NewRemoteAnalyzer(client.NewInferenceClient(cfg.Inference.RemoteURL, cfg.Inference.RemoteTimeout))
		set.Sentiment = remote
		set.Emotions = remote
		set.Entities = remote
		set.Topics = remote

		status := "loaded"
		if _, err := remote.Health(context.Background()); err != nil {
			log.Warn("Remote inference backend is not healthy yet", zap.Error(err))
			status = "unavailable"
		}
		models["sentiment_analysis"] = entity.ModelInfo{Name: cfg.Models.Sentiment, Task: "sentiment-analysis", Status: status}
		models["emotion_detection"] = entity.ModelInfo{Name: cfg.Models.Emotion, Task: "text-classification", Status: status}
		models["named_entity_recognition"] = entity.ModelInfo{Name: cfg.Models.NER, Task: "token-classification", Status: status}
		models["topic_classification"] = entity.ModelInfo{Name: cfg.Models.ZeroShot, Task: "zero-shot-classification", Status: status}

	default:
		engine, err := onnx.NewEngine(&cfg.Models, log)
		if err != nil {
			return set, entity.ModelCatalog{}, cleanup, err
		}
		cleanup = func() {
			if err := engine.Close(); err != nil {
				log.Warn("Failed to close inference engine", zap.Error(err))
			}
		}
		set.Sentiment = engine
		set.Emotions = engine
		set.Entities = engine
		set.Topics = engine

		models["sentiment_analysis"] = entity.ModelInfo{Name: cfg.Models.Sentiment, Task: "sentiment-analysis", Status: "loaded"}
		models["emotion_detection"] = entity.ModelInfo{Name: cfg.Models.Emotion, Task: "text-classification", Status: "loaded"}
		models["named_entity_recognition"] = entity.ModelInfo{Name: cfg.Models.NER, Task: "token-classification", Status: "loaded"}
		models["topic_classification"] = entity.ModelInfo{Name: cfg.Models.ZeroShot, Task: "zero-shot-classification", Status: "loaded"}
	}

	// The lexicon analyzer needs no model files and can replace the model
	// backend for sentiment alone
	if cfg.Inference.SentimentBackend == "vader" {
		set.Sentiment = vader.NewAnalyzer()
		models["sentiment_analysis"] = entity.ModelInfo{Name: "govader", Task: "sentiment-analysis", Status: "loaded"}
	}

	catalog := entity.ModelCatalog{
		Service: config.ServiceName,
		Version: config.ServiceVersion,
		Models:  models,
	}
	return set, catalog, cleanup, nil
}
