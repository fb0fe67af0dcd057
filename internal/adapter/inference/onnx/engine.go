// Package onnx runs the pre-trained transformer pipelines in-process through
// hugot (ONNX Runtime). All pipelines are built once at startup and are safe
// for concurrent inference calls.
package onnx

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelineBackends"
	"github.com/knights-analytics/hugot/pipelines"
	"go.uber.org/zap"

	"github.com/1234-ad/intelligent-content-orchestrator/internal/domain/entity"
	"github.com/1234-ad/intelligent-content-orchestrator/internal/domain/service"
	"github.com/1234-ad/intelligent-content-orchestrator/internal/infrastructure/config"
)

// Engine holds the hugot session and the pipelines backing the classification
// ports. Zero-shot pipelines are keyed by their candidate label set: the
// default set is built eagerly, custom sets lazily on first use, and the
// cache is capped (label sets past the cap run on a throwaway pipeline).
type Engine struct {
	session *hugot.Session
	logger  *zap.Logger

	sentiment *pipelines.TextClassificationPipeline
	emotion   *pipelines.TextClassificationPipeline
	ner       *pipelines.TokenClassificationPipeline

	zeroShotModelPath string
	zeroShotMu        sync.Mutex
	zeroShot          *zeroShotCache
	zeroShotSeq       int
}

// NewEngine initializes the hugot session, resolves (and if configured,
// downloads) every model, and builds the pipelines.
func NewEngine(cfg *config.ModelsConfig, logger *zap.Logger) (*Engine, error) {
	session, err := hugot.NewORTSession()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize hugot session: %w", err)
	}

	e := &Engine{
		session:  session,
		logger:   logger,
		zeroShot: newZeroShotCache(maxZeroShotPipelines),
	}

	sentimentPath, err := e.resolveModel(cfg, cfg.Sentiment)
	if err != nil {
		session.Destroy()
		return nil, err
	}
	emotionPath, err := e.resolveModel(cfg, cfg.Emotion)
	if err != nil {
		session.Destroy()
		return nil, err
	}
	nerPath, err := e.resolveModel(cfg, cfg.NER)
	if err != nil {
		session.Destroy()
		return nil, err
	}
	zeroShotPath, err := e.resolveModel(cfg, cfg.ZeroShot)
	if err != nil {
		session.Destroy()
		return nil, err
	}
	e.zeroShotModelPath = zeroShotPath

	e.sentiment, err = hugot.NewPipeline(session, hugot.TextClassificationConfig{
		ModelPath: sentimentPath,
		Name:      "sentimentPipeline",
	})
	if err != nil {
		session.Destroy()
		return nil, fmt.Errorf("failed to build sentiment pipeline: %w", err)
	}

	e.emotion, err = hugot.NewPipeline(session, hugot.TextClassificationConfig{
		ModelPath: emotionPath,
		Name:      "emotionPipeline",
		Options: []pipelineBackends.PipelineOption[*pipelines.TextClassificationPipeline]{
			pipelines.WithMultiLabel(),
		},
	})
	if err != nil {
		session.Destroy()
		return nil, fmt.Errorf("failed to build emotion pipeline: %w", err)
	}

	e.ner, err = hugot.NewPipeline(session, hugot.TokenClassificationConfig{
		ModelPath: nerPath,
		Name:      "nerPipeline",
		Options: []pipelineBackends.PipelineOption[*pipelines.TokenClassificationPipeline]{
			pipelines.WithSimpleAggregation(),
		},
	})
	if err != nil {
		session.Destroy()
		return nil, fmt.Errorf("failed to build ner pipeline: %w", err)
	}

	if _, _, err := e.zeroShotFor(entity.DefaultTopicLabels()); err != nil {
		session.Destroy()
		return nil, fmt.Errorf("failed to build zero-shot pipeline: %w", err)
	}

	logger.Info("inference pipelines loaded",
		zap.String("sentiment", cfg.Sentiment),
		zap.String("emotion", cfg.Emotion),
		zap.String("ner", cfg.NER),
		zap.String("zero_shot", cfg.ZeroShot))

	return e, nil
}

// Close releases the underlying ONNX runtime session
func (e *Engine) Close() error {
	return e.session.Destroy()
}

// AnalyzeSentiment implements service.SentimentAnalyzer
func (e *Engine) AnalyzeSentiment(ctx context.Context, text string) (*service.SentimentScore, error) {
	output, err := e.sentiment.RunPipeline([]string{text})
	if err != nil {
		return nil, fmt.Errorf("sentiment pipeline: %w", err)
	}
	if len(output.ClassificationOutputs) == 0 || len(output.ClassificationOutputs[0]) == 0 {
		return nil, fmt.Errorf("sentiment pipeline returned no output")
	}

	best := output.ClassificationOutputs[0][0]
	return &service.SentimentScore{
		Label: best.Label,
		Score: float64(best.Score),
	}, nil
}

// AnalyzeEmotions implements service.EmotionAnalyzer
func (e *Engine) AnalyzeEmotions(ctx context.Context, text string) ([]service.EmotionScore, error) {
	output, err := e.emotion.RunPipeline([]string{text})
	if err != nil {
		return nil, fmt.Errorf("emotion pipeline: %w", err)
	}
	if len(output.ClassificationOutputs) == 0 {
		return nil, fmt.Errorf("emotion pipeline returned no output")
	}

	scores := make([]service.EmotionScore, 0, len(output.ClassificationOutputs[0]))
	for _, c := range output.ClassificationOutputs[0] {
		scores = append(scores, service.EmotionScore{
			Label: c.Label,
			Score: float64(c.Score),
		})
	}
	return scores, nil
}

// ExtractEntities implements service.EntityExtractor
func (e *Engine) ExtractEntities(ctx context.Context, text string) ([]service.EntitySpan, error) {
	output, err := e.ner.RunPipeline([]string{text})
	if err != nil {
		return nil, fmt.Errorf("ner pipeline: %w", err)
	}
	if len(output.Entities) == 0 {
		return []service.EntitySpan{}, nil
	}

	spans := make([]service.EntitySpan, 0, len(output.Entities[0]))
	for _, ent := range output.Entities[0] {
		spans = append(spans, service.EntitySpan{
			Text:  ent.Word,
			Type:  ent.Entity,
			Score: float64(ent.Score),
			Start: int(ent.Start),
			End:   int(ent.End),
		})
	}
	return spans, nil
}

// ClassifyTopics implements service.TopicClassifier. Hugot fixes candidate
// labels at pipeline construction, so each distinct label set gets its own
// pipeline; sets past the cache cap are served by a throwaway one.
func (e *Engine) ClassifyTopics(ctx context.Context, text string, labels []string) ([]service.TopicScore, error) {
	pipeline, ephemeral, err := e.zeroShotFor(labels)
	if err != nil {
		return nil, err
	}
	if ephemeral {
		defer func() {
			if err := hugot.ClosePipeline[*pipelines.ZeroShotClassificationPipeline](e.session, pipeline.PipelineName); err != nil {
				e.logger.Warn("failed to destroy throwaway zero-shot pipeline", zap.Error(err))
			}
		}()
	}

	output, err := pipeline.RunPipeline([]string{text})
	if err != nil {
		return nil, fmt.Errorf("zero-shot pipeline: %w", err)
	}
	if len(output.ClassificationOutputs) == 0 {
		return nil, fmt.Errorf("zero-shot pipeline returned no output")
	}

	ranked := output.ClassificationOutputs[0].SortedValues
	scores := make([]service.TopicScore, 0, len(ranked))
	for _, kv := range ranked {
		scores = append(scores, service.TopicScore{
			Label: kv.Key,
			Score: kv.Value,
		})
	}
	return scores, nil
}

// zeroShotFor returns a pipeline for the label set, building one when it is
// not cached. The boolean marks the pipeline as ephemeral: the cache was at
// capacity, and the caller must destroy the pipeline after use.
func (e *Engine) zeroShotFor(labels []string) (*pipelines.ZeroShotClassificationPipeline, bool, error) {
	e.zeroShotMu.Lock()
	defer e.zeroShotMu.Unlock()

	if pipeline, ok := e.zeroShot.get(labels); ok {
		return pipeline, false, nil
	}

	pipeline, err := hugot.NewPipeline(e.session, hugot.ZeroShotClassificationConfig{
		ModelPath: e.zeroShotModelPath,
		Name:      fmt.Sprintf("zeroShotPipeline-%d", e.zeroShotSeq),
		Options: []pipelineBackends.PipelineOption[*pipelines.ZeroShotClassificationPipeline]{
			pipelines.WithLabels(labels),
		},
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to build zero-shot pipeline for custom labels: %w", err)
	}
	e.zeroShotSeq++

	if e.zeroShot.put(labels, pipeline) {
		e.logger.Info("zero-shot pipeline built", zap.Strings("labels", labels))
		return pipeline, false, nil
	}

	e.logger.Warn("zero-shot pipeline cache at capacity, serving label set with a throwaway pipeline",
		zap.Strings("labels", labels))
	return pipeline, true, nil
}

// resolveModel returns the local path for a model, downloading it into the
// model directory when it is missing and auto-download is enabled.
func (e *Engine) resolveModel(cfg *config.ModelsConfig, model string) (string, error) {
	localPath := filepath.Join(cfg.Dir, strings.ReplaceAll(model, "/", "_"))
	if _, err := os.Stat(localPath); err == nil {
		e.logger.Info("using existing model", zap.String("path", localPath))
		return localPath, nil
	}

	if !cfg.AutoDownload {
		return "", fmt.Errorf("model %s not found at %s and auto download is disabled", model, localPath)
	}

	if err := os.MkdirAll(cfg.Dir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create model directory: %w", err)
	}

	e.logger.Info("model not found, downloading", zap.String("model", model))
	downloaded, err := hugot.DownloadModel(model, cfg.Dir, hugot.NewDownloadOptions())
	if err != nil {
		return "", fmt.Errorf("failed to download model %s: %w", model, err)
	}
	e.logger.Info("model downloaded", zap.String("path", downloaded))
	return downloaded, nil
}
