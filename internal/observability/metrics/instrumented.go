package metrics

import (
	"context"
	"time"

	"github.com/1234-ad/intelligent-content-orchestrator/internal/domain/entity"
	"github.com/1234-ad/intelligent-content-orchestrator/internal/usecase"
)

// InstrumentedUsecase decorates an AnalysisUsecase with per-operation metrics
type InstrumentedUsecase struct {
	next    usecase.AnalysisUsecase
	metrics *ServerMetrics
	service string
}

// InstrumentUsecase wraps the usecase so every operation records its outcome
// and duration
func InstrumentUsecase(next usecase.AnalysisUsecase, m *ServerMetrics, service string) usecase.AnalysisUsecase {
	return &InstrumentedUsecase{next: next, metrics: m, service: service}
}

func (u *InstrumentedUsecase) Analyze(ctx context.Context, input *usecase.AnalyzeInput) (*entity.AnalysisResult, error) {
	start := time.Now()
	result, err := u.next.Analyze(ctx, input)
	u.metrics.RecordAnalysis(u.service, "analyze", err, time.Since(start))
	return result, err
}

func (u *InstrumentedUsecase) Sentiment(ctx context.Context, text string) (*entity.SentimentResult, error) {
	start := time.Now()
	result, err := u.next.Sentiment(ctx, text)
	u.metrics.RecordAnalysis(u.service, "sentiment", err, time.Since(start))
	return result, err
}

func (u *InstrumentedUsecase) Emotions(ctx context.Context, text string) ([]entity.EmotionResult, error) {
	start := time.Now()
	result, err := u.next.Emotions(ctx, text)
	u.metrics.RecordAnalysis(u.service, "emotions", err, time.Since(start))
	return result, err
}

func (u *InstrumentedUsecase) Entities(ctx context.Context, text string) ([]entity.Entity, error) {
	start := time.Now()
	result, err := u.next.Entities(ctx, text)
	u.metrics.RecordAnalysis(u.service, "entities", err, time.Since(start))
	return result, err
}

func (u *InstrumentedUsecase) Topics(ctx context.Context, text string, labels []string) ([]entity.TopicResult, error) {
	start := time.Now()
	result, err := u.next.Topics(ctx, text, labels)
	u.metrics.RecordAnalysis(u.service, "topics", err, time.Since(start))
	return result, err
}

func (u *InstrumentedUsecase) Keywords(ctx context.Context, text string, topN int) ([]string, error) {
	start := time.Now()
	result, err := u.next.Keywords(ctx, text, topN)
	u.metrics.RecordAnalysis(u.service, "keywords", err, time.Since(start))
	return result, err
}

func (u *InstrumentedUsecase) Readability(ctx context.Context, text string) (*entity.ReadabilityReport, error) {
	start := time.Now()
	result, err := u.next.Readability(ctx, text)
	u.metrics.RecordAnalysis(u.service, "readability", err, time.Since(start))
	return result, err
}

func (u *InstrumentedUsecase) DetectLanguage(ctx context.Context, text string) (string, error) {
	start := time.Now()
	result, err := u.next.DetectLanguage(ctx, text)
	u.metrics.RecordAnalysis(u.service, "detect_language", err, time.Since(start))
	return result, err
}
