// Package vader provides a pure-Go sentiment backend with no model files or
// ONNX runtime dependency, useful for development and constrained deployments.
package vader

import (
	"context"
	"math"

	"github.com/jonreiter/govader"

	"github.com/1234-ad/intelligent-content-orchestrator/internal/domain/service"
)

// Compound score thresholds for the label mapping
const (
	positiveThreshold = 0.20
	negativeThreshold = -0.20
)

// Analyzer implements service.SentimentAnalyzer over VADER
type Analyzer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewAnalyzer creates a new VADER sentiment analyzer
func NewAnalyzer() *Analyzer {
	return &Analyzer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// AnalyzeSentiment scores the text with VADER. The compound score in [-1,1]
// picks the label; its magnitude serves as the classifier score so the
// confidence bucketing downstream stays meaningful.
func (a *Analyzer) AnalyzeSentiment(ctx context.Context, text string) (*service.SentimentScore, error) {
	sentiment := a.analyzer.PolarityScores(text)
	compound := sentiment.Compound

	var label string
	switch {
	case compound >= positiveThreshold:
		label = "positive"
	case compound <= negativeThreshold:
		label = "negative"
	default:
		label = "neutral"
	}

	return &service.SentimentScore{
		Label: label,
		Score: math.Abs(compound),
	}, nil
}
