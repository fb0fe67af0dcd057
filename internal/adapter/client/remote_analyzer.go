package client

import (
	"context"

	"github.com/1234-ad/intelligent-content-orchestrator/internal/domain/service"
)

// RemoteAnalyzer adapts InferenceClient to the classification ports, for
// deployments that run the model pipelines in a separate inference service
// instead of in-process.
type RemoteAnalyzer struct {
	client *InferenceClient
}

var (
	_ service.SentimentAnalyzer = (*RemoteAnalyzer)(nil)
	_ service.EmotionAnalyzer   = (*RemoteAnalyzer)(nil)
	_ service.EntityExtractor   = (*RemoteAnalyzer)(nil)
	_ service.TopicClassifier   = (*RemoteAnalyzer)(nil)
)

// NewRemoteAnalyzer creates a new remote analyzer
func NewRemoteAnalyzer(client *InferenceClient) *RemoteAnalyzer {
	return &RemoteAnalyzer{client: client}
}

// Health reports the readiness of the remote inference service
func (r *RemoteAnalyzer) Health(ctx context.Context) (*HealthPayload, error) {
	return r.client.Health(ctx)
}

// AnalyzeSentiment implements service.SentimentAnalyzer
func (r *RemoteAnalyzer) AnalyzeSentiment(ctx context.Context, text string) (*service.SentimentScore, error) {
	payload, err := r.client.Sentiment(ctx, text)
	if err != nil {
		return nil, err
	}
	return &service.SentimentScore{Label: payload.Label, Score: payload.Score}, nil
}

// AnalyzeEmotions implements service.EmotionAnalyzer
func (r *RemoteAnalyzer) AnalyzeEmotions(ctx context.Context, text string) ([]service.EmotionScore, error) {
	payload, err := r.client.Emotions(ctx, text)
	if err != nil {
		return nil, err
	}
	scores := make([]service.EmotionScore, len(payload))
	for i, p := range payload {
		scores[i] = service.EmotionScore{Label: p.Label, Score: p.Score}
	}
	return scores, nil
}

// ExtractEntities implements service.EntityExtractor
func (r *RemoteAnalyzer) ExtractEntities(ctx context.Context, text string) ([]service.EntitySpan, error) {
	payload, err := r.client.Entities(ctx, text)
	if err != nil {
		return nil, err
	}
	spans := make([]service.EntitySpan, len(payload))
	for i, p := range payload {
		spans[i] = service.EntitySpan{
			Text:  p.Text,
			Type:  p.Type,
			Score: p.Score,
			Start: p.Start,
			End:   p.End,
		}
	}
	return spans, nil
}

// ClassifyTopics implements service.TopicClassifier
func (r *RemoteAnalyzer) ClassifyTopics(ctx context.Context, text string, labels []string) ([]service.TopicScore, error) {
	payload, err := r.client.Topics(ctx, text, labels)
	if err != nil {
		return nil, err
	}
	scores := make([]service.TopicScore, len(payload))
	for i, p := range payload {
		scores[i] = service.TopicScore{Label: p.Label, Score: p.Score}
	}
	return scores, nil
}
