package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/1234-ad/intelligent-content-orchestrator/internal/domain/entity"
	"github.com/1234-ad/intelligent-content-orchestrator/internal/domain/service"
)

// delegateLimit is the maximum number of characters handed to length-limited
// model backends. Truncation is a documented policy of the service: delegated
// results reflect only this prefix of the input. Language detection and text
// metrics always see the full text.
const delegateLimit = 512

// maxEmotions and maxTopics bound the ranked lists in the response
const (
	maxEmotions = 5
	maxTopics   = 5
)

// languageUnknown is substituted when language detection fails during /analyze
const languageUnknown = "unknown"

// AnalyzeInput carries one content analysis request into the orchestrator
type AnalyzeInput struct {
	Text         string
	ContentID    string
	Sentiment    bool
	Emotions     bool
	Entities     bool
	Topics       bool
	CustomTopics []string
}

// AnalysisUsecase orchestrates the per-request analysis pipeline
type AnalysisUsecase interface {
	Analyze(ctx context.Context, input *AnalyzeInput) (*entity.AnalysisResult, error)
	Sentiment(ctx context.Context, text string) (*entity.SentimentResult, error)
	Emotions(ctx context.Context, text string) ([]entity.EmotionResult, error)
	Entities(ctx context.Context, text string) ([]entity.Entity, error)
	Topics(ctx context.Context, text string, labels []string) ([]entity.TopicResult, error)
	Keywords(ctx context.Context, text string, topN int) ([]string, error)
	Readability(ctx context.Context, text string) (*entity.ReadabilityReport, error)
	DetectLanguage(ctx context.Context, text string) (string, error)
}

// AnalyzerSet bundles the inference backends the orchestrator delegates to.
// Every field is required; all are read-only after startup.
type AnalyzerSet struct {
	Sentiment service.SentimentAnalyzer
	Emotions  service.EmotionAnalyzer
	Entities  service.EntityExtractor
	Topics    service.TopicClassifier
	Language  service.LanguageDetector
	Annotator service.Annotator
}

type analysisUsecase struct {
	analyzers AnalyzerSet
	logger    *zap.Logger
}

// NewAnalysisUsecase creates a new analysis usecase
func NewAnalysisUsecase(analyzers AnalyzerSet, logger *zap.Logger) AnalysisUsecase {
	return &analysisUsecase{
		analyzers: analyzers,
		logger:    logger,
	}
}

// Analyze runs every requested analysis and assembles a single result.
// Sub-analyses are independent and run sequentially; the first failure aborts
// the whole request. Language detection is the one exception: its failure is
// substituted with "unknown". Empty text is not rejected: detection falls to
// the sentinel and the metrics come out zero.
func (u *analysisUsecase) Analyze(ctx context.Context, input *AnalyzeInput) (*entity.AnalysisResult, error) {
	start := time.Now()

	result := &entity.AnalysisResult{
		ContentID: input.ContentID,
		Language:  u.detectOrUnknown(ctx, input.Text),
		WordCount: WordCount(input.Text),
	}

	if input.Sentiment {
		sentiment, err := u.Sentiment(ctx, input.Text)
		if err != nil {
			return nil, u.failAnalysis(input.ContentID, "sentiment analysis", err)
		}
		result.Sentiment = sentiment
	}

	if input.Emotions {
		emotions, err := u.Emotions(ctx, input.Text)
		if err != nil {
			return nil, u.failAnalysis(input.ContentID, "emotion analysis", err)
		}
		result.Emotions = emotions
	}

	if input.Entities {
		entities, err := u.Entities(ctx, input.Text)
		if err != nil {
			return nil, u.failAnalysis(input.ContentID, "entity extraction", err)
		}
		result.Entities = entities
	}

	if input.Topics {
		topics, err := u.Topics(ctx, input.Text, input.CustomTopics)
		if err != nil {
			return nil, u.failAnalysis(input.ContentID, "topic classification", err)
		}
		result.Topics = topics
	}

	// Readability and keywords are unconditional and use the full text.
	annotation, err := u.analyzers.Annotator.Annotate(ctx, input.Text)
	if err != nil {
		return nil, u.failAnalysis(input.ContentID, "text annotation", err)
	}
	result.ReadabilityScore = round2(ReadabilityScore(annotation))
	result.Keywords = TopKeywords(annotation, DefaultKeywordCount)

	elapsed := time.Since(start)
	result.ProcessingTime = round3(elapsed.Seconds())
	result.Timestamp = time.Now().UTC().Format(time.RFC3339)

	u.logger.Info("analysis completed",
		zap.String("content_id", input.ContentID),
		zap.Duration("elapsed", elapsed))

	return result, nil
}

// Sentiment classifies sentiment over the delegated text prefix
func (u *analysisUsecase) Sentiment(ctx context.Context, text string) (*entity.SentimentResult, error) {
	score, err := u.analyzers.Sentiment.AnalyzeSentiment(ctx, truncateForDelegate(text))
	if err != nil {
		return nil, err
	}
	return &entity.SentimentResult{
		Label:      score.Label,
		Score:      round4(score.Score),
		Confidence: entity.ConfidenceBucket(score.Score),
	}, nil
}

// Emotions returns the top emotions, ranked by descending score
func (u *analysisUsecase) Emotions(ctx context.Context, text string) ([]entity.EmotionResult, error) {
	scores, err := u.analyzers.Emotions.AnalyzeEmotions(ctx, truncateForDelegate(text))
	if err != nil {
		return nil, err
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})
	if len(scores) > maxEmotions {
		scores = scores[:maxEmotions]
	}

	emotions := make([]entity.EmotionResult, len(scores))
	for i, s := range scores {
		emotions[i] = entity.EmotionResult{Emotion: s.Label, Score: round4(s.Score)}
	}
	return emotions, nil
}

// Entities extracts named-entity spans from the delegated text prefix
func (u *analysisUsecase) Entities(ctx context.Context, text string) ([]entity.Entity, error) {
	spans, err := u.analyzers.Entities.ExtractEntities(ctx, truncateForDelegate(text))
	if err != nil {
		return nil, err
	}

	entities := make([]entity.Entity, len(spans))
	for i, s := range spans {
		entities[i] = entity.Entity{
			Text:  s.Text,
			Type:  s.Type,
			Score: round4(s.Score),
			Start: s.Start,
			End:   s.End,
		}
	}
	return entities, nil
}

// Topics classifies the text against the candidate labels (defaulting to the
// fixed 8-label set) and returns the top matches, descending by score
func (u *analysisUsecase) Topics(ctx context.Context, text string, labels []string) ([]entity.TopicResult, error) {
	if len(labels) == 0 {
		labels = entity.DefaultTopicLabels()
	}

	scores, err := u.analyzers.Topics.ClassifyTopics(ctx, truncateForDelegate(text), labels)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})
	if len(scores) > maxTopics {
		scores = scores[:maxTopics]
	}

	topics := make([]entity.TopicResult, len(scores))
	for i, s := range scores {
		topics[i] = entity.TopicResult{Topic: s.Label, Score: round4(s.Score)}
	}
	return topics, nil
}

// Keywords extracts the topN most frequent keyword candidates from the full text
func (u *analysisUsecase) Keywords(ctx context.Context, text string, topN int) ([]string, error) {
	annotation, err := u.analyzers.Annotator.Annotate(ctx, text)
	if err != nil {
		return nil, err
	}
	return TopKeywords(annotation, topN), nil
}

// Readability scores the full text and maps the score to its level
func (u *analysisUsecase) Readability(ctx context.Context, text string) (*entity.ReadabilityReport, error) {
	annotation, err := u.analyzers.Annotator.Annotate(ctx, text)
	if err != nil {
		return nil, err
	}
	score := round2(ReadabilityScore(annotation))
	return &entity.ReadabilityReport{
		Score: score,
		Level: ReadabilityLevel(score),
	}, nil
}

// DetectLanguage identifies the language of the text. Unlike Analyze, the
// error is propagated so the single-purpose endpoint can report it.
func (u *analysisUsecase) DetectLanguage(ctx context.Context, text string) (string, error) {
	return u.analyzers.Language.DetectLanguage(ctx, text)
}

func (u *analysisUsecase) detectOrUnknown(ctx context.Context, text string) string {
	language, err := u.analyzers.Language.DetectLanguage(ctx, text)
	if err != nil {
		u.logger.Warn("language detection failed, using sentinel",
			zap.String("language", languageUnknown),
			zap.Error(err))
		return languageUnknown
	}
	return language
}

func (u *analysisUsecase) failAnalysis(contentID, step string, err error) error {
	u.logger.Error("content analysis failed",
		zap.String("content_id", contentID),
		zap.String("step", step),
		zap.Error(err))
	return fmt.Errorf("%s: %w", step, err)
}

// truncateForDelegate caps text at delegateLimit characters (runes, to avoid
// splitting multi-byte sequences) before handing it to a model backend
func truncateForDelegate(text string) string {
	if utf8.RuneCountInString(text) <= delegateLimit {
		return text
	}
	runes := []rune(text)
	return string(runes[:delegateLimit])
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
