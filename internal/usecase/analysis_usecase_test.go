package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/1234-ad/intelligent-content-orchestrator/internal/domain/entity"
	"github.com/1234-ad/intelligent-content-orchestrator/internal/domain/service"
)

// MockSentimentAnalyzer is a mock implementation of service.SentimentAnalyzer
type MockSentimentAnalyzer struct {
	mock.Mock
}

func (m *MockSentimentAnalyzer) AnalyzeSentiment(ctx context.Context, text string) (*service.SentimentScore, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SentimentScore), args.Error(1)
}

// MockEmotionAnalyzer is a mock implementation of service.EmotionAnalyzer
type MockEmotionAnalyzer struct {
	mock.Mock
}

func (m *MockEmotionAnalyzer) AnalyzeEmotions(ctx context.Context, text string) ([]service.EmotionScore, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.EmotionScore), args.Error(1)
}

// MockEntityExtractor is a mock implementation of service.EntityExtractor
type MockEntityExtractor struct {
	mock.Mock
}

func (m *MockEntityExtractor) ExtractEntities(ctx context.Context, text string) ([]service.EntitySpan, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.EntitySpan), args.Error(1)
}

// MockTopicClassifier is a mock implementation of service.TopicClassifier
type MockTopicClassifier struct {
	mock.Mock
}

func (m *MockTopicClassifier) ClassifyTopics(ctx context.Context, text string, labels []string) ([]service.TopicScore, error) {
	args := m.Called(ctx, text, labels)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.TopicScore), args.Error(1)
}

// MockLanguageDetector is a mock implementation of service.LanguageDetector
type MockLanguageDetector struct {
	mock.Mock
}

func (m *MockLanguageDetector) DetectLanguage(ctx context.Context, text string) (string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Error(1)
}

// MockAnnotator is a mock implementation of service.Annotator
type MockAnnotator struct {
	mock.Mock
}

func (m *MockAnnotator) Annotate(ctx context.Context, text string) (*service.Annotation, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Annotation), args.Error(1)
}

type analyzerMocks struct {
	sentiment *MockSentimentAnalyzer
	emotions  *MockEmotionAnalyzer
	entities  *MockEntityExtractor
	topics    *MockTopicClassifier
	language  *MockLanguageDetector
	annotator *MockAnnotator
}

func newTestUsecase() (AnalysisUsecase, *analyzerMocks) {
	mocks := &analyzerMocks{
		sentiment: new(MockSentimentAnalyzer),
		emotions:  new(MockEmotionAnalyzer),
		entities:  new(MockEntityExtractor),
		topics:    new(MockTopicClassifier),
		language:  new(MockLanguageDetector),
		annotator: new(MockAnnotator),
	}
	uc := NewAnalysisUsecase(AnalyzerSet{
		Sentiment: mocks.sentiment,
		Emotions:  mocks.emotions,
		Entities:  mocks.entities,
		Topics:    mocks.topics,
		Language:  mocks.language,
		Annotator: mocks.annotator,
	}, zap.NewNop())
	return uc, mocks
}

const appleText = "Apple is looking at buying a U.K. startup for $1 billion."

func appleAnnotation() *service.Annotation {
	return &service.Annotation{
		SentenceCount: 1,
		Tokens: []service.Token{
			{Text: "Apple"}, {Text: "is"}, {Text: "looking"}, {Text: "at"},
			{Text: "buying"}, {Text: "a"}, {Text: "U.K."}, {Text: "startup"},
			{Text: "for"}, {Text: "$", IsPunct: true}, {Text: "1"},
			{Text: "billion"}, {Text: ".", IsPunct: true},
		},
		NounChunks: []string{"Apple", "a U.K. startup"},
		Entities:   []string{"Apple", "U.K."},
	}
}

func TestAnalyze_AllFlagsFalse(t *testing.T) {
	uc, mocks := newTestUsecase()

	mocks.language.On("DetectLanguage", mock.Anything, appleText).Return("en", nil)
	mocks.annotator.On("Annotate", mock.Anything, appleText).Return(appleAnnotation(), nil)

	result, err := uc.Analyze(context.Background(), &AnalyzeInput{
		Text:      appleText,
		ContentID: "content-1",
	})

	require.NoError(t, err)
	assert.Equal(t, "content-1", result.ContentID)
	assert.Equal(t, "en", result.Language)
	assert.Equal(t, 11, result.WordCount)
	assert.Greater(t, result.ReadabilityScore, 0.0)
	assert.NotEmpty(t, result.Keywords)
	assert.NotEmpty(t, result.Timestamp)

	assert.Nil(t, result.Sentiment)
	assert.Nil(t, result.Emotions)
	assert.Nil(t, result.Entities)
	assert.Nil(t, result.Topics)

	mocks.sentiment.AssertNotCalled(t, "AnalyzeSentiment", mock.Anything, mock.Anything)
	mocks.topics.AssertNotCalled(t, "ClassifyTopics", mock.Anything, mock.Anything, mock.Anything)
}

func TestAnalyze_AllFlagsTrue(t *testing.T) {
	uc, mocks := newTestUsecase()

	mocks.language.On("DetectLanguage", mock.Anything, appleText).Return("en", nil)
	mocks.annotator.On("Annotate", mock.Anything, appleText).Return(appleAnnotation(), nil)
	mocks.sentiment.On("AnalyzeSentiment", mock.Anything, appleText).
		Return(&service.SentimentScore{Label: "POSITIVE", Score: 0.95}, nil)
	mocks.emotions.On("AnalyzeEmotions", mock.Anything, appleText).
		Return([]service.EmotionScore{{Label: "neutral", Score: 0.8}}, nil)
	mocks.entities.On("ExtractEntities", mock.Anything, appleText).
		Return([]service.EntitySpan{
			{Text: "Apple", Type: "ORG", Score: 0.998, Start: 0, End: 5},
			{Text: "U.K.", Type: "LOC", Score: 0.97, Start: 29, End: 33},
		}, nil)
	mocks.topics.On("ClassifyTopics", mock.Anything, appleText, entity.DefaultTopicLabels()).
		Return([]service.TopicScore{{Label: "business", Score: 0.7}, {Label: "technology", Score: 0.2}}, nil)

	result, err := uc.Analyze(context.Background(), &AnalyzeInput{
		Text:      appleText,
		ContentID: "content-2",
		Sentiment: true,
		Emotions:  true,
		Entities:  true,
		Topics:    true,
	})

	require.NoError(t, err)
	assert.Equal(t, 11, result.WordCount)

	require.NotNil(t, result.Sentiment)
	assert.Equal(t, "POSITIVE", result.Sentiment.Label)
	assert.Equal(t, entity.ConfidenceHigh, result.Sentiment.Confidence)

	require.NotEmpty(t, result.Entities)
	assert.Equal(t, "Apple", result.Entities[0].Text)
	assert.Equal(t, "ORG", result.Entities[0].Type)

	require.NotNil(t, result.Emotions)
	require.NotNil(t, result.Topics)
	assert.Equal(t, "business", result.Topics[0].Topic)
}

func TestAnalyze_EmptyTextSucceedsWithZeroMetrics(t *testing.T) {
	uc, mocks := newTestUsecase()

	mocks.language.On("DetectLanguage", mock.Anything, "").
		Return("", errors.New("language cannot be reliably detected"))
	mocks.annotator.On("Annotate", mock.Anything, "").
		Return(&service.Annotation{}, nil)

	result, err := uc.Analyze(context.Background(), &AnalyzeInput{Text: "", ContentID: "c"})

	require.NoError(t, err)
	assert.Equal(t, "unknown", result.Language)
	assert.Equal(t, 0, result.WordCount)
	assert.Equal(t, 0.0, result.ReadabilityScore)
	assert.NotNil(t, result.Keywords)
	assert.Empty(t, result.Keywords)
}

func TestAnalyze_LanguageDetectionFailureIsNotFatal(t *testing.T) {
	uc, mocks := newTestUsecase()

	mocks.language.On("DetectLanguage", mock.Anything, mock.Anything).
		Return("", errors.New("no features in text"))
	mocks.annotator.On("Annotate", mock.Anything, mock.Anything).
		Return(&service.Annotation{}, nil)

	result, err := uc.Analyze(context.Background(), &AnalyzeInput{Text: "!!!", ContentID: "c"})

	require.NoError(t, err)
	assert.Equal(t, "unknown", result.Language)
	assert.Equal(t, 0.0, result.ReadabilityScore)
}

func TestAnalyze_SubStepFailureAbortsRequest(t *testing.T) {
	uc, mocks := newTestUsecase()

	mocks.language.On("DetectLanguage", mock.Anything, mock.Anything).Return("en", nil)
	mocks.sentiment.On("AnalyzeSentiment", mock.Anything, mock.Anything).
		Return(nil, errors.New("model exploded"))

	_, err := uc.Analyze(context.Background(), &AnalyzeInput{
		Text:      appleText,
		ContentID: "c",
		Sentiment: true,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "sentiment analysis")
	assert.Contains(t, err.Error(), "model exploded")
	// No partial results: annotation never ran.
	mocks.annotator.AssertNotCalled(t, "Annotate", mock.Anything, mock.Anything)
}

func TestAnalyze_TruncatesDelegatedText(t *testing.T) {
	uc, mocks := newTestUsecase()

	longText := strings.Repeat("word ", 200) // 1000 chars

	mocks.language.On("DetectLanguage", mock.Anything, longText).Return("en", nil)
	mocks.sentiment.On("AnalyzeSentiment", mock.Anything, mock.MatchedBy(func(text string) bool {
		return utf8.RuneCountInString(text) == 512
	})).Return(&service.SentimentScore{Label: "NEUTRAL", Score: 0.5}, nil)
	// Annotation sees the full text.
	mocks.annotator.On("Annotate", mock.Anything, longText).
		Return(&service.Annotation{}, nil)

	result, err := uc.Analyze(context.Background(), &AnalyzeInput{
		Text:      longText,
		ContentID: "c",
		Sentiment: true,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.ConfidenceLow, result.Sentiment.Confidence)
	mocks.sentiment.AssertExpectations(t)
}

func TestSentiment_ConfidenceBuckets(t *testing.T) {
	cases := []struct {
		score  float64
		bucket entity.ConfidenceLevel
	}{
		{0.95, entity.ConfidenceHigh},
		{0.9, entity.ConfidenceMedium},
		{0.8, entity.ConfidenceMedium},
		{0.7, entity.ConfidenceLow},
		{0.5, entity.ConfidenceLow},
	}

	for _, tc := range cases {
		uc, mocks := newTestUsecase()
		mocks.sentiment.On("AnalyzeSentiment", mock.Anything, mock.Anything).
			Return(&service.SentimentScore{Label: "POSITIVE", Score: tc.score}, nil)

		result, err := uc.Sentiment(context.Background(), "some text")
		require.NoError(t, err)
		assert.Equal(t, tc.bucket, result.Confidence, "score %v", tc.score)
	}
}

func TestEmotions_TopFiveSortedDescending(t *testing.T) {
	uc, mocks := newTestUsecase()

	mocks.emotions.On("AnalyzeEmotions", mock.Anything, mock.Anything).
		Return([]service.EmotionScore{
			{Label: "joy", Score: 0.1},
			{Label: "anger", Score: 0.4},
			{Label: "fear", Score: 0.05},
			{Label: "surprise", Score: 0.2},
			{Label: "sadness", Score: 0.15},
			{Label: "disgust", Score: 0.07},
			{Label: "neutral", Score: 0.03},
		}, nil)

	emotions, err := uc.Emotions(context.Background(), "text")

	require.NoError(t, err)
	require.Len(t, emotions, 5)
	assert.Equal(t, "anger", emotions[0].Emotion)
	for i := 1; i < len(emotions); i++ {
		assert.GreaterOrEqual(t, emotions[i-1].Score, emotions[i].Score)
	}
}

func TestTopics_DefaultLabelsAndTopFive(t *testing.T) {
	uc, mocks := newTestUsecase()

	scores := []service.TopicScore{
		{Label: "technology", Score: 0.5},
		{Label: "business", Score: 0.2},
		{Label: "science", Score: 0.1},
		{Label: "health", Score: 0.08},
		{Label: "entertainment", Score: 0.05},
		{Label: "sports", Score: 0.04},
		{Label: "politics", Score: 0.02},
		{Label: "education", Score: 0.01},
	}
	mocks.topics.On("ClassifyTopics", mock.Anything, mock.Anything, entity.DefaultTopicLabels()).
		Return(scores, nil)

	topics, err := uc.Topics(context.Background(), "text", nil)

	require.NoError(t, err)
	require.Len(t, topics, 5)
	assert.Equal(t, "technology", topics[0].Topic)
	mocks.topics.AssertExpectations(t)
}

func TestTopics_CustomLabelsPassedThrough(t *testing.T) {
	uc, mocks := newTestUsecase()

	custom := []string{"golang", "rust"}
	mocks.topics.On("ClassifyTopics", mock.Anything, mock.Anything, custom).
		Return([]service.TopicScore{{Label: "golang", Score: 0.9}}, nil)

	topics, err := uc.Topics(context.Background(), "text", custom)

	require.NoError(t, err)
	require.Len(t, topics, 1)
	assert.Equal(t, "golang", topics[0].Topic)
}

func TestReadability_ScoreAndLevel(t *testing.T) {
	uc, mocks := newTestUsecase()

	mocks.annotator.On("Annotate", mock.Anything, mock.Anything).
		Return(&service.Annotation{
			SentenceCount: 1,
			Tokens: []service.Token{
				{Text: "I"}, {Text: "am"}, {Text: "ok"},
			},
		}, nil)

	report, err := uc.Readability(context.Background(), "I am ok")

	require.NoError(t, err)
	assert.InDelta(t, 62.79, report.Score, 0.001)
	assert.Equal(t, "Standard", report.Level)
}

func TestKeywords_UsesRequestedCount(t *testing.T) {
	uc, mocks := newTestUsecase()

	mocks.annotator.On("Annotate", mock.Anything, mock.Anything).
		Return(&service.Annotation{NounChunks: []string{"a", "b", "c"}}, nil)

	keywords, err := uc.Keywords(context.Background(), "text", 2)

	require.NoError(t, err)
	assert.Len(t, keywords, 2)
}

func TestDetectLanguage_PropagatesError(t *testing.T) {
	uc, mocks := newTestUsecase()

	mocks.language.On("DetectLanguage", mock.Anything, mock.Anything).
		Return("", errors.New("undetermined"))

	_, err := uc.DetectLanguage(context.Background(), "12345")
	assert.Error(t, err)
}
