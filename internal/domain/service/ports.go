package service

import "context"

// SentimentScore is the raw output of a sentiment classification backend
type SentimentScore struct {
	Label string
	Score float64
}

// EmotionScore is one emotion label with its score
type EmotionScore struct {
	Label string
	Score float64
}

// EntitySpan is a named-entity span with character offsets
type EntitySpan struct {
	Text  string
	Type  string
	Score float64
	Start int
	End   int
}

// TopicScore is one candidate label with its zero-shot classification score
type TopicScore struct {
	Label string
	Score float64
}

// SentimentAnalyzer classifies the overall sentiment of a text
type SentimentAnalyzer interface {
	AnalyzeSentiment(ctx context.Context, text string) (*SentimentScore, error)
}

// EmotionAnalyzer scores a text against a fixed emotion label set
type EmotionAnalyzer interface {
	AnalyzeEmotions(ctx context.Context, text string) ([]EmotionScore, error)
}

// EntityExtractor finds named-entity spans in a text
type EntityExtractor interface {
	ExtractEntities(ctx context.Context, text string) ([]EntitySpan, error)
}

// TopicClassifier scores a text against arbitrary candidate labels
// (zero-shot). Implementations must return results ordered by descending
// score.
type TopicClassifier interface {
	ClassifyTopics(ctx context.Context, text string, labels []string) ([]TopicScore, error)
}

// LanguageDetector identifies the language of a text, returning a lowercase
// ISO 639-1 code. It returns an error when the language cannot be determined;
// callers decide whether that is fatal.
type LanguageDetector interface {
	DetectLanguage(ctx context.Context, text string) (string, error)
}

// Token is a single token from linguistic annotation. Punctuation tokens are
// flagged so that text metrics can skip them.
type Token struct {
	Text    string
	IsPunct bool
}

// Annotation holds the linguistic annotations text metrics are computed from
type Annotation struct {
	SentenceCount int
	Tokens        []Token
	NounChunks    []string
	Entities      []string
}

// Annotator produces linguistic annotations (sentence boundaries, tokens,
// noun-phrase chunks, entity spans) for a text
type Annotator interface {
	Annotate(ctx context.Context, text string) (*Annotation, error)
}
