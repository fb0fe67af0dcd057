package entity

// ConfidenceLevel buckets a classifier score into a coarse label
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

// ConfidenceBucket maps a classifier score to its confidence level.
// Thresholds are strict: >0.9 is high, >0.7 is medium, everything else low.
func ConfidenceBucket(score float64) ConfidenceLevel {
	switch {
	case score > 0.9:
		return ConfidenceHigh
	case score > 0.7:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// DefaultTopicLabels returns the candidate label set used for topic
// classification when the request does not supply custom labels.
func DefaultTopicLabels() []string {
	return []string{
		"technology", "business", "science", "health",
		"entertainment", "sports", "politics", "education",
	}
}

// SentimentResult is the sentiment of a piece of text
type SentimentResult struct {
	Label      string          `json:"label"`
	Score      float64         `json:"score"`
	Confidence ConfidenceLevel `json:"confidence"`
}

// EmotionResult is a single detected emotion with its score
type EmotionResult struct {
	Emotion string  `json:"emotion"`
	Score   float64 `json:"score"`
}

// Entity is a named-entity span with character offsets into the analyzed text
type Entity struct {
	Text  string  `json:"text"`
	Type  string  `json:"type"`
	Score float64 `json:"score"`
	Start int     `json:"start"`
	End   int     `json:"end"`
}

// TopicResult is a candidate topic label with its classification score
type TopicResult struct {
	Topic string  `json:"topic"`
	Score float64 `json:"score"`
}

// ReadabilityReport pairs a readability score with its qualitative level
type ReadabilityReport struct {
	Score float64 `json:"score"`
	Level string  `json:"level"`
}

// AnalysisResult aggregates every analysis performed on one piece of content.
// The four optional fields deliberately omit `omitempty`: an analysis that was
// not requested serializes as null, never disappears from the payload.
type AnalysisResult struct {
	ContentID        string           `json:"content_id"`
	Sentiment        *SentimentResult `json:"sentiment"`
	Emotions         []EmotionResult  `json:"emotions"`
	Entities         []Entity         `json:"entities"`
	Topics           []TopicResult    `json:"topics"`
	Language         string           `json:"language"`
	WordCount        int              `json:"word_count"`
	ReadabilityScore float64          `json:"readability_score"`
	Keywords         []string         `json:"keywords"`
	ProcessingTime   float64          `json:"processing_time"`
	Timestamp        string           `json:"timestamp"`
}
