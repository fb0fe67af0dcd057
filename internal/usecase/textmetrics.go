package usecase

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/1234-ad/intelligent-content-orchestrator/internal/domain/service"
)

// DefaultKeywordCount is the number of keywords returned when the caller
// does not ask for a specific count.
const DefaultKeywordCount = 10

// MaxKeywordCount caps caller-supplied keyword counts
const MaxKeywordCount = 100

// WordCount counts whitespace-separated fields, matching the wire contract
// of word_count (it is not the readability word count, which is token based).
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// ReadabilityScore computes a Flesch-Reading-Ease-style score in [0,100]
// from linguistic annotations. Syllables are approximated by the character
// length of each non-punctuation token; this is an intentional simplification
// the score arithmetic depends on, not a bug.
func ReadabilityScore(ann *service.Annotation) float64 {
	words := 0
	chars := 0
	for _, tok := range ann.Tokens {
		if tok.IsPunct {
			continue
		}
		words++
		chars += utf8.RuneCountInString(tok.Text)
	}

	if ann.SentenceCount == 0 || words == 0 {
		return 0.0
	}

	avgSentenceLength := float64(words) / float64(ann.SentenceCount)
	avgSyllablesPerWord := float64(chars) / float64(words)

	score := 206.835 - 1.015*avgSentenceLength - 84.6*avgSyllablesPerWord
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// ReadabilityLevel maps a readability score to its qualitative label.
// Boundary values belong to the higher bucket: exactly 90 is "Very Easy".
func ReadabilityLevel(score float64) string {
	switch {
	case score >= 90:
		return "Very Easy"
	case score >= 80:
		return "Easy"
	case score >= 70:
		return "Fairly Easy"
	case score >= 60:
		return "Standard"
	case score >= 50:
		return "Fairly Difficult"
	case score >= 30:
		return "Difficult"
	default:
		return "Very Difficult"
	}
}

// TopKeywords ranks lowercased noun chunks and entity spans by frequency and
// returns at most n distinct candidates. Ties keep first-encountered order
// (the sort is stable over an insertion-ordered frequency table). A count of
// zero or less yields an empty list; defaulting is the caller's concern.
func TopKeywords(ann *service.Annotation, n int) []string {
	if n <= 0 {
		return []string{}
	}
	if n > MaxKeywordCount {
		n = MaxKeywordCount
	}

	counts := make(map[string]int)
	order := make([]string, 0, len(ann.NounChunks)+len(ann.Entities))

	add := func(candidate string) {
		candidate = strings.ToLower(candidate)
		if candidate == "" {
			return
		}
		if counts[candidate] == 0 {
			order = append(order, candidate)
		}
		counts[candidate]++
	}

	for _, chunk := range ann.NounChunks {
		add(chunk)
	}
	for _, ent := range ann.Entities {
		add(ent)
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if n > len(order) {
		n = len(order)
	}
	keywords := make([]string, n)
	copy(keywords, order[:n])
	return keywords
}
