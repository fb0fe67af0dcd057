// Package langid implements language identification with lingua. The detector
// is built once at startup; building it loads language models and is too
// expensive to do per request.
package langid

import (
	"context"
	"errors"
	"strings"

	"github.com/pemistahl/lingua-go"

	"github.com/1234-ad/intelligent-content-orchestrator/internal/domain/service"
)

// ErrUndetermined is returned when no language can be identified, e.g. for
// empty or symbol-only input. Callers map it to the "unknown" sentinel.
var ErrUndetermined = errors.New("language could not be determined")

// Detector implements service.LanguageDetector
type Detector struct {
	detector lingua.LanguageDetector
}

var _ service.LanguageDetector = (*Detector)(nil)

// NewDetector builds a detector over all supported languages
func NewDetector() *Detector {
	return &Detector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromAllLanguages().
			Build(),
	}
}

// DetectLanguage returns the lowercase ISO 639-1 code of the detected language
func (d *Detector) DetectLanguage(ctx context.Context, text string) (string, error) {
	language, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return "", ErrUndetermined
	}
	return strings.ToLower(language.IsoCode639_1().String()), nil
}
