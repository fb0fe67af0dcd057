// Package nlp provides the linguistic-annotation adapter backed by prose:
// sentence segmentation, tokenization with POS tags, named-entity spans, and
// noun-phrase chunks derived from POS runs.
package nlp

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	prose "github.com/jdkato/prose/v2"

	"github.com/1234-ad/intelligent-content-orchestrator/internal/domain/service"
)

// ProseAnnotator implements service.Annotator
type ProseAnnotator struct{}

var _ service.Annotator = (*ProseAnnotator)(nil)

// NewProseAnnotator creates a new annotator
func NewProseAnnotator() *ProseAnnotator {
	return &ProseAnnotator{}
}

// Annotate runs the full prose pipeline over the text. Blank input yields an
// empty annotation rather than an error, so readability degrades to 0.0.
func (a *ProseAnnotator) Annotate(ctx context.Context, text string) (*service.Annotation, error) {
	if strings.TrimSpace(text) == "" {
		return &service.Annotation{}, nil
	}

	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, fmt.Errorf("prose annotation: %w", err)
	}

	docTokens := doc.Tokens()
	annotation := &service.Annotation{
		SentenceCount: len(doc.Sentences()),
		Tokens:        make([]service.Token, 0, len(docTokens)),
		NounChunks:    nounChunks(docTokens),
	}
	for _, tok := range docTokens {
		annotation.Tokens = append(annotation.Tokens, service.Token{
			Text:    tok.Text,
			IsPunct: isPunct(tok.Text),
		})
	}
	for _, ent := range doc.Entities() {
		annotation.Entities = append(annotation.Entities, ent.Text)
	}

	return annotation, nil
}

// isPunct reports whether a token consists entirely of punctuation or symbol
// runes ("$" counts, "U.K." does not).
func isPunct(text string) bool {
	if text == "" {
		return true
	}
	for _, r := range text {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return false
		}
	}
	return true
}

// Penn Treebank tag sets for the chunk scan
var (
	nounTags = map[string]bool{
		"NN": true, "NNS": true, "NNP": true, "NNPS": true,
	}
	modifierTags = map[string]bool{
		"DT": true, "PRP$": true, "JJ": true, "JJR": true, "JJS": true,
	}
)

// nounChunks extracts base noun phrases matching (DT|PRP$)? (JJ)* (NN)+ over
// the POS-tagged token stream.
func nounChunks(toks []prose.Token) []string {
	var chunks []string
	var pending []string
	inNoun := false

	flush := func() {
		if inNoun && len(pending) > 0 {
			chunks = append(chunks, strings.Join(pending, " "))
		}
		pending = pending[:0]
		inNoun = false
	}

	for _, tok := range toks {
		switch {
		case nounTags[tok.Tag]:
			pending = append(pending, tok.Text)
			inNoun = true
		case modifierTags[tok.Tag] && !inNoun:
			pending = append(pending, tok.Text)
		default:
			flush()
		}
	}
	flush()

	return chunks
}
