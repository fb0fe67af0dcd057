package handler

import (
	"github.com/1234-ad/intelligent-content-orchestrator/internal/usecase"
)

// flagOrDefault resolves an optional request flag. Absent flags default to
// true: the comprehensive endpoint runs every analysis unless a caller opts
// out explicitly.
func flagOrDefault(flag *bool, def bool) bool {
	if flag == nil {
		return def
	}
	return *flag
}

// clampKeywordCount resolves a caller-supplied keyword count. Absent and
// negative counts fall back to the default; an explicit zero is honored and
// yields an empty list.
func clampKeywordCount(n *int) int {
	if n == nil || *n < 0 {
		return usecase.DefaultKeywordCount
	}
	if *n > usecase.MaxKeywordCount {
		return usecase.MaxKeywordCount
	}
	return *n
}
