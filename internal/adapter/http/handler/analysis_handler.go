package handler

import (
	"net/http"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/1234-ad/intelligent-content-orchestrator/internal/usecase"
)

// AnalysisHandler handles content analysis requests
type AnalysisHandler struct {
	analysisUsecase usecase.AnalysisUsecase
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(analysisUsecase usecase.AnalysisUsecase) *AnalysisHandler {
	return &AnalysisHandler{
		analysisUsecase: analysisUsecase,
	}
}

// AnalyzeRequest is the body of the comprehensive analysis endpoint. The four
// analysis flags are optional and default to true when omitted, so a bare
// {"text": ...} request runs everything. Text is a pointer so that an absent
// field is rejected while an explicit empty string is accepted (empty text
// flows through and yields the zero metrics).
type AnalyzeRequest struct {
	Text             *string  `json:"text" binding:"required"`
	ContentID        string   `json:"content_id"`
	AnalyzeSentiment *bool    `json:"analyze_sentiment"`
	AnalyzeEmotions  *bool    `json:"analyze_emotions"`
	AnalyzeEntities  *bool    `json:"analyze_entities"`
	AnalyzeTopics    *bool    `json:"analyze_topics"`
	CustomTopics     []string `json:"custom_topics"`
}

// TextRequest is the body shared by the single-purpose analysis endpoints
type TextRequest struct {
	Text string `json:"text" binding:"required"`
}

// TopicsRequest carries text plus optional candidate labels
type TopicsRequest struct {
	Text   string   `json:"text" binding:"required"`
	Labels []string `json:"labels"`
}

// KeywordsRequest carries text plus an optional result count. TopN is a
// pointer so that an absent count defaults while an explicit zero returns an
// empty list.
type KeywordsRequest struct {
	Text string `json:"text" binding:"required"`
	TopN *int   `json:"top_n"`
}

// Analyze handles POST /analyze.
// Unlike the single-purpose endpoints, the result is returned bare rather
// than wrapped in the response envelope.
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleInvalidRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &usecase.AnalyzeInput{
		Text:         *req.Text,
		ContentID:    req.ContentID,
		Sentiment:    flagOrDefault(req.AnalyzeSentiment, true),
		Emotions:     flagOrDefault(req.AnalyzeEmotions, true),
		Entities:     flagOrDefault(req.AnalyzeEntities, true),
		Topics:       flagOrDefault(req.AnalyzeTopics, true),
		CustomTopics: req.CustomTopics,
	}

	result, err := h.analysisUsecase.Analyze(c.Request.Context(), input)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Sentiment handles POST /sentiment
func (h *AnalysisHandler) Sentiment(c *gin.Context) {
	var req TextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleInvalidRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.analysisUsecase.Sentiment(c.Request.Context(), req.Text)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, result)
}

// Entities handles POST /entities
func (h *AnalysisHandler) Entities(c *gin.Context) {
	var req TextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleInvalidRequest(c, "Invalid request body: "+err.Error())
		return
	}

	entities, err := h.analysisUsecase.Entities(c.Request.Context(), req.Text)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, entities)
}

// Topics handles POST /topics
func (h *AnalysisHandler) Topics(c *gin.Context) {
	var req TopicsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleInvalidRequest(c, "Invalid request body: "+err.Error())
		return
	}

	topics, err := h.analysisUsecase.Topics(c.Request.Context(), req.Text, req.Labels)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, topics)
}

// Keywords handles POST /keywords
func (h *AnalysisHandler) Keywords(c *gin.Context) {
	var req KeywordsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleInvalidRequest(c, "Invalid request body: "+err.Error())
		return
	}

	keywords, err := h.analysisUsecase.Keywords(c.Request.Context(), req.Text, clampKeywordCount(req.TopN))
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, keywords)
}

// Readability handles POST /readability
func (h *AnalysisHandler) Readability(c *gin.Context) {
	var req TextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleInvalidRequest(c, "Invalid request body: "+err.Error())
		return
	}

	report, err := h.analysisUsecase.Readability(c.Request.Context(), req.Text)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, report)
}

// DetectLanguage handles POST /detect-language.
// Detection failures surface as errors here; only the comprehensive endpoint
// substitutes the "unknown" sentinel.
func (h *AnalysisHandler) DetectLanguage(c *gin.Context) {
	var req TextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleInvalidRequest(c, "Invalid request body: "+err.Error())
		return
	}

	language, err := h.analysisUsecase.DetectLanguage(c.Request.Context(), req.Text)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{
		"language":    language,
		"text_length": utf8.RuneCountInString(req.Text),
	})
}
