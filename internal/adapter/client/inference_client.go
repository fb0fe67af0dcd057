package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Retry policy for the remote inference sidecar. Only transport errors and
// 5xx responses are retried.
const (
	maxRetries     = 3
	initialBackoff = 500 * time.Millisecond
)

// SentimentPayload is the sidecar's sentiment response
type SentimentPayload struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// EmotionPayload is one emotion entry in the sidecar's response
type EmotionPayload struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// EntityPayload is one entity span in the sidecar's response
type EntityPayload struct {
	Text  string  `json:"text"`
	Type  string  `json:"type"`
	Score float64 `json:"score"`
	Start int     `json:"start"`
	End   int     `json:"end"`
}

// TopicPayload is one scored label in the sidecar's response
type TopicPayload struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// HealthPayload is the sidecar's health response
type HealthPayload struct {
	Status       string `json:"status"`
	ModelsLoaded bool   `json:"models_loaded"`
}

type textRequest struct {
	Text string `json:"text"`
}

type topicsRequest struct {
	Text   string   `json:"text"`
	Labels []string `json:"labels"`
}

// InferenceClient is an HTTP client for a remote inference sidecar exposing
// the classification capabilities the service delegates to
type InferenceClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewInferenceClient creates a new inference sidecar client
func NewInferenceClient(baseURL string, timeout time.Duration) *InferenceClient {
	return &InferenceClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Sentiment requests a sentiment classification
func (c *InferenceClient) Sentiment(ctx context.Context, text string) (*SentimentPayload, error) {
	var result SentimentPayload
	if err := c.postJSON(ctx, "/sentiment", textRequest{Text: text}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Emotions requests a ranked emotion classification
func (c *InferenceClient) Emotions(ctx context.Context, text string) ([]EmotionPayload, error) {
	var result []EmotionPayload
	if err := c.postJSON(ctx, "/emotions", textRequest{Text: text}, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Entities requests named-entity spans
func (c *InferenceClient) Entities(ctx context.Context, text string) ([]EntityPayload, error) {
	var result []EntityPayload
	if err := c.postJSON(ctx, "/entities", textRequest{Text: text}, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Topics requests a zero-shot classification against candidate labels
func (c *InferenceClient) Topics(ctx context.Context, text string, labels []string) ([]TopicPayload, error) {
	var result []TopicPayload
	if err := c.postJSON(ctx, "/topics", topicsRequest{Text: text, Labels: labels}, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Health checks the sidecar health
func (c *InferenceClient) Health(ctx context.Context) (*HealthPayload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("inference service returned status %d", resp.StatusCode)
	}

	var result HealthPayload
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &result, nil
}

func (c *InferenceClient) postJSON(ctx context.Context, path string, in, out interface{}) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.doWithRetry(ctx, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("inference service returned status %d", resp.StatusCode)
		}
		return fmt.Errorf("inference service returned status %d: %s", resp.StatusCode, string(respBody))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *InferenceClient) doWithRetry(ctx context.Context, path string, body []byte) (*http.Response, error) {
	var resp *http.Response
	var err error
	backoff := initialBackoff

	for attempt := 0; attempt < maxRetries; attempt++ {
		req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
		if reqErr != nil {
			return nil, fmt.Errorf("failed to create request: %w", reqErr)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err = c.httpClient.Do(req)
		if err == nil && resp.StatusCode < http.StatusInternalServerError {
			return resp, nil
		}
		if resp != nil {
			resp.Body.Close()
		}
		if ctx.Err() != nil {
			break
		}

		select {
		case <-time.After(backoff):
			backoff *= 2
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if err != nil {
		return nil, fmt.Errorf("request failed after retries: %w", err)
	}
	return nil, fmt.Errorf("inference service returned status %d after retries", resp.StatusCode)
}
