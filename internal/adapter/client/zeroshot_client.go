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

// ClassifyRequest represents a request to the zero-shot inference service
type ClassifyRequest struct {
	Text            string   `json:"text"`
	CandidateLabels []string `json:"candidate_labels"`
	RequestID       string   `json:"request_id,omitempty"`
}

// ClassifyResponse represents the response from the inference service.
// Labels are ranked by score, descending; the two slices are parallel.
type ClassifyResponse struct {
	Success      bool      `json:"success"`
	Labels       []string  `json:"labels"`
	Scores       []float64 `json:"scores"`
	ModelVersion string    `json:"model_version"`
	RequestID    string    `json:"request_id,omitempty"`
}

// HealthResponse represents the inference service health check response
type HealthResponse struct {
	Status       string `json:"status"`
	ModelLoaded  bool   `json:"model_loaded"`
	ModelVersion string `json:"model_version"`
}

// ZeroShotClient is an HTTP client for the zero-shot inference service
type ZeroShotClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewZeroShotClient creates a new inference service client
func NewZeroShotClient(baseURL string, timeout time.Duration) *ZeroShotClient {
	return &ZeroShotClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Classify sends text for zero-shot classification against candidateLabels
func (c *ZeroShotClient) Classify(ctx context.Context, text string, candidateLabels []string, requestID string) (*ClassifyResponse, error) {
	reqBody := ClassifyRequest{
		Text:            text,
		CandidateLabels: candidateLabels,
		RequestID:       requestID,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/classify", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("inference service returned status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("inference service returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var result ClassifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Labels) == 0 || len(result.Labels) != len(result.Scores) {
		return nil, fmt.Errorf("inference service returned malformed label distribution: %d labels, %d scores",
			len(result.Labels), len(result.Scores))
	}

	return &result, nil
}

// Health checks the inference service health
func (c *ZeroShotClient) Health(ctx context.Context) (*HealthResponse, error) {
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

	var result HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}

// Ready checks if the inference service has its model loaded
func (c *ZeroShotClient) Ready(ctx context.Context) error {
	health, err := c.Health(ctx)
	if err != nil {
		return err
	}
	if !health.ModelLoaded {
		return fmt.Errorf("inference service has no model loaded: status %q", health.Status)
	}
	return nil
}
