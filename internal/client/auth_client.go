package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"change-ops-api/internal/metrics"
)

// AuthClient handles token validation against the auth service
type AuthClient struct {
	baseURL    string
	httpClient *http.Client
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// TokenValidationRequest represents the request to the auth service
type TokenValidationRequest struct {
	Token string `json:"token"`
}

// TokenValidationResponse represents the response from the auth service
type TokenValidationResponse struct {
	Valid   bool   `json:"valid"`
	UserID  string `json:"userId"`
	Message string `json:"message,omitempty"`
}

// NewAuthClient creates a new AuthClient. m may be nil.
func NewAuthClient(baseURL string, timeout time.Duration, m *metrics.Metrics, logger *zap.Logger) *AuthClient {
	return &AuthClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: m,
		logger:  logger,
	}
}

// ValidateToken validates a token via the auth service
func (c *AuthClient) ValidateToken(ctx context.Context, tokenStr string) (uuid.UUID, error) {
	url := fmt.Sprintf("%s/api/auth/validate", c.baseURL)

	reqBody := TokenValidationRequest{Token: tokenStr}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(bodyBytes))
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recordCall(url, 0, start, err)
		c.logger.Error("Failed to validate token", zap.Error(err))
		return uuid.Nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()
	c.recordCall(url, resp.StatusCode, start, nil)

	if resp.StatusCode != http.StatusOK {
		return uuid.Nil, fmt.Errorf("token validation failed with status: %d", resp.StatusCode)
	}

	var tokenResp TokenValidationResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return uuid.Nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if !tokenResp.Valid {
		return uuid.Nil, fmt.Errorf("invalid token: %s", tokenResp.Message)
	}

	userID, err := uuid.Parse(tokenResp.UserID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid user ID format: %w", err)
	}

	return userID, nil
}

func (c *AuthClient) recordCall(endpoint string, status int, start time.Time, err error) {
	if c.metrics == nil {
		return
	}
	c.metrics.RecordExternalAPICall(endpoint, "POST", status, time.Since(start), err)
}
