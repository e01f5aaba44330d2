// Package chainRegistry resolves bridge hashes against a chain's public
// REST endpoint (ibc-transfer denom trace query).
package chainRegistry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

type denomTraceResponse struct {
	DenomTrace struct {
		Path      string `json:"path"`
		BaseDenom string `json:"base_denom"`
	} `json:"denom_trace"`
}

func NewClient(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: baseURL,
		logger:  logger,
	}
}

// BaseDenom fetches the canonical base denomination for an IBC trace hash.
func (c *Client) BaseDenom(ctx context.Context, hash string) (string, error) {
	url := fmt.Sprintf("%s/ibc/apps/transfer/v1/denom_traces/%s", c.baseURL, hash)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("accept", "application/json")

	c.logger.Sugar().Debugw("Making denom trace request",
		zap.String("url", url),
		zap.String("hash", hash),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("denom trace request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var trace denomTraceResponse
	if err := json.Unmarshal(body, &trace); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return trace.DenomTrace.BaseDenom, nil
}
