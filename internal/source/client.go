// Package source fetches the ranked node list from the external feed.
package source

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Node represents a single record as received from the feed. The payload is
// untrusted; city and country are optional locale-code to localized-name maps.
type Node struct {
	PublicKey string            `json:"publicKey"`
	Alias     string            `json:"alias"`
	Channels  int64             `json:"channels"`
	Capacity  int64             `json:"capacity"`
	FirstSeen int64             `json:"firstSeen"`
	UpdatedAt int64             `json:"updatedAt"`
	City      map[string]string `json:"city,omitempty"`
	Country   map[string]string `json:"country,omitempty"`
}

// Client performs the single GET against the feed URL. It does not retry;
// the periodic scheduler naturally retries on its next tick.
type Client struct {
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a feed client with the given request timeout. The
// timeout bounds the whole request so a hung feed cannot stall the caller
// indefinitely.
func NewClient(timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Fetch retrieves the node list from url. It fails with *TransportError,
// *StatusError, or *DecodeError.
func (c *Client) Fetch(ctx context.Context, url string) ([]Node, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}

	c.logger.Debug("fetching node feed", zap.String("url", url))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var nodes []Node
	if err := json.NewDecoder(resp.Body).Decode(&nodes); err != nil {
		return nil, &DecodeError{Err: err}
	}

	c.logger.Debug("fetched node feed", zap.Int("count", len(nodes)))
	return nodes, nil
}

// Error bodies are only kept for diagnostics; cap them so a misbehaving feed
// cannot balloon logs.
const maxErrorBodyBytes = 64 * 1024
