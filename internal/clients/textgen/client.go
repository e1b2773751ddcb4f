// Package textgen is the client for the external text-generation service
// used to phrase chat replies.
package textgen

//go:generate mockgen -destination=mock/mock_client.go -package=textgenmock github.com/openrune/botcore/internal/clients/textgen Client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/openrune/botcore/internal/config"
	"github.com/openrune/botcore/internal/errors"
)

// Request carries the conversational context for one reply
type Request struct {
	PromptContext string  `json:"prompt_context"`
	MaxTokens     int     `json:"max_tokens"`
	Temperature   float64 `json:"temperature"`
}

// Response holds the generated text. Text may be empty when the service
// produced nothing usable; callers treat that as staying silent.
type Response struct {
	Text string `json:"text"`
}

// Client defines the interface for text generation
type Client interface {
	// Generate produces a short reply for the given context. A nil error
	// with empty text means the service declined to answer.
	Generate(ctx context.Context, req *Request) (*Response, error)
}

// HTTPClient talks to a text-generation endpoint over HTTP
type HTTPClient struct {
	endpoint    string
	maxTokens   int
	temperature float64
	httpClient  *http.Client
}

// NewHTTPClient creates a client for the configured endpoint
func NewHTTPClient(cfg config.TextGenConfig) (*HTTPClient, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, errors.InvalidArgument("textgen endpoint is required")
	}
	if cfg.TimeoutMS <= 0 {
		return nil, errors.InvalidArgument("textgen timeout must be positive")
	}

	return &HTTPClient{
		endpoint:    cfg.Endpoint,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
	}, nil
}

// Generate posts the request and decodes the reply
func (c *HTTPClient) Generate(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, errors.InvalidArgument("request is required")
	}

	body := *req
	if body.MaxTokens == 0 {
		body.MaxTokens = c.maxTokens
	}
	if body.Temperature == 0 {
		body.Temperature = c.temperature
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.Unavailablef("textgen request failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, errors.Unavailablef("textgen returned status %d", resp.StatusCode).
			WithMeta("status", fmt.Sprintf("%d", resp.StatusCode))
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, errors.Wrap(err, "failed to decode response")
	}

	return &out, nil
}
