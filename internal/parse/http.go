package parse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPParser is a client for a dependency-parser service (spaCy-server
// style): POST {"text": ..., "model": ...} to the parse endpoint, receive
// one JSON object per token.
type HTTPParser struct {
	endpoint   string
	model      string
	httpClient *http.Client
	limiter    Waiter
}

// Waiter blocks until a call to the given URL is allowed to proceed.
// Satisfied by worker.Limiter.
type Waiter interface {
	Wait(ctx context.Context, rawURL string) error
}

type parseRequest struct {
	Text  string `json:"text"`
	Model string `json:"model,omitempty"`
}

type parseResponse struct {
	Tokens []Token `json:"tokens"`
}

type parseError struct {
	Error string `json:"error"`
}

// NewHTTPParser creates a parser client for the given endpoint. The model
// name is passed through to the service (e.g. "pt_core_news_lg"). The
// limiter may be nil.
func NewHTTPParser(endpoint, model string, timeout time.Duration, limiter Waiter) *HTTPParser {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &HTTPParser{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		model:    model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: limiter,
	}
}

// Parse sends the sentence to the parser service and returns its tokens
func (p *HTTPParser) Parse(ctx context.Context, sentence string) ([]Token, error) {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx, p.endpoint); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	payload, err := json.Marshal(parseRequest{Text: sentence, Model: p.model})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("parser request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr parseError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("parser service: %s (status %d)", apiErr.Error, resp.StatusCode)
		}
		return nil, fmt.Errorf("parser service: status %d", resp.StatusCode)
	}

	var parsed parseResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return parsed.Tokens, nil
}

// IsAvailable checks that the parser service responds
func (p *HTTPParser) IsAvailable(ctx context.Context) bool {
	_, err := p.Parse(ctx, "ok")
	return err == nil
}
