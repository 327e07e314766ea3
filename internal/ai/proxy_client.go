package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"termfolio/internal/logging"

	"github.com/tidwall/gjson"
)

// DefaultProxyTimeout bounds a proxied call when the context has no deadline.
const DefaultProxyTimeout = 60 * time.Second

// ProxyClient sends prompts through the folio proxy endpoint
// (POST {prompt, history} and receive the API's JSON verbatim).
type ProxyClient struct {
	endpoint   string
	httpClient *http.Client
}

// NewProxyClient creates a client for endpoint, e.g.
// "http://localhost:8080/api/gemini".
func NewProxyClient(endpoint string, timeout time.Duration) *ProxyClient {
	if timeout <= 0 {
		timeout = DefaultProxyTimeout
	}
	return &ProxyClient{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type proxyRequest struct {
	Prompt  string    `json:"prompt"`
	History []Message `json:"history"`
	System  string    `json:"system,omitempty"`
}

// Generate implements Client.
func (c *ProxyClient) Generate(ctx context.Context, req Request) (string, error) {
	history := req.History
	if history == nil {
		history = []Message{}
	}
	payload, err := json.Marshal(proxyRequest{Prompt: req.Prompt, History: history, System: req.System})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		logging.AIError("proxy request failed: %v", err)
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := gjson.GetBytes(body, "error").String()
		if msg == "" {
			msg = strings.TrimSpace(string(body))
		}
		logging.AIError("proxy returned %d: %s", resp.StatusCode, msg)
		return "", &UpstreamError{Status: resp.StatusCode, Body: msg}
	}

	text := ReplyText(body)
	if text == "" {
		return "", ErrEmptyReply
	}
	logging.AIDebug("proxy reply in %v (%d chars)", time.Since(start), len(text))
	return text, nil
}

// ReplyText extracts the first candidate's text from a generateContent
// response body, joining its parts.
func ReplyText(body []byte) string {
	var sb strings.Builder
	for _, part := range gjson.GetBytes(body, "candidates.0.content.parts.#.text").Array() {
		sb.WriteString(part.String())
	}
	return strings.TrimSpace(sb.String())
}
