// Package proxy implements the /api/gemini endpoint: it forwards a prompt and
// its conversation history to the generateContent API and returns the API's
// JSON unchanged, keeping the API key on the server.
package proxy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"termfolio/internal/logging"
	"termfolio/internal/metrics"

	"github.com/tidwall/gjson"
)

// Defaults for Config.
const (
	DefaultUpstreamURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel       = "gemini-2.5-flash"
	DefaultTimeout     = 60 * time.Second

	maxBodyBytes = 1 << 20
)

// Config configures the handler.
type Config struct {
	APIKey        string
	UpstreamURL   string
	Model         string
	AllowedOrigin string // Access-Control-Allow-Origin, default "*"
	Timeout       time.Duration
}

// Handler serves the proxy endpoint.
type Handler struct {
	apiKey     string
	baseURL    string
	model      string
	origin     string
	httpClient *http.Client
}

// New creates a handler from cfg.
func New(cfg Config) *Handler {
	h := &Handler{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.UpstreamURL, "/"),
		model:   cfg.Model,
		origin:  cfg.AllowedOrigin,
	}
	if h.baseURL == "" {
		h.baseURL = DefaultUpstreamURL
	}
	if h.model == "" {
		h.model = DefaultModel
	}
	if h.origin == "" {
		h.origin = "*"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	h.httpClient = &http.Client{Timeout: timeout}
	return h
}

type errorBody struct {
	Error  string  `json:"error"`
	Status int     `json:"status,omitempty"`
	Body   *string `json:"body,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Set("Access-Control-Allow-Origin", h.origin)
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if h.apiKey == "" {
		logging.ProxyError("request rejected: API key not configured")
		writeError(w, http.StatusInternalServerError, "API key not configured")
		return
	}

	in, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		in = nil
	}
	prompt := gjson.GetBytes(in, "prompt")
	if prompt.Type != gjson.String || prompt.Str == "" {
		writeError(w, http.StatusBadRequest, "Missing 'prompt' string in body")
		return
	}

	payload, err := upstreamPayload(in, prompt.Str)
	if err != nil {
		logging.ProxyError("failed to build upstream request: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to connect to Gemini API")
		return
	}

	// The key travels in a header so transport errors, which quote the URL, never carry it.
	url := fmt.Sprintf("%s/models/%s:generateContent", h.baseURL, h.model)
	req, err := http.NewRequestWithContext(r.Context(), http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to connect to Gemini API")
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", h.apiKey)

	start := time.Now()
	resp, err := h.httpClient.Do(req)
	if err != nil {
		metrics.RecordUpstreamCall(0, time.Since(start))
		logging.ProxyError("upstream request failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to connect to Gemini API")
		return
	}
	defer resp.Body.Close()
	metrics.RecordUpstreamCall(resp.StatusCode, time.Since(start))

	body, err := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text := string(body)
		logging.ProxyWarn("upstream returned %d", resp.StatusCode)
		writeJSON(w, resp.StatusCode, errorBody{Error: "Upstream error", Status: resp.StatusCode, Body: &text})
		return
	}
	if err != nil {
		logging.ProxyError("failed to read upstream response: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to connect to Gemini API")
		return
	}

	if !gjson.ValidBytes(body) || falsy(gjson.ParseBytes(body)) {
		logging.ProxyWarn("upstream returned no JSON (%d bytes)", len(body))
		writeError(w, http.StatusBadGateway, "Upstream returned no JSON")
		return
	}

	metrics.RecordTokens(gjson.GetBytes(body, "usageMetadata.promptTokenCount").Int(),
		gjson.GetBytes(body, "usageMetadata.candidatesTokenCount").Int())
	logging.Proxy("proxied prompt (%d chars) in %v", len(prompt.Str), time.Since(start))
	w.Header().Set("Access-Control-Allow-Origin", h.origin)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// upstreamPayload builds {"contents": [...history, user prompt]} and an
// optional systemInstruction. A history that is not an array is ignored.
func upstreamPayload(in []byte, prompt string) ([]byte, error) {
	var out struct {
		Contents          []json.RawMessage `json:"contents"`
		SystemInstruction json.RawMessage   `json:"systemInstruction,omitempty"`
	}

	if history := gjson.GetBytes(in, "history"); history.IsArray() {
		for _, turn := range history.Array() {
			out.Contents = append(out.Contents, json.RawMessage(turn.Raw))
		}
	}

	user, err := json.Marshal(map[string]any{
		"role":  "user",
		"parts": []map[string]string{{"text": prompt}},
	})
	if err != nil {
		return nil, err
	}
	out.Contents = append(out.Contents, user)

	if system := gjson.GetBytes(in, "system"); system.Type == gjson.String && system.Str != "" {
		si, err := json.Marshal(map[string]any{
			"parts": []map[string]string{{"text": system.Str}},
		})
		if err != nil {
			return nil, err
		}
		out.SystemInstruction = si
	}
	return json.Marshal(out)
}

// falsy reports JSON values a JavaScript caller would treat as no data.
func falsy(v gjson.Result) bool {
	switch v.Type {
	case gjson.Null, gjson.False:
		return true
	case gjson.Number:
		return v.Num == 0
	case gjson.String:
		return v.Str == ""
	}
	return false
}
