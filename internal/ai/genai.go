package ai

import (
	"context"
	"fmt"
	"strings"

	"termfolio/internal/logging"

	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// GenAIClient calls the Gemini API directly through the genai SDK.
type GenAIClient struct {
	client *genai.Client
	model  string
}

// GenAIOptions configures NewGenAIClient.
type GenAIOptions struct {
	APIKey  string
	Model   string
	BaseURL string // overrides the API endpoint, used by tests
}

// NewGenAIClient creates a direct Gemini client.
func NewGenAIClient(ctx context.Context, opts GenAIOptions) (*GenAIClient, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("gemini backend: %w", ErrNoBackend)
	}
	model := opts.Model
	if model == "" {
		model = DefaultModel
	}

	cfg := &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if opts.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GenAIClient{client: client, model: model}, nil
}

// Generate implements Client.
func (c *GenAIClient) Generate(ctx context.Context, req Request) (string, error) {
	contents := make([]*genai.Content, 0, len(req.History)+1)
	for _, m := range req.History {
		contents = append(contents, genai.NewContentFromText(m.Text(), genai.Role(m.Role)))
	}
	contents = append(contents, genai.NewContentFromText(req.Prompt, genai.RoleUser))

	var cfg *genai.GenerateContentConfig
	if req.System != "" {
		cfg = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(req.System, genai.RoleUser),
		}
	}

	timer := logging.StartTimer(logging.CategoryAI, "genai generate")
	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, cfg)
	timer.Stop()
	if err != nil {
		logging.AIError("genai generate failed: %v", err)
		return "", fmt.Errorf("genai generate: %w", err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", ErrEmptyReply
	}
	return text, nil
}

// Name returns the backend name.
func (c *GenAIClient) Name() string {
	return fmt.Sprintf("genai:%s", c.model)
}
