package ai

import (
	"context"
	"fmt"
	"time"

	"termfolio/internal/logging"
)

// Backend names accepted in configuration.
const (
	BackendProxy  = "proxy"
	BackendGemini = "gemini"
	BackendNone   = "none"
)

// Settings selects and configures a backend.
type Settings struct {
	Backend  string
	Endpoint string // proxy endpoint
	Model    string // gemini model
	APIKey   string // gemini key
	Timeout  time.Duration
}

// NewClient builds the client named by s.Backend.
func NewClient(ctx context.Context, s Settings) (Client, error) {
	switch s.Backend {
	case BackendProxy:
		if s.Endpoint == "" {
			return nil, fmt.Errorf("proxy backend: endpoint is required")
		}
		logging.AI("using proxy backend at %s", s.Endpoint)
		return NewProxyClient(s.Endpoint, s.Timeout), nil
	case BackendGemini:
		c, err := NewGenAIClient(ctx, GenAIOptions{APIKey: s.APIKey, Model: s.Model})
		if err != nil {
			return nil, err
		}
		logging.AI("using %s backend", c.Name())
		return c, nil
	case BackendNone, "":
		return NopClient{}, nil
	default:
		return nil, fmt.Errorf("unknown AI backend %q", s.Backend)
	}
}
