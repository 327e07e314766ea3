package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all folio configuration.
type Config struct {
	// Profile data source
	Profile ProfileConfig `yaml:"profile"`

	// Prompt labels and hire wizard timing
	Terminal TerminalConfig `yaml:"terminal"`

	// AI chat backend used by the interactive front ends
	AI AIConfig `yaml:"ai"`

	// HTTP service (folio serve)
	Server ServerConfig `yaml:"server"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// ProfileConfig selects the profile file. Empty Path uses the built-in profile.
type ProfileConfig struct {
	Path string `yaml:"path"`
}

// TerminalConfig configures the command interpreter.
type TerminalConfig struct {
	User      string `yaml:"user"`       // prompt user label
	Host      string `yaml:"host"`       // prompt host label
	HireDelay string `yaml:"hire_delay"` // wait before opening the hire mail
	Seed      uint64 `yaml:"seed"`       // neofetch quote seed, 0 = time-seeded
}

// AIConfig configures the chat collaborator.
type AIConfig struct {
	Backend  string `yaml:"backend"`  // proxy, gemini, none
	Endpoint string `yaml:"endpoint"` // proxy endpoint
	Model    string `yaml:"model"`    // gemini model
	APIKey   string `yaml:"api_key"`
	Timeout  string `yaml:"timeout"`
}

// ServerConfig configures the HTTP service.
type ServerConfig struct {
	Addr          string `yaml:"addr"`
	UpstreamURL   string `yaml:"upstream_url"`
	Model         string `yaml:"model"`
	APIKey        string `yaml:"api_key"`
	AllowedOrigin string `yaml:"allowed_origin"`
	SessionTTL    string `yaml:"session_ttl"`
	ReadTimeout   string `yaml:"read_timeout"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Terminal: TerminalConfig{
			User:      "user",
			Host:      "host",
			HireDelay: "2s",
		},

		AI: AIConfig{
			Backend:  "none",
			Endpoint: "http://localhost:8080/api/gemini",
			Model:    "gemini-2.5-flash",
			Timeout:  "60s",
		},

		Server: ServerConfig{
			Addr:          ":8080",
			UpstreamURL:   "https://generativelanguage.googleapis.com/v1beta",
			Model:         "gemini-2.5-flash",
			AllowedOrigin: "*",
			SessionTTL:    "30m",
			ReadTimeout:   "15s",
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// DefaultPath returns ~/.config/termfolio/config.yaml (or the platform
// equivalent). It falls back to a relative path when no config dir exists.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".termfolio", "config.yaml")
	}
	return filepath.Join(dir, "termfolio", "config.yaml")
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides apply in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.AI.APIKey = key
		c.Server.APIKey = key
		if c.AI.Backend == "" || c.AI.Backend == "none" {
			c.AI.Backend = "gemini"
		}
	}
	if path := os.Getenv("FOLIO_PROFILE"); path != "" {
		c.Profile.Path = path
	}
	if url := os.Getenv("FOLIO_AI_ENDPOINT"); url != "" {
		c.AI.Endpoint = url
		c.AI.Backend = "proxy"
	}
	if addr := os.Getenv("FOLIO_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// GetHireDelay returns the hire mail delay as a duration.
func (c *Config) GetHireDelay() time.Duration {
	return parseDuration(c.Terminal.HireDelay, 2*time.Second)
}

// GetAITimeout returns the AI request timeout as a duration.
func (c *Config) GetAITimeout() time.Duration {
	return parseDuration(c.AI.Timeout, 60*time.Second)
}

// GetSessionTTL returns the web terminal idle timeout as a duration.
func (c *Config) GetSessionTTL() time.Duration {
	return parseDuration(c.Server.SessionTTL, 30*time.Minute)
}

// GetReadTimeout returns the HTTP read timeout as a duration.
func (c *Config) GetReadTimeout() time.Duration {
	return parseDuration(c.Server.ReadTimeout, 15*time.Second)
}

// ValidBackends lists all supported AI backends.
var ValidBackends = []string{"proxy", "gemini", "none"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validBackend := false
	for _, b := range ValidBackends {
		if c.AI.Backend == b {
			validBackend = true
			break
		}
	}
	if !validBackend {
		return fmt.Errorf("invalid AI backend: %s (valid: %v)", c.AI.Backend, ValidBackends)
	}
	if c.AI.Backend == "gemini" && c.AI.APIKey == "" {
		return fmt.Errorf("gemini backend needs an API key (set ai.api_key or GEMINI_API_KEY)")
	}
	if c.AI.Backend == "proxy" && c.AI.Endpoint == "" {
		return fmt.Errorf("proxy backend needs ai.endpoint")
	}

	durations := []struct {
		name  string
		value string
	}{
		{"terminal.hire_delay", c.Terminal.HireDelay},
		{"ai.timeout", c.AI.Timeout},
		{"server.session_ttl", c.Server.SessionTTL},
		{"server.read_timeout", c.Server.ReadTimeout},
	}
	for _, d := range durations {
		if d.value == "" {
			continue
		}
		if _, err := time.ParseDuration(d.value); err != nil {
			return fmt.Errorf("invalid duration for %s: %q", d.name, d.value)
		}
	}

	switch c.Logging.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("invalid logging format: %s (valid: json, console)", c.Logging.Format)
	}
	return nil
}
