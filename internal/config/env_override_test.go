package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvOverrides_AI(t *testing.T) {
	t.Run("GEMINI_API_KEY sets both keys and enables gemini", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("GEMINI_API_KEY", "gem-key")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "gem-key", cfg.AI.APIKey)
		assert.Equal(t, "gem-key", cfg.Server.APIKey)
		assert.Equal(t, "gemini", cfg.AI.Backend)
	})

	t.Run("GEMINI_API_KEY does not override a chosen backend", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("GEMINI_API_KEY", "gem-key")

		cfg := &Config{AI: AIConfig{Backend: "proxy"}}
		cfg.applyEnvOverrides()

		assert.Equal(t, "proxy", cfg.AI.Backend)
		assert.Equal(t, "gem-key", cfg.Server.APIKey)
	})

	t.Run("FOLIO_AI_ENDPOINT selects the proxy backend", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("GEMINI_API_KEY", "gem-key")
		t.Setenv("FOLIO_AI_ENDPOINT", "http://proxy.local/api/gemini")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "proxy", cfg.AI.Backend)
		assert.Equal(t, "http://proxy.local/api/gemini", cfg.AI.Endpoint)
	})

	t.Run("empty variables change nothing", func(t *testing.T) {
		clearEnv(t)
		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		assert.Equal(t, DefaultConfig(), cfg)
	})
}

func TestEnvOverrides_ProfileAndAddr(t *testing.T) {
	clearEnv(t)
	t.Setenv("FOLIO_PROFILE", "/etc/folio/profile.yaml")
	t.Setenv("FOLIO_ADDR", "127.0.0.1:9000")

	cfg := &Config{}
	cfg.applyEnvOverrides()

	assert.Equal(t, "/etc/folio/profile.yaml", cfg.Profile.Path)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
}

func TestLoad_AppliesEnvWithoutFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("FOLIO_ADDR", ":9999")

	cfg, err := Load(t.TempDir() + "/none.yaml")
	assert.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.Addr)
}
