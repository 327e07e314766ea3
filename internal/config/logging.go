package config

import "termfolio/internal/logging"

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level      string          `yaml:"level" json:"level,omitempty"`           // debug, info, warn, error
	Format     string          `yaml:"format" json:"format,omitempty"`         // json, console
	File       string          `yaml:"file" json:"file,omitempty"`             // log file; empty = no file
	DebugMode  bool            `yaml:"debug_mode" json:"debug_mode,omitempty"` // forces debug level
	Categories map[string]bool `yaml:"categories" json:"categories,omitempty"` // Per-category toggles
}

// ToLogging converts the section for logging.Initialize. fallback is the
// output used when no file is configured: "stderr" for the server, "" (off)
// for the full-screen TUI.
func (c LoggingConfig) ToLogging(fallback string) logging.Config {
	out := c.File
	if out == "" {
		out = fallback
	}
	return logging.Config{
		Level:      c.Level,
		Format:     c.Format,
		Output:     out,
		DebugMode:  c.DebugMode,
		Categories: c.Categories,
	}
}
