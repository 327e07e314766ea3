// Package logging provides config-driven categorized logging for termfolio.
// Every category is a named child of one zap logger. When no output is
// configured (the TUI owns the screen) all loggers are silent no-ops.
package logging

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot        Category = "boot"        // Startup and config
	CategorySession     Category = "session"     // Terminal session lifecycle
	CategoryVFS         Category = "vfs"         // Virtual filesystem construction/export
	CategoryInterpreter Category = "interpreter" // Command dispatch
	CategoryAI          Category = "ai"          // AI chat collaborator calls
	CategoryProxy       Category = "proxy"       // Gemini proxy handler
	CategoryWebTerm     Category = "webterm"     // HTTP terminal sessions
	CategoryUI          Category = "ui"          // TUI events
	CategoryWatcher     Category = "watcher"     // Profile file watcher
)

// Config mirrors config.LoggingConfig to avoid an import cycle.
type Config struct {
	Level      string          // debug, info, warn, error
	Format     string          // json, console
	Output     string          // file path, "stderr" or "stdout"; empty disables logging
	DebugMode  bool            // forces debug level
	Categories map[string]bool // per-category toggles; missing means enabled
}

// Logger is a category logger. The zero value discards everything.
type Logger struct {
	category Category
	sugar    *zap.SugaredLogger
}

var (
	mu      sync.RWMutex
	base    *zap.Logger
	current Config
	loggers = make(map[Category]*Logger)
)

// Initialize builds the shared zap logger from cfg. Calling it again
// replaces the previous logger.
func Initialize(cfg Config) error {
	if cfg.Output == "" {
		Replace(nil, cfg)
		return nil
	}

	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
	}
	if cfg.DebugMode {
		level.SetLevel(zapcore.DebugLevel)
	}

	var zc zap.Config
	if cfg.Format == "console" {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}
	zc.Level = level
	zc.OutputPaths = []string{cfg.Output}
	zc.ErrorOutputPaths = []string{cfg.Output}

	logger, err := zc.Build(zap.AddCallerSkip(1))
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	Replace(logger, cfg)

	Boot("logging initialized (level=%s format=%s output=%s)", level.String(), cfg.Format, cfg.Output)
	return nil
}

// Replace installs l as the shared logger. A nil logger disables logging.
// Tests use it with zaptest/observer cores.
func Replace(l *zap.Logger, cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if base != nil && base != l {
		_ = base.Sync()
	}
	base = l
	current = cfg
	loggers = make(map[Category]*Logger)
}

// Zap returns the shared zap logger, or a no-op logger when logging is off.
func Zap() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if base == nil {
		return zap.NewNop()
	}
	return base
}

// Sync flushes buffered log entries.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	if base != nil {
		_ = base.Sync()
	}
}

// IsCategoryEnabled returns whether a specific category is enabled
func IsCategoryEnabled(category Category) bool {
	mu.RLock()
	defer mu.RUnlock()
	if base == nil {
		return false
	}
	if current.Categories == nil {
		return true
	}
	enabled, exists := current.Categories[string(category)]
	if !exists {
		return true
	}
	return enabled
}

// Get returns (or creates) a logger for the given category.
// Returns a no-op logger if logging is off or the category is disabled.
func Get(category Category) *Logger {
	if !IsCategoryEnabled(category) {
		return &Logger{category: category}
	}

	mu.RLock()
	if l, ok := loggers[category]; ok {
		mu.RUnlock()
		return l
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if l, ok := loggers[category]; ok {
		return l
	}
	if base == nil {
		return &Logger{category: category}
	}
	l := &Logger{
		category: category,
		sugar:    base.Named(string(category)).Sugar(),
	}
	loggers[category] = l
	return l
}

// With returns a child logger carrying structured key/value pairs.
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	if l.sugar == nil {
		return l
	}
	return &Logger{category: l.category, sugar: l.sugar.With(keysAndValues...)}
}

func (l *Logger) Debug(format string, args ...interface{}) {
	if l.sugar != nil {
		l.sugar.Debugf(format, args...)
	}
}

func (l *Logger) Info(format string, args ...interface{}) {
	if l.sugar != nil {
		l.sugar.Infof(format, args...)
	}
}

func (l *Logger) Warn(format string, args ...interface{}) {
	if l.sugar != nil {
		l.sugar.Warnf(format, args...)
	}
}

func (l *Logger) Error(format string, args ...interface{}) {
	if l.sugar != nil {
		l.sugar.Errorf(format, args...)
	}
}

// =============================================================================
// CONVENIENCE FUNCTIONS - Quick logging without getting a logger first
// These are no-ops if the category is disabled
// =============================================================================

func Boot(format string, args ...interface{})      { Get(CategoryBoot).Info(format, args...) }
func BootError(format string, args ...interface{}) { Get(CategoryBoot).Error(format, args...) }

func Session(format string, args ...interface{})      { Get(CategorySession).Info(format, args...) }
func SessionDebug(format string, args ...interface{}) { Get(CategorySession).Debug(format, args...) }

func VFS(format string, args ...interface{})      { Get(CategoryVFS).Info(format, args...) }
func VFSDebug(format string, args ...interface{}) { Get(CategoryVFS).Debug(format, args...) }

func InterpreterDebug(format string, args ...interface{}) {
	Get(CategoryInterpreter).Debug(format, args...)
}

func AI(format string, args ...interface{})      { Get(CategoryAI).Info(format, args...) }
func AIDebug(format string, args ...interface{}) { Get(CategoryAI).Debug(format, args...) }
func AIError(format string, args ...interface{}) { Get(CategoryAI).Error(format, args...) }

func Proxy(format string, args ...interface{})      { Get(CategoryProxy).Info(format, args...) }
func ProxyWarn(format string, args ...interface{})  { Get(CategoryProxy).Warn(format, args...) }
func ProxyError(format string, args ...interface{}) { Get(CategoryProxy).Error(format, args...) }

func WebTerm(format string, args ...interface{})      { Get(CategoryWebTerm).Info(format, args...) }
func WebTermDebug(format string, args ...interface{}) { Get(CategoryWebTerm).Debug(format, args...) }

func UIDebug(format string, args ...interface{}) { Get(CategoryUI).Debug(format, args...) }
func UIError(format string, args ...interface{}) { Get(CategoryUI).Error(format, args...) }

func Watcher(format string, args ...interface{})      { Get(CategoryWatcher).Info(format, args...) }
func WatcherError(format string, args ...interface{}) { Get(CategoryWatcher).Error(format, args...) }

// =============================================================================
// TIMING HELPERS
// =============================================================================

// Timer helps measure operation duration
type Timer struct {
	category Category
	op       string
	start    time.Time
}

// StartTimer begins timing an operation
func StartTimer(category Category, operation string) *Timer {
	return &Timer{category: category, op: operation, start: time.Now()}
}

// Stop ends the timer and logs the duration
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	Get(t.category).Debug("%s completed in %v", t.op, elapsed)
	return elapsed
}

// StopWithThreshold logs warning if duration exceeds threshold
func (t *Timer) StopWithThreshold(threshold time.Duration) time.Duration {
	elapsed := time.Since(t.start)
	if elapsed > threshold {
		Get(t.category).Warn("%s took %v (threshold: %v)", t.op, elapsed, threshold)
	} else {
		Get(t.category).Debug("%s completed in %v", t.op, elapsed)
	}
	return elapsed
}
