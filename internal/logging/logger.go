// Package logging provides config-driven categorized logging for numfacts.
// Each category is a named child of one zap root logger. Logging is off
// unless debug mode is enabled, because the interactive screen owns the
// terminal; when on, output goes to a file.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot    Category = "boot"    // Startup, CLI wiring
	CategoryConfig  Category = "config"  // Config load, env overrides, file watching
	CategoryFetch   Category = "fetch"   // Fact service calls
	CategoryReducer Category = "reducer" // Root reducer transitions
	CategoryStore   Category = "store"   // Serialized dispatch actor
	CategoryUI      Category = "ui"      // Interactive screen
)

// Options mirrors config.LoggingConfig to avoid an import cycle.
type Options struct {
	Level      string          // debug, info, warn, error
	Format     string          // json, console
	File       string          // output path; "stderr" and "stdout" are accepted
	DebugMode  bool            // master toggle; false = no logging
	Categories map[string]bool // per-category toggles, missing = enabled
}

var (
	mu      sync.RWMutex
	root    = zap.NewNop()
	opts    Options
	loggers = make(map[Category]*zap.Logger)
)

// Initialize builds the root logger from opts.
// With DebugMode off it installs a no-op logger and touches no files.
func Initialize(o Options) error {
	if !o.DebugMode {
		install(zap.NewNop(), o)
		return nil
	}

	level, err := zap.ParseAtomicLevel(o.Level)
	if err != nil {
		level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = level
	cfg.Sampling = nil
	if o.Format == "console" {
		cfg.Encoding = "console"
		cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}

	out := o.File
	if out == "" {
		out = "numfacts.log"
	}
	if out != "stderr" && out != "stdout" {
		if dir := filepath.Dir(out); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create log directory: %w", err)
			}
		}
	}
	cfg.OutputPaths = []string{out}
	cfg.ErrorOutputPaths = []string{out}

	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	install(l, o)

	Get(CategoryBoot).Info("logging initialized",
		zap.String("level", level.String()),
		zap.String("output", out),
	)
	return nil
}

// Use installs an already built logger as the root, with every category
// enabled. The CLI uses it for stderr logging and tests use it with an
// observer core.
func Use(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	install(l, Options{DebugMode: true})
}

func install(l *zap.Logger, o Options) {
	mu.Lock()
	defer mu.Unlock()
	root = l
	opts = o
	loggers = make(map[Category]*zap.Logger)
}

// IsDebugMode returns whether logging is enabled at all.
func IsDebugMode() bool {
	mu.RLock()
	defer mu.RUnlock()
	return opts.DebugMode
}

// IsCategoryEnabled returns whether a specific category is enabled
func IsCategoryEnabled(category Category) bool {
	mu.RLock()
	defer mu.RUnlock()
	return categoryEnabled(category)
}

func categoryEnabled(category Category) bool {
	if !opts.DebugMode {
		return false
	}
	if opts.Categories == nil {
		return true
	}
	enabled, exists := opts.Categories[string(category)]
	if !exists {
		return true
	}
	return enabled
}

// Get returns (or creates) the logger for a category.
// Returns a no-op logger if logging or the category is disabled.
func Get(category Category) *zap.Logger {
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

	l := zap.NewNop()
	if categoryEnabled(category) {
		l = root.Named(string(category))
	}
	loggers[category] = l
	return l
}

// Sync flushes the root logger. Call at shutdown.
func Sync() error {
	mu.RLock()
	l := root
	mu.RUnlock()
	return l.Sync()
}

// =============================================================================
// REQUEST ID TRACING
// =============================================================================

// NewRequestID returns a fresh correlation id.
func NewRequestID() string {
	return uuid.NewString()
}

// WithRequestID returns a category logger tagged with a correlation id.
func WithRequestID(category Category, requestID string) *zap.Logger {
	return Get(category).With(zap.String("req", requestID))
}

// =============================================================================
// TIMING HELPERS
// =============================================================================

// Timer helps measure operation duration
type Timer struct {
	logger *zap.Logger
	op     string
	start  time.Time
}

// StartTimer begins timing an operation
func StartTimer(category Category, operation string) *Timer {
	return StartTimerWith(Get(category), operation)
}

// StartTimerWith begins timing an operation logged to l.
func StartTimerWith(l *zap.Logger, operation string) *Timer {
	return &Timer{logger: l, op: operation, start: time.Now()}
}

// Stop ends the timer and logs the duration at debug level.
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	t.logger.Debug(t.op+" completed", zap.Duration("elapsed", elapsed))
	return elapsed
}

// StopWithThreshold logs a warning if the duration exceeds threshold.
func (t *Timer) StopWithThreshold(threshold time.Duration) time.Duration {
	elapsed := time.Since(t.start)
	if elapsed > threshold {
		t.logger.Warn(t.op+" was slow",
			zap.Duration("elapsed", elapsed),
			zap.Duration("threshold", threshold),
		)
	} else {
		t.logger.Debug(t.op+" completed", zap.Duration("elapsed", elapsed))
	}
	return elapsed
}
