// Package logging provides config-driven categorized logging for stockprofit.
// The interactive form owns the terminal, so logs are written to a rotated file.
// When debug mode is off and no file is configured, every logger is a no-op.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot      Category = "boot"      // Startup, flag and config resolution
	CategoryAPI       Category = "api"       // Prediction endpoint calls
	CategoryForm      Category = "form"      // Form validation and submission flow
	CategoryAnimation Category = "animation" // Typewriter reveal
	CategoryUI        Category = "ui"        // Interactive terminal form
	CategoryConfig    Category = "config"    // Config load, save and reload
)

// DefaultFile is the log file used in debug mode when none is configured.
const DefaultFile = ".stockprofit/logs/stockprofit.log"

// Options mirrors the relevant parts of config.LoggingConfig
// to avoid circular imports
type Options struct {
	Level      string
	File       string
	DebugMode  bool
	JSONFormat bool
	MaxSizeMB  int
	MaxBackups int
	Categories map[string]bool
}

// Logger wraps a zap sugared logger bound to one category.
type Logger struct {
	category Category
	sugar    *zap.SugaredLogger
}

var (
	mu       sync.RWMutex
	root     = zap.NewNop()
	opts     Options
	loggers  = make(map[Category]*Logger)
	rotation *lumberjack.Logger
)

// Initialize builds the root logger from opts. It is safe to call again;
// the previous logger is synced and replaced.
func Initialize(o Options) error {
	mu.Lock()
	defer mu.Unlock()

	_ = root.Sync()
	if rotation != nil {
		_ = rotation.Close()
		rotation = nil
	}
	loggers = make(map[Category]*Logger)
	opts = o

	if !o.DebugMode && o.File == "" {
		root = zap.NewNop()
		return nil
	}

	file := o.File
	if file == "" {
		file = DefaultFile
	}
	if dir := filepath.Dir(file); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	rotation = &lumberjack.Logger{
		Filename:   file,
		MaxSize:    orDefault(o.MaxSizeMB, 10),
		MaxBackups: orDefault(o.MaxBackups, 3),
		Compress:   true,
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	if o.JSONFormat {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(rotation), zap.NewAtomicLevelAt(ParseLevel(o.Level)))
	root = zap.New(core)
	return nil
}

// UseLogger installs l as the root logger. Tests use it with zaptest.
func UseLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	root = l
	loggers = make(map[Category]*Logger)
	opts = Options{DebugMode: true}
}

// ParseLevel maps a config level name onto a zap level. Unknown names mean info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// IsCategoryEnabled returns whether a specific category is enabled
func IsCategoryEnabled(category Category) bool {
	mu.RLock()
	defer mu.RUnlock()
	return categoryEnabled(category)
}

func categoryEnabled(category Category) bool {
	if opts.Categories == nil {
		return true
	}
	enabled, exists := opts.Categories[string(category)]
	if !exists {
		return true
	}
	return enabled
}

// Get returns (or creates) a logger for the given category.
func Get(category Category) *Logger {
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

	base := root
	if !categoryEnabled(category) {
		base = zap.NewNop()
	}
	l := &Logger{
		category: category,
		sugar:    base.Named(string(category)).Sugar(),
	}
	loggers[category] = l
	return l
}

// Sync flushes buffered log entries.
func Sync() error {
	mu.RLock()
	defer mu.RUnlock()
	return root.Sync()
}

func (l *Logger) Debug(format string, args ...interface{}) { l.sugar.Debugf(format, args...) }
func (l *Logger) Info(format string, args ...interface{})  { l.sugar.Infof(format, args...) }
func (l *Logger) Warn(format string, args ...interface{})  { l.sugar.Warnf(format, args...) }
func (l *Logger) Error(format string, args ...interface{}) { l.sugar.Errorf(format, args...) }

// With returns a logger carrying structured key-value context.
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{category: l.category, sugar: l.sugar.With(keysAndValues...)}
}

// Zap exposes the underlying structured logger.
func (l *Logger) Zap() *zap.Logger {
	return l.sugar.Desugar()
}

// Convenience helpers

func Boot(format string, args ...interface{}) { Get(CategoryBoot).Info(format, args...) }
func UI(format string, args ...interface{})   { Get(CategoryUI).Info(format, args...) }

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
