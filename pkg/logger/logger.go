package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds logger configuration
type Config struct {
	Level       string // debug, info, warn, error (environment names map to info)
	ServiceName string
	Development bool
}

// Logger wraps zap.Logger so callers depend on this package, not zap directly
type Logger struct {
	*zap.Logger
}

var globalLogger *Logger

// Init initializes the global logger
func Init(cfg *Config) error {
	if cfg == nil {
		cfg = &Config{Level: "info", Development: true}
	}

	level := zapcore.InfoLevel
	switch cfg.Level {
	case "debug", "development":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	}

	var zapCfg zap.Config
	if cfg.Development {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	l, err := zapCfg.Build(zap.AddCallerSkip(0))
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	if cfg.ServiceName != "" {
		l = l.With(zap.String("service", cfg.ServiceName))
	}

	globalLogger = &Logger{Logger: l}
	zap.ReplaceGlobals(l)
	return nil
}

// Get returns the global logger, initializing a default one if needed
func Get() *Logger {
	if globalLogger == nil {
		_ = Init(nil)
	}
	return globalLogger
}

// Sync flushes any buffered log entries
func Sync() {
	if globalLogger != nil {
		_ = globalLogger.Sync()
	}
}
