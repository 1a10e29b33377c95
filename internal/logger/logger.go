// Package logger provides the process-wide structured logger backed by Zap.
package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	sugar *zap.SugaredLogger
	once  sync.Once
)

// Init configures the global logger for env. "production" logs JSON at info
// level, "test" discards everything, anything else logs to the console at
// debug level.
func Init(env string) {
	once.Do(func() {
		sugar = build(env).Sugar().With("service", "backoffice-api")
	})
}

func build(env string) *zap.Logger {
	var cfg zap.Config
	switch env {
	case "test":
		return zap.NewNop()
	case "production":
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "ts"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	default:
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	base, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return base
}

// Get returns the global sugared logger, initializing a development logger
// on first use.
func Get() *zap.SugaredLogger {
	if sugar == nil {
		Init("development")
	}
	return sugar
}

// Sync flushes any buffered log entries.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}
