// Package logging builds the *zap.Logger that cmd/pgnbook passes to a
// build run alongside its config, the way discochess-stockpile's
// internal/stats/logger wraps a zap logger behind the stats.Collector
// interface.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a console-encoded zap logger whose level is derived from
// verbosity: 0 logs Warn and above (abandoned games and errors), 1 logs
// Info, 2+ logs Debug.
func New(verbosity int) (*zap.Logger, error) {
	level := zapcore.WarnLevel
	switch {
	case verbosity >= 2:
		level = zapcore.DebugLevel
	case verbosity == 1:
		level = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	cfg.EncoderConfig.TimeKey = "" // a batch CLI run doesn't need a timestamp on every line

	return cfg.Build()
}
