// Package logging builds the zap logger shared by the demo.
package logging

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"tankdemo/internal/buildinfo"
	"tankdemo/internal/config"
)

// New builds a logger from cfg. Every entry carries the build version and a
// run id unique to this process.
func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}

	encoder := zap.NewProductionEncoderConfig()
	encoder.EncodeTime = zapcore.ISO8601TimeEncoder
	if cfg.Format == "console" {
		encoder.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	output := cfg.Output
	if len(output) == 0 {
		output = []string{"stderr"}
	}

	zc := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Development:       false,
		Encoding:          cfg.Format,
		EncoderConfig:     encoder,
		OutputPaths:       output,
		ErrorOutputPaths:  []string{"stderr"},
		DisableCaller:     true,
		DisableStacktrace: true,
	}
	if zc.Encoding == "" {
		zc.Encoding = "console"
	}

	l, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: build: %w", err)
	}
	return l.With(
		zap.String("run_id", uuid.NewString()),
		zap.String("version", buildinfo.Short()),
	), nil
}
