// Package logging builds the zap loggers used by the CLI.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a console logger writing to stderr. verbose enables debug
// output; otherwise only warnings and errors are shown so one-shot command
// output stays clean.
func New(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.TimeKey = ""
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.Level = zap.NewAtomicLevelAt(level(verbose, zapcore.WarnLevel))

	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return log, nil
}

// NewFile returns a JSON logger appending to path at info level, or debug
// when verbose. The interactive client owns the terminal, so its log cannot
// go to stderr.
func NewFile(path string, verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Sampling = nil
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.Level = zap.NewAtomicLevelAt(level(verbose, zapcore.InfoLevel))

	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building file logger %s: %w", path, err)
	}
	return log, nil
}

func level(verbose bool, quiet zapcore.Level) zapcore.Level {
	if verbose {
		return zapcore.DebugLevel
	}
	return quiet
}
