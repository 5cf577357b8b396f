// Package config carries the ambient configuration shared by the command
// line tools.
package config

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogConfig selects how much the engine and tools say and where.
type LogConfig struct {
	LogLevel      string `yaml:"logLevel"`      // debug, info, warn, error
	LogFile       string `yaml:"logFile"`       // empty logs to stderr
	LogShowCaller bool   `yaml:"logShowCaller"` // include file:line
}

// NewLogger builds a sugared zap logger from cfg. Unknown levels keep zap's
// development default.
func NewLogger(cfg LogConfig) (*zap.SugaredLogger, error) {
	zcfg := zap.NewDevelopmentConfig()
	zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	switch cfg.LogLevel {
	case "debug":
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	case "info":
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	case "warn":
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	case "error":
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	}
	zcfg.EncoderConfig.TimeKey = ""
	zcfg.EncoderConfig.StacktraceKey = ""
	if !cfg.LogShowCaller {
		zcfg.EncoderConfig.CallerKey = ""
	}
	if cfg.LogFile != "" {
		zcfg.OutputPaths = []string{cfg.LogFile}
	}

	logger, err := zcfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
