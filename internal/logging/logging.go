// Package logging builds the application logger: console output for
// the interactive session plus an optional rotated JSON log file.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Loboguar4/TaskForge/internal/config"
)

// New builds a sugared logger from the log configuration.
func New(cfg config.LogConfig) *zap.SugaredLogger {
	level := zapcore.InfoLevel
	if parsed, err := zapcore.ParseLevel(cfg.Level); err == nil {
		level = parsed
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(os.Stderr),
		level,
	)

	core := consoleCore
	if cfg.File != "" {
		fileCore := zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			zapcore.AddSync(&lumberjack.Logger{
				Filename:   cfg.File,
				MaxSize:    20, // MB
				MaxBackups: 5,
				MaxAge:     30, // days
			}),
			level,
		)
		core = zapcore.NewTee(consoleCore, fileCore)
	}

	return zap.New(core).Sugar()
}

// Nop returns a logger that discards everything. Intended for tests.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
