package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Options struct {
	Service   string
	Env       string
	Level     string
	AddSource bool
}

// New builds a JSON logger for prod and a console logger otherwise. It never
// fails: a broken config degrades to zap.NewNop.
func New(opts Options) *zap.Logger {
	var cfg zap.Config
	switch strings.ToLower(strings.TrimSpace(opts.Env)) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(opts.Level))
	cfg.DisableCaller = !opts.AddSource
	cfg.OutputPaths = []string{"stderr"}

	base, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}

	base = base.With(
		zap.String("service", opts.Service),
		zap.String("env", opts.Env),
	)
	zap.ReplaceGlobals(base)
	return base
}

func parseLevel(lvl string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
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
