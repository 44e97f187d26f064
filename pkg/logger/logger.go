package logger

import (
	"github.com/carhub/catalog-service/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process-wide zap logger from config. The encoding is
// "console" for local development and "json" everywhere else.
func New(cfg config.LoggerConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	zcfg := zap.NewProductionConfig()
	if cfg.Encoding == "console" {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.DisableCaller = cfg.DisableCaller
	zcfg.DisableStacktrace = cfg.DisableStacktrace

	return zcfg.Build()
}
