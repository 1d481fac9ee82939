package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"workoutlog/internal/config"
)

// New returns a JSON logger in production and a console logger otherwise.
func New(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	zc := zap.NewDevelopmentConfig()
	zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zc.Build()
}
