package app

import (
	"fmt"
	"os"

	"marketplace-dispatch/internal/config"
	"marketplace-dispatch/internal/logx"
)

// NewLogger builds the process logger from LOG_LEVEL and LOG_BACKEND.
func NewLogger(cfg *config.Config) (logx.Logger, error) {
	level, err := logx.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	if cfg.Log.Backend == "zap" {
		return logx.NewZapProduction(level)
	}
	return logx.NewJSON(os.Stdout, level), nil
}
