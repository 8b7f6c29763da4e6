package cli

import (
	"fmt"

	"go.uber.org/zap"

	"rehearsals/internal/config"
)

// newLogger builds the app logger. The TUI owns the terminal, so logs go to
// the configured file; with none configured they are discarded.
func newLogger(cfg *config.Config) (*zap.SugaredLogger, func(), error) {
	if cfg.LogFile == "" {
		return zap.NewNop().Sugar(), func() {}, nil
	}

	zc := zap.NewProductionConfig()
	zc.OutputPaths = []string{cfg.LogFile}
	zc.ErrorOutputPaths = []string{cfg.LogFile}
	logger, err := zc.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("open log file %s: %w", cfg.LogFile, err)
	}
	return logger.Sugar(), func() { _ = logger.Sync() }, nil
}
