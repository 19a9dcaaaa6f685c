package inits

import (
	"fmt"
	"go.uber.org/zap"
)

func Logger(debugMode bool) (*zap.Logger, error) {
	var cfg zap.Config
	if debugMode {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	l, err := cfg.Build(zap.Fields(zap.String("service", "announcement-board")))
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	return l, nil
}
