package handlers

import (
	"announcement-board/app/seed/config"
	"announcement-board/app/server/services"
	"context"
	"errors"
	"fmt"
	"go.uber.org/zap"
)

type App struct {
	cfg   *config.Config
	l     *zap.Logger
	creds *services.Credentials
}

func NewApp(cfg *config.Config, l *zap.Logger, creds *services.Credentials) *App {
	return &App{
		cfg:   cfg,
		l:     l,
		creds: creds,
	}
}

// Run 创建初始用户，用户已经存在时跳过
func (a *App) Run(ctx context.Context) error {
	user, err := a.creds.Create(ctx, a.cfg.Username, a.cfg.Password)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateUser) {
			a.l.Info("user already exists, skipping", zap.String("username", a.cfg.Username))
			return nil
		}
		return fmt.Errorf("failed to create user %q: %w", a.cfg.Username, err)
	}

	a.l.Info("user created", zap.String("username", user.Username), zap.String("id", user.ID))

	return nil
}
