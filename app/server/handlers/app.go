package handlers

import (
	"announcement-board/app/server/api"
	"announcement-board/app/server/services"
	"go.uber.org/zap"
)

var _ api.ServerInterface = (*App)(nil)

type App struct {
	l             *zap.Logger             // 日志
	auth          *services.Auth          // 登录
	announcements *services.Announcements // 公告
}

func NewApp(l *zap.Logger, auth *services.Auth, announcements *services.Announcements) *App {
	return &App{
		l:             l,
		auth:          auth,
		announcements: announcements,
	}
}
