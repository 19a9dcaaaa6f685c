package main

import (
	"announcement-board/app/server/handlers"
	"announcement-board/app/server/inits"
	"announcement-board/app/server/jwt"
	"announcement-board/app/server/middlewares"
	"announcement-board/app/server/services"
	"context"
	"errors"
	"fmt"
	"go.uber.org/zap"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// 初始化配置
	cfg, err := inits.Config()
	if err != nil {
		log.Fatal(fmt.Errorf("error loading config: %w", err))
	}

	// 初始化日志
	l, err := inits.Logger(!cfg.System.IsProd)
	if err != nil {
		log.Fatal(fmt.Errorf("error initializing logger: %w", err))
	}
	defer func() { _ = l.Sync() }()

	// 切换日志系统
	l.Debug("logger initialized")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 初始化存储（以及可选的 redis 缓存）
	stores, err := inits.NewStores(ctx, cfg.System.DBConnectionString, cfg.System.RedisConnectionString, l)
	if err != nil {
		l.Fatal("error initializing stores", zap.Error(err))
	}

	// 初始化 JWT
	j, err := jwt.New(cfg.Security.SignatureSecretKey, cfg.Security.TokenDuration)
	if err != nil {
		l.Fatal("error initializing JWT", zap.Error(err))
	}

	// 准备 handler app
	creds := services.NewCredentials(stores.Users, nil)
	handlerApp := handlers.NewApp(l, services.NewAuth(creds, j), services.NewAnnouncements(stores.Announcements))

	// 准备 echo 服务
	e := inits.Echo(cfg, l, handlerApp, middlewares.Auth(j, l))

	// 启动 echo 服务
	go func() {
		l.Info("server started", zap.String("listen", cfg.System.Listen))
		if err := e.Start(cfg.System.Listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Error("server stopped unexpectedly", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()

	// 优雅退出
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		l.Error("error shutting down the server", zap.Error(err))
	}
	if err := stores.Close(shutdownCtx); err != nil {
		l.Error("error closing stores", zap.Error(err))
	}

	l.Info("server stopped")
}
