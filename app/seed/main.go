package main

import (
	"announcement-board/app/seed/handlers"
	"announcement-board/app/seed/inits"
	serverinits "announcement-board/app/server/inits"
	"announcement-board/app/server/services"
	"context"
	"fmt"
	"go.uber.org/zap"
	"log"
	"time"
)

func main() {
	// 初始化配置
	cfg, err := inits.Config()
	if err != nil {
		log.Fatal(fmt.Errorf("error loading config: %w", err))
	}

	// 初始化日志
	l, err := serverinits.Logger(!cfg.IsProd)
	if err != nil {
		log.Fatal(fmt.Errorf("error initializing logger: %w", err))
	}
	defer func() { _ = l.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	// 初始化存储，不需要缓存
	stores, err := serverinits.NewStores(ctx, cfg.DBConnectionString, "", l)
	if err != nil {
		l.Fatal("error initializing stores", zap.Error(err))
	}
	defer func() { _ = stores.Close(context.Background()) }()

	// 创建初始用户
	handlerApp := handlers.NewApp(cfg, l, services.NewCredentials(stores.Users, nil))
	if err := handlerApp.Run(ctx); err != nil {
		l.Fatal("error seeding database", zap.Error(err))
	}
}
