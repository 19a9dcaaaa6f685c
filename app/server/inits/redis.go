package inits

import (
	"context"
	"fmt"
	"github.com/redis/go-redis/v9"
)

func Redis(ctx context.Context, conn string) (*redis.Client, error) {
	// 解析连接字符串
	opts, err := redis.ParseURL(conn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis connection string: %w", err)
	}

	rdb := redis.NewClient(opts)

	// 检查连接
	if err = rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return rdb, nil
}
