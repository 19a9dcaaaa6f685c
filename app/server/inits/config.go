package inits

import (
	"announcement-board/app/server/config"
	"announcement-board/app/server/constants"
	"errors"
	"fmt"
	"github.com/joho/godotenv"
	"io/fs"
	"os"
	"strings"
	"time"
)

func Config() (*config.Config, error) {
	// 读取 .env 文件，不存在时直接使用环境变量
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &config.Config{}

	// 手动配置映射
	{
		mode, exist := os.LookupEnv("MODE")
		cfg.System.IsProd = exist && strings.HasPrefix(strings.ToLower(mode), "p")
	}

	if listen, exist := os.LookupEnv("LISTEN"); !exist || listen == "" {
		cfg.System.Listen = ":5000" // 默认监听地址
	} else {
		cfg.System.Listen = listen
	}

	if dbconn, exist := os.LookupEnv("DB_CONN"); !exist || dbconn == "" {
		return nil, fmt.Errorf("DB_CONN environment variable not set")
	} else {
		cfg.System.DBConnectionString = dbconn
	}

	// 可选，不设置时不启用缓存
	cfg.System.RedisConnectionString = os.Getenv("REDIS_CONN")

	if origins, exist := os.LookupEnv("CORS_ALLOW_ORIGINS"); exist {
		for _, origin := range strings.Split(origins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.System.CORSAllowOrigins = append(cfg.System.CORSAllowOrigins, origin)
			}
		}
	}

	if sigsk, exist := os.LookupEnv("SIGNATURE_SECRET_KEY"); !exist || sigsk == "" {
		return nil, fmt.Errorf("SIGNATURE_SECRET_KEY environment variable not set")
	} else {
		cfg.Security.SignatureSecretKey = sigsk
	}

	if duration, exist := os.LookupEnv("TOKEN_DURATION"); !exist || duration == "" {
		cfg.Security.TokenDuration = constants.AuthTokenDuration
	} else if d, err := time.ParseDuration(duration); err != nil {
		return nil, fmt.Errorf("invalid TOKEN_DURATION %q: %w", duration, err)
	} else if d <= 0 {
		return nil, fmt.Errorf("TOKEN_DURATION must be positive, got %s", d)
	} else {
		cfg.Security.TokenDuration = d
	}

	return cfg, nil
}
