package inits

import (
	"announcement-board/app/seed/config"
	"errors"
	"fmt"
	"github.com/joho/godotenv"
	"io/fs"
	"os"
	"strings"
)

func Config() (*config.Config, error) {
	// 读取 .env 文件，不存在时直接使用环境变量
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg config.Config
	{
		mode, exist := os.LookupEnv("MODE")
		cfg.IsProd = exist && strings.HasPrefix(strings.ToLower(mode), "p")
	}

	if dbconn, exist := os.LookupEnv("DB_CONN"); !exist || dbconn == "" {
		return nil, fmt.Errorf("DB_CONN environment variable not set")
	} else {
		cfg.DBConnectionString = dbconn
	}

	if username, exist := os.LookupEnv("SEED_USERNAME"); !exist || username == "" {
		cfg.Username = "admin" // 默认用户名
	} else {
		cfg.Username = username
	}

	if password, exist := os.LookupEnv("SEED_PASSWORD"); !exist || password == "" {
		return nil, fmt.Errorf("SEED_PASSWORD environment variable not set")
	} else {
		cfg.Password = password
	}

	return &cfg, nil
}
