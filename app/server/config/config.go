package config

import "time"

type Config struct {
	System struct {
		IsProd                bool     // 是否为生产环境
		Listen                string   // 监听地址
		DBConnectionString    string   // 数据库的连接字符串： postgres DSN 、 mongodb:// 或 memory://
		RedisConnectionString string   // Redis 数据库的连接字符串，为空时不启用缓存
		CORSAllowOrigins      []string // 允许跨域访问的来源，为空时允许全部
	}
	Security struct {
		SignatureSecretKey string        // 签名密钥，用于产生签名（例如 JWT ），更新会导致旧有会话失效
		TokenDuration      time.Duration // 登录令牌的有效期
	}
}
