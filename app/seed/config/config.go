package config

type Config struct {
	// 基础配置
	IsProd bool

	// 数据库配置，与 server 相同
	DBConnectionString string

	// 初始用户
	Username string
	Password string
}
