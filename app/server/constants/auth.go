package constants

import "time"

const (
	AuthTokenDuration  = 24 * time.Hour // 默认登录有效期
	ContextKeyIdentity = "identity"     // echo context 中存放已验证身份的键
)
