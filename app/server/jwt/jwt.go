package jwt

import (
	"announcement-board/app/server/constants"
	"announcement-board/app/server/models"
	"errors"
	"fmt"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"time"
)

var (
	ErrMalformed = errors.New("malformed token")
	ErrExpired   = errors.New("token expired")
)

type JWT struct {
	key      []byte
	duration time.Duration
	now      func() time.Time
}

// Identity 是令牌中携带的身份信息，验证时不会再查询用户表
type Identity struct {
	UserID    string
	Username  string
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type Option func(*JWT)

// WithClock 替换时间来源，主要给测试使用
func WithClock(now func() time.Time) Option {
	return func(j *JWT) {
		j.now = now
	}
}

func New(key string, duration time.Duration, opts ...Option) (*JWT, error) {
	if len(key) == 0 {
		return nil, errors.New("key is empty")
	}

	if duration <= 0 {
		duration = constants.AuthTokenDuration
	}

	j := &JWT{
		key:      []byte(key),
		duration: duration,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}

	return j, nil
}

func (j *JWT) Duration() time.Duration {
	return j.duration
}

func (j *JWT) Issue(user *models.User) (string, error) {
	if user == nil || user.ID == "" {
		return "", errors.New("user has no id")
	}

	// 创建声明
	issuedAt := j.now()
	claims := &Claims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(j.duration)),
			ID:        uuid.NewString(),
		},
	}

	// 创建令牌
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	// 签名并返回
	return token.SignedString(j.key)
}

func (j *JWT) Verify(tokenString string) (*Identity, error) {
	// 检查是否有效
	if len(tokenString) == 0 {
		return nil, fmt.Errorf("%w: token string is empty", ErrMalformed)
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return j.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) || j.expiredUnverified(tokenString) {
			return nil, fmt.Errorf("%w: %w", ErrExpired, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	// 匹配内容
	if !token.Valid || claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: missing claims", ErrMalformed)
	}

	identity := &Identity{
		UserID:    claims.Subject,
		Username:  claims.Username,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		identity.IssuedAt = claims.IssuedAt.Time
	}

	return identity, nil
}

// expiredUnverified 在签名验证失败时读取未验证的声明，过期的令牌一律按过期处理
func (j *JWT) expiredUnverified(tokenString string) bool {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return false
	}

	return claims.ExpiresAt != nil && !j.now().Before(claims.ExpiresAt.Time)
}
