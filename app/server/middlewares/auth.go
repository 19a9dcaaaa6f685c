package middlewares

import (
	"announcement-board/app/server/api"
	"announcement-board/app/server/constants"
	"announcement-board/app/server/jwt"
	"announcement-board/app/server/utils"
	"errors"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
)

const (
	ReasonMissing   = "missing"
	ReasonMalformed = "malformed"
	ReasonExpired   = "expired"
)

// Auth 验证 Bearer 令牌，并把身份信息放入 echo 和请求的 context 。
// 缺失、格式错误和过期的令牌都返回同样的 401 ，原因只写在日志里。
func Auth(j *jwt.JWT, l *zap.Logger) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  constants.ContextKeyIdentity,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			identity, err := j.Verify(auth)
			if err != nil {
				return nil, err
			}

			// 设置请求 context ，方便下层直接读取
			c.SetRequest(c.Request().WithContext(jwt.NewContext(c.Request().Context(), identity)))

			return identity, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			l.Info("unauthenticated request",
				zap.String("reason", Reason(err)),
				zap.String("URI", c.Request().RequestURI),
				zap.Error(err),
			)

			return c.JSON(http.StatusUnauthorized, &api.ErrorMessage{
				Message: utils.P(http.StatusText(http.StatusUnauthorized)),
			})
		},
	})
}

// Reason 把认证失败的错误归类
func Reason(err error) string {
	switch {
	case errors.Is(err, jwt.ErrExpired):
		return ReasonExpired
	case errors.Is(err, jwt.ErrMalformed):
		return ReasonMalformed
	default:
		return ReasonMissing
	}
}

// Identity 读取 Auth 放入的身份信息
func Identity(c echo.Context) (*jwt.Identity, bool) {
	identity, ok := c.Get(constants.ContextKeyIdentity).(*jwt.Identity)
	return identity, ok && identity != nil
}
