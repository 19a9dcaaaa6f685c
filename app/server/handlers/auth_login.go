package handlers

import (
	"announcement-board/app/server/api"
	"announcement-board/app/server/services"
	"announcement-board/app/server/utils"
	"errors"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
)

func (a *App) AuthLogin(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req api.LoginRequest
	if err := c.Bind(&req); err != nil {
		a.l.Debug("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	// 没有写用户名或密码
	username, password := utils.V(req.Username), utils.V(req.Password)
	if username == "" || password == "" {
		return a.er(c, http.StatusBadRequest, api.MessageCredentialsRequired)
	}

	// 校验密码并签出令牌
	token, user, err := a.auth.Login(rctx, username, password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return a.er(c, http.StatusUnauthorized, api.MessageInvalidCredentials)
		}
		a.l.Error("failed to login", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 返回
	return c.JSON(http.StatusOK, &api.LoginToken{
		Token: token,
		User: api.UserInfo{
			ID:       user.ID,
			Username: user.Username,
		},
	})
}
