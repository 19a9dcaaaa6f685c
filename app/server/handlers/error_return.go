package handlers

import (
	"announcement-board/app/server/api"
	"announcement-board/app/server/utils"
	"github.com/labstack/echo/v4"
	"net/http"
)

// er 返回错误信息，未指定时使用状态码对应的文本
func (a *App) er(c echo.Context, statusCode int, message ...string) error {
	msg := http.StatusText(statusCode)
	if len(message) > 0 {
		msg = message[0]
	}

	return c.JSON(statusCode, &api.ErrorMessage{
		Message: utils.P(msg),
	})
}
