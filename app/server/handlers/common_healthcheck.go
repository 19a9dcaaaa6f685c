package handlers

import (
	"announcement-board/app/server/api"
	"github.com/labstack/echo/v4"
	"net/http"
)

func (a *App) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, &api.MessageResponse{
		Message: api.MessageServerRunning,
	})
}
