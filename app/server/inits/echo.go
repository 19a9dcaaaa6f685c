package inits

import (
	"announcement-board/app/server/api"
	"announcement-board/app/server/apidocs"
	"announcement-board/app/server/config"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func Echo(cfg *config.Config, l *zap.Logger, si api.ServerInterface, auth echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogMethod:   true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			l.Info("request",
				zap.String("method", v.Method),
				zap.String("URI", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("remoteIP", v.RemoteIP),
			)

			return nil
		},
	}))
	e.Use(middleware.Recover())

	// 跨域
	corsConfig := middleware.DefaultCORSConfig
	if len(cfg.System.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.System.CORSAllowOrigins
	}
	e.Use(middleware.CORSWithConfig(corsConfig))

	// 绑定 echo 服务
	api.RegisterHandlers(e, si, auth)

	// 添加 API 文档
	if !cfg.System.IsProd {
		if swg, err := api.GetSwagger(); err != nil {
			l.Error("error initializing swagger", zap.Error(err))
		} else if swgJson, err := swg.MarshalJSON(); err != nil {
			l.Error("error initializing swagger", zap.Error(err))
		} else {
			e.Pre(apidocs.Doc(api.BaseURL, swgJson))
		}
	}

	return e
}
