package handlers

import (
	"announcement-board/app/server/api"
	"announcement-board/app/server/middlewares"
	"announcement-board/app/server/models"
	"announcement-board/app/server/services"
	"errors"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
)

func announcementToAPI(announcement *models.Announcement) api.Announcement {
	return api.Announcement{
		ID:         announcement.ID,
		Title:      announcement.Title,
		Content:    announcement.Content,
		AuthorID:   announcement.AuthorID,
		AuthorName: announcement.AuthorName,
		CreatedAt:  announcement.CreatedAt,
		UpdatedAt:  announcement.UpdatedAt,
	}
}

func (a *App) AnnouncementList(c echo.Context) error {
	rctx := c.Request().Context()

	list, err := a.announcements.List(rctx)
	if err != nil {
		a.l.Error("failed to list announcements", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 转换格式，空列表也返回数组
	resp := make([]api.Announcement, len(list))
	for i := range list {
		resp[i] = announcementToAPI(&list[i])
	}

	return c.JSON(http.StatusOK, resp)
}

func (a *App) AnnouncementGet(c echo.Context, id string) error {
	rctx := c.Request().Context()

	announcement, err := a.announcements.Get(rctx, id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return a.er(c, http.StatusNotFound, api.MessageAnnouncementNotFound)
		}
		a.l.Error("failed to get announcement", zap.String("id", id), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, announcementToAPI(announcement))
}

func (a *App) AnnouncementCreate(c echo.Context) error {
	// 抓取身份信息
	identity, ok := middlewares.Identity(c)
	if !ok {
		return a.er(c, http.StatusUnauthorized)
	}

	rctx := c.Request().Context()

	// 绑定请求体
	var req api.AnnouncementInput
	if err := c.Bind(&req); err != nil {
		a.l.Debug("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	if req.Title == nil || req.Content == nil {
		return a.er(c, http.StatusBadRequest, api.MessageFieldsRequired)
	}

	// 创建公告
	announcement, err := a.announcements.Create(rctx, identity, *req.Title, *req.Content)
	if err != nil {
		var vErr *services.ValidationError
		if errors.As(err, &vErr) {
			return a.er(c, http.StatusBadRequest, vErr.Message)
		}
		a.l.Error("failed to create announcement", zap.String("authorID", identity.UserID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusCreated, announcementToAPI(announcement))
}

func (a *App) AnnouncementDelete(c echo.Context, id string) error {
	// 抓取身份信息
	identity, ok := middlewares.Identity(c)
	if !ok {
		return a.er(c, http.StatusUnauthorized)
	}

	rctx := c.Request().Context()

	if err := a.announcements.Delete(rctx, identity, id); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return a.er(c, http.StatusNotFound, api.MessageAnnouncementNotFound)
		case errors.Is(err, services.ErrForbidden):
			return a.er(c, http.StatusForbidden, api.MessageDeleteForbidden)
		default:
			a.l.Error("failed to delete announcement", zap.String("id", id), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	return c.JSON(http.StatusOK, &api.MessageResponse{
		Message: api.MessageDeleted,
	})
}
