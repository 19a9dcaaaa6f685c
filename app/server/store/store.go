// Package store defines the persistence contracts of the board. Backends
// live in the sub packages and are selected at startup from the connection
// string.
package store

import (
	"announcement-board/app/server/models"
	"context"
	"errors"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

type Users interface {
	// FindByUsername 按用户名精确（区分大小写）查找，不存在时返回 ErrNotFound
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	// Create 写入用户，用户名重复时返回 ErrDuplicate
	Create(ctx context.Context, username string, passwordHash string) (*models.User, error)
}

type Announcements interface {
	// Create 不再校验内容，调用方负责去除空白并检查长度
	Create(ctx context.Context, title, content, authorID, authorName string) (*models.Announcement, error)
	// ListAll 按 created_at 倒序返回，时间相同时后插入的在前
	ListAll(ctx context.Context) ([]models.Announcement, error)
	FindByID(ctx context.Context, id string) (*models.Announcement, error)
	DeleteByID(ctx context.Context, id string) error
}
