package gormstore

import (
	"announcement-board/app/server/models"
	"announcement-board/app/server/store"
	"context"
	"errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var _ store.Announcements = (*Announcements)(nil)

type Announcements struct {
	db *gorm.DB
}

func NewAnnouncements(db *gorm.DB) *Announcements {
	return &Announcements{db: db}
}

func (s *Announcements) Create(ctx context.Context, title, content, authorID, authorName string) (*models.Announcement, error) {
	announcement := models.Announcement{
		ID:         uuid.NewString(),
		Title:      title,
		Content:    content,
		AuthorID:   authorID,
		AuthorName: authorName,
	}

	if err := s.db.WithContext(ctx).Create(&announcement).Error; err != nil {
		return nil, dbError("create announcement", err)
	}

	return &announcement, nil
}

func (s *Announcements) ListAll(ctx context.Context) ([]models.Announcement, error) {
	list := []models.Announcement{}
	if err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Order("seq DESC").
		Find(&list).Error; err != nil {
		return nil, dbError("list announcements", err)
	}

	return list, nil
}

func (s *Announcements) FindByID(ctx context.Context, id string) (*models.Announcement, error) {
	var announcement models.Announcement
	if err := s.db.WithContext(ctx).First(&announcement, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, dbError("find announcement", err)
	}

	return &announcement, nil
}

func (s *Announcements) DeleteByID(ctx context.Context, id string) error {
	// 以影响行数判断是否存在，并发删除时只有一个能成功
	res := s.db.WithContext(ctx).Delete(&models.Announcement{}, "id = ?", id)
	if res.Error != nil {
		return dbError("delete announcement", res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}

	return nil
}
