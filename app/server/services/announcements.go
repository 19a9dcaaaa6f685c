package services

import (
	"announcement-board/app/server/jwt"
	"announcement-board/app/server/models"
	"announcement-board/app/server/store"
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	TitleMaxLength   = 200
	ContentMaxLength = 2000
)

type Announcements struct {
	store store.Announcements
}

func NewAnnouncements(s store.Announcements) *Announcements {
	return &Announcements{store: s}
}

// ValidateInput 去除首尾空白后检查标题和正文，返回处理后的值
func ValidateInput(title, content string) (string, string, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)

	if title == "" || content == "" {
		return "", "", invalid("Title and content cannot be empty")
	}
	if utf8.RuneCountInString(title) > TitleMaxLength {
		return "", "", invalid(fmt.Sprintf("Title must be %d characters or less", TitleMaxLength))
	}
	if utf8.RuneCountInString(content) > ContentMaxLength {
		return "", "", invalid(fmt.Sprintf("Content must be %d characters or less", ContentMaxLength))
	}

	return title, content, nil
}

func (s *Announcements) Create(ctx context.Context, who *jwt.Identity, title, content string) (*models.Announcement, error) {
	if who == nil {
		return nil, errors.New("create announcement: no identity")
	}

	// 校验失败时不写入
	title, content, err := ValidateInput(title, content)
	if err != nil {
		return nil, err
	}

	announcement, err := s.store.Create(ctx, title, content, who.UserID, who.Username)
	if err != nil {
		return nil, fmt.Errorf("create announcement: %w", err)
	}

	return announcement, nil
}

func (s *Announcements) List(ctx context.Context) ([]models.Announcement, error) {
	list, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}

	return list, nil
}

func (s *Announcements) Get(ctx context.Context, id string) (*models.Announcement, error) {
	announcement, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find announcement: %w", err)
	}

	return announcement, nil
}

// Delete 先确认记录存在，再按作者 ID 鉴权，用户名只是快照，不参与判断
func (s *Announcements) Delete(ctx context.Context, who *jwt.Identity, id string) error {
	if who == nil {
		return errors.New("delete announcement: no identity")
	}

	announcement, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if announcement.AuthorID != who.UserID {
		return ErrForbidden
	}

	if err = s.store.DeleteByID(ctx, id); err != nil {
		// 并发删除时后到的请求看到的是不存在
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete announcement: %w", err)
	}

	return nil
}
