package memstore

import (
	"announcement-board/app/server/models"
	"announcement-board/app/server/store"
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

var _ store.Announcements = (*Announcements)(nil)

type Announcements struct {
	mu    sync.RWMutex
	opts  options
	items []*models.Announcement // 按插入顺序
	seq   uint64
}

func NewAnnouncements(opts ...Option) *Announcements {
	return &Announcements{
		opts: buildOptions(opts),
	}
}

func (s *Announcements) Create(_ context.Context, title, content, authorID, authorName string) (*models.Announcement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	now := s.opts.now()
	announcement := &models.Announcement{
		ID:         uuid.NewString(),
		Seq:        s.seq,
		Title:      title,
		Content:    content,
		AuthorID:   authorID,
		AuthorName: authorName,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.items = append(s.items, announcement)

	a := *announcement
	return &a, nil
}

func (s *Announcements) ListAll(_ context.Context) ([]models.Announcement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]models.Announcement, 0, len(s.items))
	for i := len(s.items) - 1; i >= 0; i-- {
		list = append(list, *s.items[i])
	}

	// 倒序遍历后稳定排序，时间相同的记录保持后插入在前
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})

	return list, nil
}

func (s *Announcements) FindByID(_ context.Context, id string) (*models.Announcement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, announcement := range s.items {
		if announcement.ID == id {
			a := *announcement
			return &a, nil
		}
	}

	return nil, store.ErrNotFound
}

func (s *Announcements) DeleteByID(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, announcement := range s.items {
		if announcement.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}

	return store.ErrNotFound
}
