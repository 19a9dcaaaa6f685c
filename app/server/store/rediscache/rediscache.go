// Package rediscache wraps a store.Announcements with a redis read-through
// cache. Redis failures are logged and the call falls through to the backing
// store.
//
// Deleted ids leave a tombstone under their item key and fills use SETNX, so
// a read that raced with the delete cannot put the record back. The list is
// cached under a generation number that every write bumps.
package rediscache

import (
	"announcement-board/app/server/constants"
	"announcement-board/app/server/models"
	"announcement-board/app/server/store"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"time"
)

var _ store.Announcements = (*Announcements)(nil)

type Announcements struct {
	next store.Announcements
	rdb  *redis.Client
	l    *zap.Logger
}

func NewAnnouncements(next store.Announcements, rdb *redis.Client, l *zap.Logger) *Announcements {
	return &Announcements{
		next: next,
		rdb:  rdb,
		l:    l,
	}
}

func (s *Announcements) Create(ctx context.Context, title, content, authorID, authorName string) (*models.Announcement, error) {
	announcement, err := s.next.Create(ctx, title, content, authorID, authorName)
	if err != nil {
		return nil, err
	}

	// 列表已经过期
	s.bumpGeneration(ctx)

	return announcement, nil
}

func (s *Announcements) ListAll(ctx context.Context) ([]models.Announcement, error) {
	generation, ok := s.generation(ctx)
	if !ok {
		return s.next.ListAll(ctx)
	}

	cacheKey := fmt.Sprintf(constants.CacheKeyAnnouncementList, generation)

	var list []models.Announcement
	if cacheBytes, hit := s.get(ctx, cacheKey); hit {
		if s.decode(ctx, cacheKey, cacheBytes, &list) {
			return list, nil
		}
	}

	list, err := s.next.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	// 读取期间有写入时版本号已经变化，这里写入的旧版本不会再被读到
	s.fill(ctx, cacheKey, list, constants.CacheExpireAnnouncementList)

	return list, nil
}

func (s *Announcements) FindByID(ctx context.Context, id string) (*models.Announcement, error) {
	cacheKey := fmt.Sprintf(constants.CacheKeyAnnouncement, id)

	if cacheBytes, hit := s.get(ctx, cacheKey); hit {
		if string(cacheBytes) == constants.CacheTombstone {
			return nil, store.ErrNotFound
		}

		var announcement models.Announcement
		if s.decode(ctx, cacheKey, cacheBytes, &announcement) {
			return &announcement, nil
		}
	}

	// 不存在的记录不缓存
	found, err := s.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.fill(ctx, cacheKey, found, constants.CacheExpireAnnouncement)

	return found, nil
}

func (s *Announcements) DeleteByID(ctx context.Context, id string) error {
	err := s.next.DeleteByID(ctx, id)

	cacheKey := fmt.Sprintf(constants.CacheKeyAnnouncement, id)
	if err == nil || errors.Is(err, store.ErrNotFound) {
		// id 不会被复用，覆盖掉可能存在的缓存
		if setErr := s.rdb.Set(ctx, cacheKey, constants.CacheTombstone, constants.CacheExpireAnnouncementTombstone).Err(); setErr != nil {
			s.l.Error("failed to set tombstone", zap.String("key", cacheKey), zap.Error(setErr))
		}
	} else {
		s.del(ctx, cacheKey)
	}

	s.bumpGeneration(ctx)

	return err
}

func (s *Announcements) generation(ctx context.Context) (int64, bool) {
	generation, err := s.rdb.Get(ctx, constants.CacheKeyAnnouncementGeneration).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, true
		}
		s.l.Error("failed to query cache generation", zap.Error(err))
		return 0, false
	}

	return generation, true
}

func (s *Announcements) bumpGeneration(ctx context.Context) {
	if err := s.rdb.Incr(ctx, constants.CacheKeyAnnouncementGeneration).Err(); err != nil {
		s.l.Error("failed to bump cache generation", zap.Error(err))
	}
}

func (s *Announcements) get(ctx context.Context, cacheKey string) ([]byte, bool) {
	cacheBytes, err := s.rdb.Get(ctx, cacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.l.Error("failed to query cache", zap.String("key", cacheKey), zap.Error(err))
		}
		return nil, false
	}

	return cacheBytes, true
}

func (s *Announcements) decode(ctx context.Context, cacheKey string, cacheBytes []byte, target any) bool {
	if err := json.Unmarshal(cacheBytes, target); err != nil {
		s.l.Error("failed to unmarshal cache", zap.String("key", cacheKey), zap.ByteString("cacheBytes", cacheBytes), zap.Error(err))
		// 可能是无效的缓存，清理掉
		s.del(ctx, cacheKey)
		return false
	}

	return true
}

// fill 只在键不存在时写入，不会覆盖墓碑
func (s *Announcements) fill(ctx context.Context, cacheKey string, value any, expire time.Duration) {
	cacheBytes, err := json.Marshal(value)
	if err != nil {
		s.l.Error("failed to marshal cache", zap.String("key", cacheKey), zap.Error(err))
		return
	}

	if err = s.rdb.SetNX(ctx, cacheKey, cacheBytes, expire).Err(); err != nil {
		s.l.Error("failed to set cache", zap.String("key", cacheKey), zap.Error(err))
	}
}

func (s *Announcements) del(ctx context.Context, cacheKeys ...string) {
	if err := s.rdb.Del(ctx, cacheKeys...).Err(); err != nil {
		s.l.Error("failed to delete cache", zap.Strings("keys", cacheKeys), zap.Error(err))
	}
}
