package inits

import (
	"announcement-board/app/server/store"
	"announcement-board/app/server/store/gormstore"
	"announcement-board/app/server/store/memstore"
	"announcement-board/app/server/store/mongostore"
	"announcement-board/app/server/store/rediscache"
	"context"
	"errors"
	"fmt"
	"go.uber.org/zap"
	"strings"
)

const (
	BackendPostgres = "postgres"
	BackendMongo    = "mongodb"
	BackendMemory   = "memory"
)

// Backend 根据连接字符串判断使用哪种存储
func Backend(conn string) string {
	lower := strings.ToLower(conn)
	switch {
	case strings.HasPrefix(lower, "mongodb://"), strings.HasPrefix(lower, "mongodb+srv://"):
		return BackendMongo
	case strings.HasPrefix(lower, "memory://"):
		return BackendMemory
	default:
		// postgres:// URL 或者 key=value 形式的 DSN
		return BackendPostgres
	}
}

type Stores struct {
	Users         store.Users
	Announcements store.Announcements

	closers []func(ctx context.Context) error
}

// Close 依次关闭打开的连接
func (s *Stores) Close(ctx context.Context) error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func NewStores(ctx context.Context, dbConn, redisConn string, l *zap.Logger) (*Stores, error) {
	s := &Stores{}

	backend := Backend(dbConn)
	switch backend {
	case BackendMongo:
		client, db, err := Mongo(ctx, dbConn)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, client.Disconnect)
		s.Users = mongostore.NewUsers(db)
		s.Announcements = mongostore.NewAnnouncements(db)

	case BackendMemory:
		l.Warn("using in-memory store, all data will be lost on exit")
		s.Users = memstore.NewUsers()
		s.Announcements = memstore.NewAnnouncements()

	default:
		db, err := DB(dbConn, l)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, func(context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		})
		s.Users = gormstore.NewUsers(db)
		s.Announcements = gormstore.NewAnnouncements(db)
	}

	l.Info("store initialized", zap.String("backend", backend))

	// 启用缓存
	if redisConn != "" {
		rdb, err := Redis(ctx, redisConn)
		if err != nil {
			_ = s.Close(ctx)
			return nil, fmt.Errorf("failed to init cache: %w", err)
		}
		s.closers = append(s.closers, func(context.Context) error {
			return rdb.Close()
		})
		s.Announcements = rediscache.NewAnnouncements(s.Announcements, rdb, l)

		l.Info("announcement cache enabled")
	}

	return s, nil
}
