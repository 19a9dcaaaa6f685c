// Package gormstore persists users and announcements in PostgreSQL through
// gorm.
package gormstore

import (
	"announcement-board/app/server/models"
	"errors"
	"fmt"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// 唯一约束冲突
const pgUniqueViolation = "23505"

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Announcement{},
	)
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func dbError(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
