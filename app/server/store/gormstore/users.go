package gormstore

import (
	"announcement-board/app/server/models"
	"announcement-board/app/server/store"
	"context"
	"errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var _ store.Users = (*Users)(nil)

type Users struct {
	db *gorm.DB
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

func (s *Users) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, dbError("find user", err)
	}

	return &user, nil
}

func (s *Users) Create(ctx context.Context, username string, passwordHash string) (*models.User, error) {
	user := models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrDuplicate
		}
		return nil, dbError("create user", err)
	}

	return &user, nil
}
