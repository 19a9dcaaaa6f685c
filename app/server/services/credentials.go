package services

import (
	"announcement-board/app/server/models"
	"announcement-board/app/server/store"
	"context"
	"errors"
	"fmt"
	"github.com/alexedwards/argon2id"
	"sync"
)

type Credentials struct {
	users  store.Users
	params *argon2id.Params

	dummyOnce sync.Once
	dummyHash string
}

// NewCredentials 的 params 为空时使用 argon2id.DefaultParams
func NewCredentials(users store.Users, params *argon2id.Params) *Credentials {
	if params == nil {
		params = argon2id.DefaultParams
	}

	return &Credentials{
		users:  users,
		params: params,
	}
}

func (s *Credentials) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	return user, nil
}

func (s *Credentials) Create(ctx context.Context, username string, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, invalid("Username and password are required")
	}

	// 只保存 hash
	passwordHash, err := argon2id.CreateHash(password, s.params)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, username, passwordHash)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrDuplicateUser
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// VerifyPassword 重新计算 hash 并以常量时间比较
func (s *Credentials) VerifyPassword(user *models.User, password string) (bool, error) {
	match, _, err := argon2id.CheckHash(password, user.PasswordHash)
	if err != nil {
		return false, fmt.Errorf("check password: %w", err)
	}

	return match, nil
}

// burn 对不存在的用户也计算一次 hash ，使两种登录失败耗时一致
func (s *Credentials) burn(password string) {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = argon2id.CreateHash("dummy-password", s.params)
	})
	if s.dummyHash != "" {
		_, _, _ = argon2id.CheckHash(password, s.dummyHash)
	}
}
