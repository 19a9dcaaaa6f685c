package memstore

import (
	"announcement-board/app/server/models"
	"announcement-board/app/server/store"
	"context"
	"sync"

	"github.com/google/uuid"
)

var _ store.Users = (*Users)(nil)

type Users struct {
	mu    sync.RWMutex
	opts  options
	users map[string]*models.User // 以用户名为键
}

func NewUsers(opts ...Option) *Users {
	return &Users{
		opts:  buildOptions(opts),
		users: make(map[string]*models.User),
	}
}

func (s *Users) FindByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[username]
	if !ok {
		return nil, store.ErrNotFound
	}

	u := *user
	return &u, nil
}

func (s *Users) Create(_ context.Context, username string, passwordHash string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exist := s.users[username]; exist {
		return nil, store.ErrDuplicate
	}

	now := s.opts.now()
	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.users[username] = user

	u := *user
	return &u, nil
}

// Rename 模拟用户名变更，只在测试中使用，不属于 store.Users
func (s *Users) Rename(oldUsername, newUsername string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[oldUsername]
	if !ok {
		return false
	}
	if _, taken := s.users[newUsername]; taken {
		return false
	}

	delete(s.users, oldUsername)
	user.Username = newUsername
	user.UpdatedAt = s.opts.now()
	s.users[newUsername] = user

	return true
}
