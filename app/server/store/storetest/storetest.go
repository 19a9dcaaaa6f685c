// Package storetest holds the behaviour every store backend must share. Each
// backend's tests call these with a constructor returning an empty store.
package storetest

import (
	"announcement-board/app/server/store"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func RunUsers(t *testing.T, newStore func(t *testing.T) store.Users) {
	t.Run("create and find", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		created, err := s.Create(ctx, "admin", "$argon2id$hash")
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "admin", created.Username)
		assert.Equal(t, "$argon2id$hash", created.PasswordHash)

		found, err := s.FindByUsername(ctx, "admin")
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, "$argon2id$hash", found.PasswordHash)
	})

	t.Run("username is case sensitive", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		_, err := s.Create(ctx, "admin", "h")
		require.NoError(t, err)

		_, err = s.FindByUsername(ctx, "Admin")
		require.ErrorIs(t, err, store.ErrNotFound)

		_, err = s.Create(ctx, "Admin", "h")
		require.NoError(t, err)
	})

	t.Run("duplicate username", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		_, err := s.Create(ctx, "admin", "h1")
		require.NoError(t, err)

		_, err = s.Create(ctx, "admin", "h2")
		require.ErrorIs(t, err, store.ErrDuplicate)

		found, err := s.FindByUsername(ctx, "admin")
		require.NoError(t, err)
		assert.Equal(t, "h1", found.PasswordHash)
	})

	t.Run("unknown username", func(t *testing.T) {
		s := newStore(t)

		_, err := s.FindByUsername(context.Background(), "ghost")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func RunAnnouncements(t *testing.T, newStore func(t *testing.T) store.Announcements) {
	t.Run("create and find", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		created, err := s.Create(ctx, "Hi", "World", "author-1", "admin")
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.False(t, created.CreatedAt.IsZero())
		assert.False(t, created.UpdatedAt.IsZero())

		found, err := s.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, "Hi", found.Title)
		assert.Equal(t, "World", found.Content)
		assert.Equal(t, "author-1", found.AuthorID)
		assert.Equal(t, "admin", found.AuthorName)
		assert.WithinDuration(t, created.CreatedAt, found.CreatedAt, time.Millisecond)
	})

	t.Run("ids are unique", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		seen := make(map[string]bool)
		for i := 0; i < 10; i++ {
			a, err := s.Create(ctx, "t", "c", "author-1", "admin")
			require.NoError(t, err)
			require.False(t, seen[a.ID], "duplicate id %s", a.ID)
			seen[a.ID] = true
		}
	})

	t.Run("list newest first", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		list, err := s.ListAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, list)

		var ids []string
		for i := 0; i < 5; i++ {
			a, err := s.Create(ctx, "t", "c", "author-1", "admin")
			require.NoError(t, err)
			ids = append(ids, a.ID)
		}

		list, err = s.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, list, len(ids))

		for i := range list {
			// 最后插入的排在最前
			assert.Equal(t, ids[len(ids)-1-i], list[i].ID)
			if i > 0 {
				assert.False(t, list[i].CreatedAt.After(list[i-1].CreatedAt), "createdAt increases at %d", i)
			}
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		for _, id := range []string{"", "missing", "00000000-0000-0000-0000-000000000000", "64b7f0c2a1b2c3d4e5f60718"} {
			_, err := s.FindByID(ctx, id)
			assert.ErrorIs(t, err, store.ErrNotFound, "find %q", id)

			err = s.DeleteByID(ctx, id)
			assert.ErrorIs(t, err, store.ErrNotFound, "delete %q", id)
		}
	})

	t.Run("delete", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		keep, err := s.Create(ctx, "keep", "c", "author-1", "admin")
		require.NoError(t, err)
		drop, err := s.Create(ctx, "drop", "c", "author-1", "admin")
		require.NoError(t, err)

		require.NoError(t, s.DeleteByID(ctx, drop.ID))

		_, err = s.FindByID(ctx, drop.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
		require.ErrorIs(t, s.DeleteByID(ctx, drop.ID), store.ErrNotFound)

		list, err := s.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, keep.ID, list[0].ID)
	})

	t.Run("concurrent deletes", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		a, err := s.Create(ctx, "t", "c", "author-1", "admin")
		require.NoError(t, err)

		const workers = 8
		errs := make([]error, workers)

		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = s.DeleteByID(ctx, a.ID)
			}(i)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
			} else {
				assert.ErrorIs(t, err, store.ErrNotFound)
			}
		}
		assert.Equal(t, 1, succeeded)
	})
}
