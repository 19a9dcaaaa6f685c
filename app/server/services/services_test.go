package services

import (
	"announcement-board/app/server/jwt"
	"announcement-board/app/server/models"
	"announcement-board/app/server/store"
	"announcement-board/app/server/store/memstore"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/stretchr/testify/require"
)

// 测试用的低成本参数
var testParams = &argon2id.Params{
	Memory:      1024,
	Iterations:  1,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

var errBoom = errors.New("boom")

type fixture struct {
	users         *memstore.Users
	announcements *memstore.Announcements
	creds         *Credentials
	auth          *Auth
	board         *Announcements
	jwt           *jwt.JWT
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	j, err := jwt.New("test-secret", time.Hour)
	require.NoError(t, err)

	f := &fixture{
		users:         memstore.NewUsers(),
		announcements: memstore.NewAnnouncements(),
		jwt:           j,
	}
	f.creds = NewCredentials(f.users, testParams)
	f.auth = NewAuth(f.creds, j)
	f.board = NewAnnouncements(f.announcements)

	return f
}

func (f *fixture) identity(t *testing.T, username, password string) *jwt.Identity {
	t.Helper()

	token, _, err := f.auth.Login(context.Background(), username, password)
	require.NoError(t, err)

	identity, err := f.jwt.Verify(token)
	require.NoError(t, err)

	return identity
}

// failingUsers 模拟底层存储故障
type failingUsers struct{}

func (failingUsers) FindByUsername(context.Context, string) (*models.User, error) {
	return nil, errBoom
}

func (failingUsers) Create(context.Context, string, string) (*models.User, error) {
	return nil, errBoom
}

type failingAnnouncements struct {
	store.Announcements
	deleteErr error
}

func (s failingAnnouncements) ListAll(context.Context) ([]models.Announcement, error) {
	return nil, errBoom
}

func (s failingAnnouncements) DeleteByID(ctx context.Context, id string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	return s.Announcements.DeleteByID(ctx, id)
}
