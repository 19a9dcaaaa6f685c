package handlers

import (
	"announcement-board/app/server/api"
	"announcement-board/app/server/jwt"
	"announcement-board/app/server/middlewares"
	"announcement-board/app/server/models"
	"announcement-board/app/server/services"
	"announcement-board/app/server/store"
	"announcement-board/app/server/store/memstore"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var testParams = &argon2id.Params{
	Memory:      1024,
	Iterations:  1,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

type server struct {
	e     *echo.Echo
	creds *services.Credentials
}

func newServer(t *testing.T, announcements store.Announcements) *server {
	t.Helper()

	l := zaptest.NewLogger(t)

	j, err := jwt.New("test-secret", time.Hour)
	require.NoError(t, err)

	creds := services.NewCredentials(memstore.NewUsers(), testParams)
	app := NewApp(l, services.NewAuth(creds, j), services.NewAnnouncements(announcements))

	e := echo.New()
	api.RegisterHandlers(e, app, middlewares.Auth(j, l))

	return &server{e: e, creds: creds}
}

func (s *server) do(t *testing.T, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = strings.NewReader(string(raw))
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	res := httptest.NewRecorder()
	s.e.ServeHTTP(res, req)

	return res.Code, res.Body.Bytes()
}

func (s *server) login(t *testing.T, username, password string) api.LoginToken {
	t.Helper()

	status, body := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, status, string(body))

	var token api.LoginToken
	require.NoError(t, json.Unmarshal(body, &token))
	return token
}

func message(t *testing.T, body []byte) string {
	t.Helper()

	var msg api.ErrorMessage
	require.NoError(t, json.Unmarshal(body, &msg))
	require.NotNil(t, msg.Message)
	return *msg.Message
}

func TestScenario(t *testing.T) {
	s := newServer(t, memstore.NewAnnouncements())
	ctx := context.Background()

	_, err := s.creds.Create(ctx, "admin", "secret123")
	require.NoError(t, err)
	_, err = s.creds.Create(ctx, "bob", "hunter2")
	require.NoError(t, err)

	admin := s.login(t, "admin", "secret123")
	bob := s.login(t, "bob", "hunter2")
	assert.Equal(t, "admin", admin.User.Username)
	assert.NotEqual(t, admin.User.ID, bob.User.ID)

	// 管理员发布公告
	status, body := s.do(t, http.MethodPost, "/api/announcements", admin.Token, map[string]string{
		"title":   "Hi",
		"content": "World",
	})
	require.Equal(t, http.StatusCreated, status, string(body))

	var created api.Announcement
	require.NoError(t, json.Unmarshal(body, &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Hi", created.Title)
	assert.Equal(t, admin.User.ID, created.AuthorID)
	assert.Equal(t, "admin", created.AuthorName)

	// 其他人不能删除
	status, body = s.do(t, http.MethodDelete, "/api/announcements/"+created.ID, bob.Token, nil)
	require.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "You can only delete your own announcements", message(t, body))

	status, _ = s.do(t, http.MethodGet, "/api/announcements/"+created.ID, "", nil)
	require.Equal(t, http.StatusOK, status)

	// 作者删除
	status, body = s.do(t, http.MethodDelete, "/api/announcements/"+created.ID, admin.Token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"message":"Announcement deleted successfully"}`, string(body))

	status, body = s.do(t, http.MethodGet, "/api/announcements/"+created.ID, "", nil)
	require.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Announcement not found", message(t, body))

	status, _ = s.do(t, http.MethodDelete, "/api/announcements/"+created.ID, admin.Token, nil)
	require.Equal(t, http.StatusNotFound, status)
}

func TestAnnouncementList(t *testing.T) {
	s := newServer(t, memstore.NewAnnouncements())
	_, err := s.creds.Create(context.Background(), "admin", "secret123")
	require.NoError(t, err)
	admin := s.login(t, "admin", "secret123")

	status, body := s.do(t, http.MethodGet, "/api/announcements", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(body))

	for _, title := range []string{"first", "second"} {
		status, _ = s.do(t, http.MethodPost, "/api/announcements", admin.Token, map[string]string{
			"title":   title,
			"content": "c",
		})
		require.Equal(t, http.StatusCreated, status)
	}

	status, body = s.do(t, http.MethodGet, "/api/announcements", "", nil)
	require.Equal(t, http.StatusOK, status)

	var list []api.Announcement
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Title)
	assert.Equal(t, "first", list[1].Title)
}

func TestAnnouncementCreate_BadRequests(t *testing.T) {
	s := newServer(t, memstore.NewAnnouncements())
	_, err := s.creds.Create(context.Background(), "admin", "secret123")
	require.NoError(t, err)
	admin := s.login(t, "admin", "secret123")

	tests := []struct {
		name    string
		body    any
		wantMsg string
	}{
		{"title too long", map[string]string{"title": strings.Repeat("t", 201), "content": "c"}, "Title must be 200 characters or less"},
		{"content too long", map[string]string{"title": "t", "content": strings.Repeat("c", 2001)}, "Content must be 2000 characters or less"},
		{"blank title", map[string]string{"title": "   ", "content": "c"}, "Title and content cannot be empty"},
		{"missing content", map[string]string{"title": "t"}, "Title and content are required"},
		{"invalid json", "{", "Bad Request"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := s.do(t, http.MethodPost, "/api/announcements", admin.Token, tt.body)
			require.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, tt.wantMsg, message(t, body))
		})
	}

	// 校验失败时不会写入
	status, body := s.do(t, http.MethodGet, "/api/announcements", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(body))
}

func TestAnnouncementCreate_RequiresToken(t *testing.T) {
	s := newServer(t, memstore.NewAnnouncements())
	input := map[string]string{"title": "Hi", "content": "World"}

	for _, token := range []string{"", "not-a-token"} {
		status, body := s.do(t, http.MethodPost, "/api/announcements", token, input)
		require.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "Unauthorized", message(t, body))
	}

	status, _ := s.do(t, http.MethodDelete, "/api/announcements/anything", "", nil)
	require.Equal(t, http.StatusUnauthorized, status)

	status, body := s.do(t, http.MethodGet, "/api/announcements", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(body))
}

func TestAuthLogin(t *testing.T) {
	s := newServer(t, memstore.NewAnnouncements())
	user, err := s.creds.Create(context.Background(), "admin", "secret123")
	require.NoError(t, err)

	token := s.login(t, "admin", "secret123")
	assert.NotEmpty(t, token.Token)
	assert.Equal(t, api.UserInfo{ID: user.ID, Username: "admin"}, token.User)

	tests := []struct {
		name       string
		body       any
		wantStatus int
		wantMsg    string
	}{
		{"wrong password", map[string]string{"username": "admin", "password": "wrong"}, http.StatusUnauthorized, "Invalid credentials"},
		{"unknown user", map[string]string{"username": "ghost", "password": "secret123"}, http.StatusUnauthorized, "Invalid credentials"},
		{"missing password", map[string]string{"username": "admin"}, http.StatusBadRequest, "Username and password are required"},
		{"missing username", map[string]string{"password": "secret123"}, http.StatusBadRequest, "Username and password are required"},
		{"empty username", map[string]string{"username": "", "password": "secret123"}, http.StatusBadRequest, "Username and password are required"},
		{"invalid json", "{", http.StatusBadRequest, "Bad Request"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := s.do(t, http.MethodPost, "/api/auth/login", "", tt.body)
			require.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, message(t, body))
			assert.NotContains(t, string(body), "token")
		})
	}
}

func TestHealthCheck(t *testing.T) {
	s := newServer(t, memstore.NewAnnouncements())

	status, body := s.do(t, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"message":"Server is running"}`, string(body))
}

// brokenStore 模拟数据库故障
type brokenStore struct {
	store.Announcements
}

var errDown = errors.New("database is down")

func (brokenStore) ListAll(context.Context) ([]models.Announcement, error) {
	return nil, errDown
}

func (brokenStore) FindByID(context.Context, string) (*models.Announcement, error) {
	return nil, errDown
}

func TestInternalErrorsAreHidden(t *testing.T) {
	s := newServer(t, brokenStore{Announcements: memstore.NewAnnouncements()})

	for _, path := range []string{"/api/announcements", "/api/announcements/some-id"} {
		status, body := s.do(t, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, "Internal Server Error", message(t, body))
		assert.NotContains(t, string(body), errDown.Error())
	}
}
