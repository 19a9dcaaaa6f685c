package middlewares

import (
	"announcement-board/app/server/jwt"
	"announcement-board/app/server/models"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newProtected(t *testing.T, j *jwt.JWT) (*echo.Echo, *observer.ObservedLogs) {
	t.Helper()

	core, logs := observer.New(zap.InfoLevel)
	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		identity, ok := Identity(c)
		if !ok {
			return c.NoContent(http.StatusTeapot)
		}

		// 请求 context 中也应该有同一个身份
		fromCtx, ok := jwt.FromContext(c.Request().Context())
		if !ok || fromCtx != identity {
			return c.NoContent(http.StatusTeapot)
		}

		return c.String(http.StatusOK, identity.UserID+"/"+identity.Username)
	}, Auth(j, zap.New(core)))

	return e, logs
}

func do(e *echo.Echo, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	res := httptest.NewRecorder()
	e.ServeHTTP(res, req)
	return res
}

func TestAuth(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	j, err := jwt.New("test-secret", time.Hour, jwt.WithClock(clock))
	require.NoError(t, err)

	other, err := jwt.New("other-secret", time.Hour, jwt.WithClock(clock))
	require.NoError(t, err)

	past, err := jwt.New("test-secret", time.Hour, jwt.WithClock(func() time.Time { return now.Add(-2 * time.Hour) }))
	require.NoError(t, err)

	user := &models.User{ID: "user-1", Username: "admin"}

	valid, err := j.Issue(user)
	require.NoError(t, err)
	forged, err := other.Issue(user)
	require.NoError(t, err)
	expired, err := past.Issue(user)
	require.NoError(t, err)

	tests := []struct {
		name          string
		authorization string
		wantStatus    int
		wantReason    string
	}{
		{"valid token", "Bearer " + valid, http.StatusOK, ""},
		{"lowercase scheme", "bearer " + valid, http.StatusOK, ""},
		{"no header", "", http.StatusUnauthorized, ReasonMissing},
		{"other scheme", "Basic YWRtaW46c2VjcmV0", http.StatusUnauthorized, ReasonMissing},
		{"bare token", valid, http.StatusUnauthorized, ReasonMissing},
		{"garbage", "Bearer not-a-token", http.StatusUnauthorized, ReasonMalformed},
		{"wrong secret", "Bearer " + forged, http.StatusUnauthorized, ReasonMalformed},
		{"expired", "Bearer " + expired, http.StatusUnauthorized, ReasonExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, logs := newProtected(t, j)

			res := do(e, tt.authorization)
			require.Equal(t, tt.wantStatus, res.Code)

			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "user-1/admin", res.Body.String())
				assert.Zero(t, logs.Len())
				return
			}

			// 所有失败原因返回同样的响应体
			assert.JSONEq(t, `{"message":"Unauthorized"}`, res.Body.String())

			entries := logs.FilterMessage("unauthenticated request").All()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.wantReason, entries[0].ContextMap()["reason"])
		})
	}
}

func TestReason(t *testing.T) {
	assert.Equal(t, ReasonExpired, Reason(jwt.ErrExpired))
	assert.Equal(t, ReasonMalformed, Reason(jwt.ErrMalformed))
	assert.Equal(t, ReasonMissing, Reason(nil))
}
