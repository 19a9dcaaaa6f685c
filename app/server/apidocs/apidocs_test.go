package apidocs

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func serve(e *echo.Echo, target string) *httptest.ResponseRecorder {
	res := httptest.NewRecorder()
	e.ServeHTTP(res, httptest.NewRequest(http.MethodGet, target, nil))
	return res
}

func TestDoc(t *testing.T) {
	e := echo.New()
	e.Pre(Doc("/api", []byte(`{"openapi":"3.0.3"}`)))
	e.GET("/api/health", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	res := serve(e, "/api")
	assert.Equal(t, http.StatusFound, res.Code)
	assert.Equal(t, "/api/apidocs", res.Header().Get(echo.HeaderLocation))

	res = serve(e, "/api/apidocs")
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), `data-url="/api/apispec.json"`)

	res = serve(e, "/api/apispec.json")
	assert.Equal(t, http.StatusOK, res.Code)
	assert.JSONEq(t, `{"openapi":"3.0.3"}`, res.Body.String())

	// 其他路径照常处理
	res = serve(e, "/api/health")
	assert.Equal(t, http.StatusOK, res.Code)
}

func TestDoc_Authorizer(t *testing.T) {
	e := echo.New()
	e.Pre(Doc("/api", []byte(`{}`), WithAuthorizer(func(r *http.Request) bool {
		return r.Header.Get("X-Docs") == "yes"
	})))

	res := serve(e, "/api/apispec.json")
	assert.Equal(t, http.StatusForbidden, res.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/apispec.json", nil)
	req.Header.Set("X-Docs", "yes")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
