// Package api describes the HTTP surface of the board: the handler interface,
// the route table and the request/response bodies. The same surface is
// documented in openapi.yaml.
package api

import (
	"github.com/labstack/echo/v4"
	"time"
)

// ServerInterface is implemented by the handler app. Routes with an {id}
// path parameter receive it already extracted.
type ServerInterface interface {
	HealthCheck(c echo.Context) error                   // GET /health
	AuthLogin(c echo.Context) error                     // POST /auth/login
	AnnouncementList(c echo.Context) error              // GET /announcements
	AnnouncementCreate(c echo.Context) error            // POST /announcements
	AnnouncementGet(c echo.Context, id string) error    // GET /announcements/{id}
	AnnouncementDelete(c echo.Context, id string) error // DELETE /announcements/{id}
}

// Router is satisfied by *echo.Echo and *echo.Group.
type Router interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers mounts every route under BaseURL. Routes that need a
// signed-in caller are wrapped with auth.
func RegisterHandlers(router Router, si ServerInterface, auth echo.MiddlewareFunc) {
	withID := func(h func(echo.Context, string) error) echo.HandlerFunc {
		return func(c echo.Context) error {
			return h(c, c.Param("id"))
		}
	}

	router.GET(BaseURL+"/health", si.HealthCheck)
	router.POST(BaseURL+"/auth/login", si.AuthLogin)
	router.GET(BaseURL+"/announcements", si.AnnouncementList)
	router.POST(BaseURL+"/announcements", si.AnnouncementCreate, auth)
	router.GET(BaseURL+"/announcements/:id", withID(si.AnnouncementGet))
	router.DELETE(BaseURL+"/announcements/:id", withID(si.AnnouncementDelete), auth)
}

const BaseURL = "/api"

type ErrorMessage struct {
	Message *string `json:"message,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// LoginRequest 中缺失的字段保持为 nil
type LoginRequest struct {
	Username *string `json:"username,omitempty"`
	Password *string `json:"password,omitempty"`
}

type UserInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type LoginToken struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

// AnnouncementInput 中缺失的字段保持为 nil
type AnnouncementInput struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

type Announcement struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Status texts used in error bodies that differ from http.StatusText.
const (
	MessageAnnouncementNotFound = "Announcement not found"
	MessageDeleteForbidden      = "You can only delete your own announcements"
	MessageDeleted              = "Announcement deleted successfully"
	MessageFieldsRequired       = "Title and content are required"
	MessageCredentialsRequired  = "Username and password are required"
	MessageInvalidCredentials   = "Invalid credentials"
	MessageServerRunning        = "Server is running"
)
