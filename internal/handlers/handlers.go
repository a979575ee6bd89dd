// Package handlers wires the pages and JSON endpoints onto gin.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"frontend-gin/internal/backend"
	"frontend-gin/internal/dashboard"
	"frontend-gin/internal/session"
	"frontend-gin/internal/web"

	"github.com/gin-gonic/gin"
)

// Backend is every backend call the handlers and their sections make.
type Backend interface {
	dashboard.API
	SignIn(ctx context.Context, req backend.SignInRequest) (*backend.AuthResult, error)
	SignUp(ctx context.Context, req backend.SignUpRequest) (*backend.AuthResult, error)
	Heatmap(ctx context.Context) (json.RawMessage, error)
}

type Handler struct {
	api      Backend
	sessions *session.Manager
	loader   *dashboard.Loader
	renderer *web.Renderer
}

func New(api Backend, sessions *session.Manager, loader *dashboard.Loader, renderer *web.Renderer) *Handler {
	return &Handler{api: api, sessions: sessions, loader: loader, renderer: renderer}
}

// render writes page name inside the layout. Pending flashes are popped here,
// before any body is written.
func (h *Handler) render(c *gin.Context, status int, name, title string, data any) {
	state := session.FromContext(c)
	c.HTML(status, name, web.Page{
		Title:    title,
		Path:     c.Request.URL.Path,
		User:     state.Session,
		SignedIn: state.Authenticated,
		Flashes:  h.sessions.Flashes(c),
		Data:     data,
	})
}

// failureStatus passes backend client errors through and reports everything
// else as a bad gateway.
func failureStatus(err error) int {
	var backendErr *backend.Error
	if errors.As(err, &backendErr) && backendErr.Status >= 400 && backendErr.Status < 500 {
		return backendErr.Status
	}
	return http.StatusBadGateway
}

func (h *Handler) Home(c *gin.Context) {
	h.render(c, http.StatusOK, web.PageHome, "Home", nil)
}

func (h *Handler) NotFound(c *gin.Context) {
	h.render(c, http.StatusNotFound, web.PageNotFound, "Page Not Found", nil)
}

func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
