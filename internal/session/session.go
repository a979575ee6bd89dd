// Package session keeps the bearer token in a client cookie and exposes its
// decoded role and user id to every request handled by the engine.
package session

import (
	"encoding/gob"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"frontend-gin/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	CookieName = "epicare_session"

	tokenKey   = "token"
	draftKey   = "draft_id"
	contextKey = "session.state"
)

var (
	// ErrNoToken is returned when no token is stored.
	ErrNoToken = errors.New("no token stored")
	// ErrInvalidToken is returned when a token cannot be decoded into a session.
	ErrInvalidToken = errors.New("invalid token")
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Kind    string
	Message string
}

const (
	FlashSuccess = "success"
	FlashError   = "error"
)

func init() {
	gob.Register(Flash{})
}

// State is what handlers see of the current session.
type State struct {
	models.Session
	Authenticated bool
	Claims        jwt.MapClaims
}

type Manager struct {
	store sessions.Store
	now   func() time.Time
}

func NewManager(secret string, secure bool) *Manager {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int((7 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Manager{store: store, now: time.Now}
}

// Decode reads role and user id from token without verifying its signature;
// the backend verifies it on every call. A token without a role claim, or
// with an expiry in the past, is rejected.
func Decode(token string, now time.Time) (models.Session, jwt.MapClaims, error) {
	if token == "" {
		return models.Session{}, nil, ErrNoToken
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return models.Session{}, nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	role, _ := claims["role"].(string)
	if role == "" {
		return models.Session{}, nil, fmt.Errorf("%w: missing role claim", ErrInvalidToken)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return models.Session{}, nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if exp != nil && !now.Before(exp.Time) {
		return models.Session{}, nil, fmt.Errorf("%w: token expired", ErrInvalidToken)
	}

	return models.Session{
		Token:  token,
		Role:   models.Role(role),
		UserID: userID(claims),
	}, claims, nil
}

func userID(claims jwt.MapClaims) string {
	for _, key := range []string{"id", "userId", "user_id", "sub"} {
		switch v := claims[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

// Middleware decodes the stored token once per request. A token that no
// longer decodes is removed from the cookie.
func (m *Manager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		state := State{}

		sess, err := m.store.Get(c.Request, CookieName)
		if err != nil {
			// Tampered or rotated cookie; gorilla still hands back a fresh session.
			slog.Warn("session cookie rejected", "error", err)
		}

		if token, _ := sess.Values[tokenKey].(string); token != "" {
			decoded, claims, err := Decode(token, m.now())
			if err != nil {
				slog.Info("dropping stored token", "error", err)
				delete(sess.Values, tokenKey)
				if err := sess.Save(c.Request, c.Writer); err != nil {
					slog.Error(fmt.Errorf("clear session: %w", err).Error())
				}
			} else {
				state = State{Session: decoded, Authenticated: true, Claims: claims}
			}
		}

		c.Set(contextKey, state)
		c.Next()
	}
}

// FromContext returns the state stored by Middleware. Outside of it the
// state is unauthenticated.
func FromContext(c *gin.Context) State {
	if v, ok := c.Get(contextKey); ok {
		if state, ok := v.(State); ok {
			return state
		}
	}
	return State{}
}

// Save decodes token and, when it is usable, persists it and refreshes the
// request's state.
func (m *Manager) Save(c *gin.Context, token string) (models.Session, error) {
	decoded, claims, err := Decode(token, m.now())
	if err != nil {
		return models.Session{}, err
	}

	sess, _ := m.store.Get(c.Request, CookieName)
	sess.Values[tokenKey] = token
	if err := sess.Save(c.Request, c.Writer); err != nil {
		return models.Session{}, fmt.Errorf("save session: %w", err)
	}

	c.Set(contextKey, State{Session: decoded, Authenticated: true, Claims: claims})
	return decoded, nil
}

// Clear signs the browser out. The draft id goes with it.
func (m *Manager) Clear(c *gin.Context) error {
	sess, _ := m.store.Get(c.Request, CookieName)
	delete(sess.Values, tokenKey)
	delete(sess.Values, draftKey)
	if err := sess.Save(c.Request, c.Writer); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	c.Set(contextKey, State{})
	return nil
}

// DraftID returns the id under which this browser's wizard draft is stored,
// allocating one on first use.
func (m *Manager) DraftID(c *gin.Context) (string, error) {
	sess, _ := m.store.Get(c.Request, CookieName)
	if id, _ := sess.Values[draftKey].(string); id != "" {
		return id, nil
	}

	id := uuid.NewString()
	sess.Values[draftKey] = id
	if err := sess.Save(c.Request, c.Writer); err != nil {
		return "", fmt.Errorf("save draft id: %w", err)
	}
	return id, nil
}

func (m *Manager) AddFlash(c *gin.Context, kind, message string) {
	sess, _ := m.store.Get(c.Request, CookieName)
	sess.AddFlash(Flash{Kind: kind, Message: message})
	if err := sess.Save(c.Request, c.Writer); err != nil {
		slog.Error(fmt.Errorf("add flash: %w", err).Error())
	}
}

// Flashes pops every pending flash.
func (m *Manager) Flashes(c *gin.Context) []Flash {
	sess, _ := m.store.Get(c.Request, CookieName)
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := sess.Save(c.Request, c.Writer); err != nil {
		slog.Error(fmt.Errorf("pop flashes: %w", err).Error())
	}

	flashes := make([]Flash, 0, len(raw))
	for _, v := range raw {
		if f, ok := v.(Flash); ok {
			flashes = append(flashes, f)
		}
	}
	return flashes
}

// RequireRole lets a request through only when the :role path segment is the
// role of the decoded token. Everything else goes to redirectTo.
func RequireRole(redirectTo string) gin.HandlerFunc {
	return func(c *gin.Context) {
		state := FromContext(c)
		role := models.Role(c.Param("role"))

		if !state.Authenticated || state.Role == "" || state.Role != role {
			slog.Info("role gate rejected request",
				"path", c.Request.URL.Path,
				"url_role", role,
				"token_role", state.Role,
				"authenticated", state.Authenticated,
			)
			c.Redirect(http.StatusFound, redirectTo)
			c.Abort()
			return
		}
		c.Next()
	}
}
