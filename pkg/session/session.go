// Package session turns the signed "token" cookie into an explicit Session
// value that is handed to every authenticated handler.
//
// Handlers never read cookies themselves:
//
//	sessions := session.NewManager()
//	r.Get("/me", "me", sessions.Required(func(c *ctx.Context, s session.Session) {
//	    c.Success(map[string]string{"email": s.Email})
//	}))
package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/shashiranjanraj/plantnet/config"
	"github.com/shashiranjanraj/plantnet/pkg/auth"
	"github.com/shashiranjanraj/plantnet/pkg/cache"
	"github.com/shashiranjanraj/plantnet/pkg/ctx"
	"github.com/shashiranjanraj/plantnet/pkg/logger"
)

// CookieName is the cookie that carries the session token.
const CookieName = "token"

var (
	ErrNoSession = errors.New("session: no session cookie")
	ErrRevoked   = errors.New("session: token revoked")
)

// Session identifies the caller of a request.
type Session struct {
	Email     string
	TokenID   string
	ExpiresAt time.Time
}

// Handler is an authenticated handler. It only runs with a valid Session.
type Handler func(c *ctx.Context, s Session)

// Manager issues, resolves and revokes sessions.
type Manager struct {
	Secure   bool
	SameSite http.SameSite
	now      func() time.Time
}

// NewManager returns a Manager configured for the current APP_ENV:
// production cookies are Secure with SameSite=None so a separately hosted
// client can send them; elsewhere they are SameSite=Strict.
func NewManager() *Manager {
	m := &Manager{SameSite: http.SameSiteStrictMode, now: time.Now}
	if config.IsProduction() {
		m.Secure = true
		m.SameSite = http.SameSiteNoneMode
	}
	return m
}

func revokedKey(id string) string { return "session:revoked:" + id }

// Issue signs a token for email and sets it as an HTTP-only cookie.
func (m *Manager) Issue(w http.ResponseWriter, email string) (Session, error) {
	token, claims, err := auth.GenerateToken(email, m.now())
	if err != nil {
		return Session{}, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  claims.ExpiresAt.Time,
		HttpOnly: true,
		Secure:   m.Secure,
		SameSite: m.SameSite,
	})

	return Session{Email: claims.Email, TokenID: claims.ID, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// FromRequest validates the session cookie on r.
func (m *Manager) FromRequest(r *http.Request) (Session, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return Session{}, ErrNoSession
	}

	claims, err := auth.ValidateToken(cookie.Value)
	if err != nil {
		return Session{}, err
	}

	revoked, err := cache.Exists(r.Context(), revokedKey(claims.ID))
	if err != nil {
		// Redis trouble must not lock every user out; the signature and
		// expiry have already been checked.
		logger.WithCtx(r.Context()).Warn("session: revocation lookup failed", "error", err)
	}
	if revoked {
		return Session{}, ErrRevoked
	}

	return Session{Email: claims.Email, TokenID: claims.ID, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// Clear expires the cookie and, when a cache is configured, revokes the
// token until its natural expiry.
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) {
	if s, err := m.FromRequest(r); err == nil {
		m.revoke(r.Context(), s)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   m.Secure,
		SameSite: m.SameSite,
	})
}

func (m *Manager) revoke(c context.Context, s Session) {
	ttl := s.ExpiresAt.Sub(m.now())
	if ttl <= 0 || s.TokenID == "" {
		return
	}
	if err := cache.Set(c, revokedKey(s.TokenID), true, ttl); err != nil {
		logger.WithCtx(c).Warn("session: revoke failed", "error", err)
	}
}

// Required adapts h to an http.HandlerFunc that answers 401 when the
// request carries no valid session.
func (m *Manager) Required(h Handler) http.HandlerFunc {
	return ctx.Wrap(func(c *ctx.Context) {
		s, err := m.FromRequest(c.R)
		if err != nil {
			c.Unauthorized("unauthorized access")
			return
		}
		h(c, s)
	})
}
