// Package auth manages the portal's cookie sessions. A citizen session
// binds the browser to one active trámite; an admin session is opened by
// a password login. Identity-provider integration happens upstream of
// this portal, so the only credential checked here is the admin account.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
)

const (
	sessionName  = "licsim_portal"
	keyTramiteID = "tramite_id"
	keyIsAdmin   = "is_admin"
)

type ctxKey int

const (
	ctxKeyTramiteID ctxKey = iota
	ctxKeyIsAdmin
)

type Manager struct {
	store      *sessions.CookieStore
	adminUser  string
	adminHash  string
	secureOnly bool
}

type ManagerConfig struct {
	SessionSecret     string
	SessionMaxAgeSecs int
	AdminUsername     string
	AdminPasswordHash string
	SecureCookies     bool
}

func NewManager(cfg ManagerConfig) *Manager {
	if cfg.SessionMaxAgeSecs <= 0 {
		cfg.SessionMaxAgeSecs = 8 * 60 * 60
	}
	store := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cfg.SessionMaxAgeSecs,
		HttpOnly: true,
		Secure:   cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	}
	return &Manager{
		store:      store,
		adminUser:  strings.TrimSpace(cfg.AdminUsername),
		adminHash:  strings.TrimSpace(cfg.AdminPasswordHash),
		secureOnly: cfg.SecureCookies,
	}
}

// BindTramite ties the browser session to the given case. Creating or
// looking up a trámite re-binds; the portal tracks one active case per
// citizen session.
func (m *Manager) BindTramite(w http.ResponseWriter, r *http.Request, tramiteID string) error {
	session, _ := m.store.Get(r, sessionName)
	session.Values[keyTramiteID] = tramiteID
	return session.Save(r, w)
}

// LoginAdmin validates the configured admin credential and marks the
// session as an admin session.
func (m *Manager) LoginAdmin(w http.ResponseWriter, r *http.Request, username, password string) error {
	if m.adminUser == "" || m.adminHash == "" {
		return ErrInvalidCredentials
	}
	if strings.TrimSpace(username) != m.adminUser {
		// Burn a comparison anyway so the two rejection paths cost the same.
		_ = bcrypt.CompareHashAndPassword([]byte(m.adminHash), []byte(password))
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(m.adminHash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}

	session, _ := m.store.Get(r, sessionName)
	session.Values[keyIsAdmin] = true
	return session.Save(r, w)
}

// Logout drops the whole session, citizen binding included.
func (m *Manager) Logout(w http.ResponseWriter, r *http.Request) error {
	session, _ := m.store.Get(r, sessionName)
	session.Options.MaxAge = -1
	session.Values = map[interface{}]interface{}{}
	return session.Save(r, w)
}

// RequireCitizen admits requests whose session is bound to a trámite and
// puts the trámite id on the context.
func (m *Manager) RequireCitizen(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, _ := m.store.Get(r, sessionName)
		tramiteID, ok := session.Values[keyTramiteID].(string)
		if !ok || tramiteID == "" {
			unauthorized(w)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithTramiteID(r.Context(), tramiteID)))
	})
}

// RequireAdmin admits only logged-in admin sessions.
func (m *Manager) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, _ := m.store.Get(r, sessionName)
		isAdmin, ok := session.Values[keyIsAdmin].(bool)
		if !ok || !isAdmin {
			unauthorized(w)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithAdmin(r.Context())))
	})
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":{"code":"unauthorized","message":"unauthorized"},"status":401}`))
}

func WithTramiteID(ctx context.Context, tramiteID string) context.Context {
	return context.WithValue(ctx, ctxKeyTramiteID, tramiteID)
}

func WithAdmin(ctx context.Context) context.Context {
	return context.WithValue(ctx, ctxKeyIsAdmin, true)
}

// CurrentTramiteID returns the trámite bound to the request's session.
func CurrentTramiteID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKeyTramiteID).(string)
	return id, ok && id != ""
}

// IsAdmin reports whether the request carries an admin session.
func IsAdmin(ctx context.Context) bool {
	isAdmin, ok := ctx.Value(ctxKeyIsAdmin).(bool)
	return ok && isAdmin
}
