package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secreto123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return NewManager(ManagerConfig{
		SessionSecret:     "test-secret",
		AdminUsername:     "admin",
		AdminPasswordHash: string(hash),
	})
}

func TestLoginAdminRejectsBadCredentials(t *testing.T) {
	mgr := newTestManager(t)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "wrong password", username: "admin", password: "nope"},
		{name: "wrong username", username: "root", password: "secreto123"},
		{name: "empty", username: "", password: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/auth/admin/login", nil)
			if err := mgr.LoginAdmin(w, r, tc.username, tc.password); !errors.Is(err, ErrInvalidCredentials) {
				t.Fatalf("err = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestAdminSessionRoundTrip(t *testing.T) {
	mgr := newTestManager(t)

	login := httptest.NewRecorder()
	if err := mgr.LoginAdmin(login, httptest.NewRequest(http.MethodPost, "/auth/admin/login", nil), "admin", "secreto123"); err != nil {
		t.Fatalf("login: %v", err)
	}
	cookies := login.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected session cookie after login")
	}

	var sawAdmin bool
	protected := mgr.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawAdmin = IsAdmin(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/admin/tramites", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !sawAdmin {
		t.Fatal("IsAdmin must be true inside an admin session")
	}
}

func TestRequireAdminBlocksAnonymous(t *testing.T) {
	mgr := newTestManager(t)

	protected := mgr.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without an admin session")
	}))
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/tramites", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestCitizenBindingRoundTrip(t *testing.T) {
	mgr := newTestManager(t)

	bind := httptest.NewRecorder()
	if err := mgr.BindTramite(bind, httptest.NewRequest(http.MethodPost, "/tramites", nil), "tr-123"); err != nil {
		t.Fatalf("bind: %v", err)
	}

	var gotID string
	protected := mgr.RequireCitizen(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = CurrentTramiteID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/tramites/actual", nil)
	for _, c := range bind.Result().Cookies() {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotID != "tr-123" {
		t.Fatalf("tramite id = %q, want tr-123", gotID)
	}

	anon := httptest.NewRecorder()
	protected.ServeHTTP(anon, httptest.NewRequest(http.MethodGet, "/tramites/actual", nil))
	if anon.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous status = %d, want 401", anon.Code)
	}
}
