package auth

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/acm-vitap/registration-portal/config"
	"github.com/acm-vitap/registration-portal/web"
)

func newLoginRouter(t *testing.T, admin config.AdminConfig) (*gin.Engine, *SessionService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tmpl, err := web.Templates()
	if err != nil {
		t.Fatalf("parse templates: %v", err)
	}
	session := NewSessionService("test-secret", 1)
	h := NewHandler(admin, session, nil)

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.GET("/admin_login", h.LoginPage)
	r.POST("/admin_login", h.Login)
	r.GET("/logout", h.Logout)
	return r, session
}

func postLogin(r *gin.Engine, username, password string) *httptest.ResponseRecorder {
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/admin_login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLogin_ValidCredentialsSetSession(t *testing.T) {
	r, session := newLoginRouter(t, config.AdminConfig{Username: "admin", Password: "acmvitap"})

	w := postLogin(r, "admin", "acmvitap")
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/admin_dashboard" {
		t.Errorf("Location = %q, want /admin_dashboard", loc)
	}

	var token string
	for _, c := range w.Result().Cookies() {
		if c.Name == CookieName {
			token = c.Value
		}
	}
	if token == "" {
		t.Fatalf("session cookie not set")
	}
	if _, err := session.Validate(token); err != nil {
		t.Errorf("issued cookie does not validate: %v", err)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	r, _ := newLoginRouter(t, config.AdminConfig{Username: "admin", Password: "acmvitap"})

	tests := []struct {
		name, username, password string
	}{
		{"wrong password", "admin", "nope"},
		{"wrong username", "root", "acmvitap"},
		{"both empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postLogin(r, tt.username, tt.password)
			if w.Code != http.StatusOK {
				t.Errorf("status = %d, want 200 re-render", w.Code)
			}
			if !strings.Contains(w.Body.String(), "Invalid credentials. Try again.") {
				t.Errorf("body missing invalid-credentials message")
			}
			for _, c := range w.Result().Cookies() {
				if c.Name == CookieName && c.Value != "" {
					t.Errorf("session cookie set on failed login")
				}
			}
		})
	}
}

func TestLogin_BcryptHashTakesPrecedence(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	r, _ := newLoginRouter(t, config.AdminConfig{
		Username:     "admin",
		Password:     "plaintext-ignored",
		PasswordHash: string(hash),
	})

	if w := postLogin(r, "admin", "hunter2"); w.Code != http.StatusFound {
		t.Errorf("hashed password login status = %d, want 302", w.Code)
	}
	if w := postLogin(r, "admin", "plaintext-ignored"); w.Code != http.StatusOK {
		t.Errorf("plaintext fallback accepted despite configured hash")
	}
}

func TestLogout_ClearsSession(t *testing.T) {
	r, _ := newLoginRouter(t, config.AdminConfig{Username: "admin", Password: "acmvitap"})

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "whatever"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/" {
		t.Errorf("Location = %q, want /", loc)
	}
	var cleared bool
	for _, c := range w.Result().Cookies() {
		if c.Name == CookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Errorf("session cookie not cleared")
	}
}
