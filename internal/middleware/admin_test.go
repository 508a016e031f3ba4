package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/acm-vitap/registration-portal/internal/auth"
)

func newGuardedRouter(session *auth.SessionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	admin := r.Group("")
	admin.Use(AdminRequired(session))
	admin.GET("/admin_dashboard", func(c *gin.Context) {
		c.String(http.StatusOK, "dashboard")
	})
	return r
}

func TestAdminRequired(t *testing.T) {
	session := auth.NewSessionService("secret", 1)
	r := newGuardedRouter(session)

	valid, err := session.Issue()
	if err != nil {
		t.Fatalf("issue session: %v", err)
	}
	expired, err := auth.NewSessionService("secret", -1).Issue()
	if err != nil {
		t.Fatalf("issue expired session: %v", err)
	}

	tests := []struct {
		name       string
		cookie     string
		wantStatus int
		wantLoc    string
	}{
		{"no cookie", "", http.StatusFound, "/admin_login"},
		{"garbage cookie", "nonsense", http.StatusFound, "/admin_login"},
		{"expired session", expired, http.StatusFound, "/admin_login"},
		{"valid session", valid, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin_dashboard", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantLoc != "" {
				if loc := w.Header().Get("Location"); loc != tt.wantLoc {
					t.Errorf("Location = %q, want %q", loc, tt.wantLoc)
				}
			}
		})
	}
}
