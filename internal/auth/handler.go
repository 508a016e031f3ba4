package auth

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/acm-vitap/registration-portal/config"
)

// Handler handles admin login and logout.
type Handler struct {
	admin   config.AdminConfig
	session *SessionService
	logger  *zap.Logger
}

// NewHandler creates an auth handler.
func NewHandler(admin config.AdminConfig, session *SessionService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{admin: admin, session: session, logger: logger}
}

// LoginPage handles GET /admin_login.
func (h *Handler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "admin_login.html", gin.H{})
}

// Login handles POST /admin_login. Credentials are matched exactly against
// configuration; there is no rate limiting or lockout.
func (h *Handler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	if !h.credentialsMatch(username, password) {
		c.HTML(http.StatusOK, "admin_login.html", gin.H{
			"Error": "Invalid credentials. Try again.",
		})
		return
	}

	token, err := h.session.Issue()
	if err != nil {
		h.logger.Error("issue admin session", zap.Error(err))
		c.HTML(http.StatusInternalServerError, "admin_login.html", gin.H{
			"Error": "Could not start a session. Try again.",
		})
		return
	}
	c.SetCookie(CookieName, token, h.session.MaxAge(), "/", "", false, true)
	c.Redirect(http.StatusFound, "/admin_dashboard")
}

// Logout handles GET /logout. Clears the session unconditionally.
func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) credentialsMatch(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(h.admin.Username)) == 1
	if h.admin.PasswordHash != "" {
		return userOK && bcrypt.CompareHashAndPassword([]byte(h.admin.PasswordHash), []byte(password)) == nil
	}
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(h.admin.Password)) == 1
	return userOK && passOK
}
