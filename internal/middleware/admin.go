package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acm-vitap/registration-portal/internal/auth"
)

// ContextAdmin is the gin context key set when the request carries a valid
// admin session.
const ContextAdmin = "admin"

// AdminRequired returns a middleware that gates admin-only pages. Requests
// without a valid session cookie are redirected to the login page; the guarded
// handler never runs.
func AdminRequired(session *auth.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(auth.CookieName)
		if err != nil || token == "" {
			c.Redirect(http.StatusFound, "/admin_login")
			c.Abort()
			return
		}
		if _, err := session.Validate(token); err != nil {
			c.Redirect(http.StatusFound, "/admin_login")
			c.Abort()
			return
		}
		c.Set(ContextAdmin, true)
		c.Next()
	}
}
