// Package flash implements one-shot notices carried in a cookie across a
// redirect: admin mutations set a message, the next page render pops it.
package flash

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const cookieName = "acm_flash"

// Message is a transient user-facing notice.
type Message struct {
	Level string // "success" or "error"
	Text  string
}

// Set stores a flash message for the next request. Cookie-unsafe characters
// are handled by gin's own escaping.
func Set(c *gin.Context, level, text string) {
	c.SetCookie(cookieName, level+"|"+text, 60, "/", "", false, true)
}

// Pop returns the pending flash message, if any, and clears it.
func Pop(c *gin.Context) (Message, bool) {
	raw, err := c.Cookie(cookieName)
	if err != nil || raw == "" {
		return Message{}, false
	}
	c.SetCookie(cookieName, "", -1, "/", "", false, true)

	level, text, found := strings.Cut(raw, "|")
	if !found {
		return Message{Level: "info", Text: raw}, true
	}
	return Message{Level: level, Text: text}, true
}

// Attach adds the pending flash message, if any, to a template data map.
func Attach(c *gin.Context, data gin.H) gin.H {
	if data == nil {
		data = gin.H{}
	}
	if msg, ok := Pop(c); ok {
		data["Flash"] = msg
	}
	return data
}
