package flash

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestSetThenPop(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/set", func(c *gin.Context) {
		Set(c, "success", "Event created.")
		c.Status(http.StatusOK)
	})
	r.GET("/pop", func(c *gin.Context) {
		msg, ok := Pop(c)
		if !ok {
			c.String(http.StatusOK, "none")
			return
		}
		c.String(http.StatusOK, "%s:%s", msg.Level, msg.Text)
	})

	// first request sets the flash cookie
	w1 := httptest.NewRecorder()
	r.ServeHTTP(w1, httptest.NewRequest(http.MethodGet, "/set", nil))
	cookies := w1.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatalf("no cookie set")
	}

	// second request carries it and pops the message
	req := httptest.NewRequest(http.MethodGet, "/pop", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)

	if got := w2.Body.String(); got != "success:Event created." {
		t.Errorf("popped = %q", got)
	}

	// pop clears the cookie
	var cleared bool
	for _, c := range w2.Result().Cookies() {
		if c.Name == "acm_flash" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Errorf("flash cookie not cleared after pop")
	}
}

func TestPop_NoCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/pop", func(c *gin.Context) {
		if _, ok := Pop(c); ok {
			c.String(http.StatusOK, "unexpected")
			return
		}
		c.String(http.StatusOK, "none")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/pop", nil))
	if w.Body.String() != "none" {
		t.Errorf("Pop without cookie returned a message")
	}
}
