package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"gaadi/middleware"
)

func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.SessionAuth(testSecret, "session"))
	r.GET("/api/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, middleware.Identity(c))
	})
	return r
}

func TestSessionAuth_NoToken(t *testing.T) {
	router := newAuthRouter(t)

	req := httptest.NewRequest("GET", "/api/whoami", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestSessionAuth_BadToken(t *testing.T) {
	router := newAuthRouter(t)

	req := httptest.NewRequest("GET", "/api/whoami", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestSessionAuth_TokenSources(t *testing.T) {
	router := newAuthRouter(t)
	token := signToken(t, "Ram.Thapa@Example.com")

	tests := []struct {
		name  string
		apply func(*http.Request)
	}{
		{"header", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }},
		{"cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "session", Value: token}) }},
		{"query", func(r *http.Request) { r.URL.RawQuery = "token=" + token }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/whoami", nil)
			tt.apply(req)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			// Identity comes back normalized.
			if got := rec.Body.String(); got != "ram.thapa@example.com" {
				t.Errorf("identity = %q", got)
			}
		})
	}
}
