package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"gaadi/middleware"
	"gaadi/models"
	"gaadi/pkg/logger"
	"gaadi/storage/memstore"
)

const testSecret = "test-secret"

func signToken(t *testing.T, email string) string {
	t.Helper()
	claims := &middleware.Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func newGateRouter(t *testing.T, store *memstore.Store, cfg middleware.GateConfig) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.AccessGate(store.Profiles(), testSecret, "session", cfg, logger.NewNop()))
	ok := func(c *gin.Context) { c.String(http.StatusOK, "ok") }
	r.GET("/", ok)
	r.GET("/form", ok)
	r.GET("/details/:id", ok)
	r.GET("/api/ping", ok)
	return r
}

func gateRequest(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "session", Value: token})
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func seedProfile(t *testing.T, store *memstore.Store, email, status string) {
	t.Helper()
	err := store.Profiles().Create(context.Background(), &models.Profile{
		VehicleID:     "ba-2-pa-4567",
		OwnerEmail:    email,
		Status:        status,
		VehicleNumber: "BA 2 PA 4567",
	})
	if err != nil {
		t.Fatalf("failed to seed profile: %v", err)
	}
}

func TestGate_NoSessionRedirectsToLogin(t *testing.T) {
	router := newGateRouter(t, memstore.New(), middleware.DefaultGateConfig())

	rec := gateRequest(router, "/", "")
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusFound)
	}
	if loc := rec.Header().Get("Location"); loc != "/auth" {
		t.Errorf("Location = %q, want /auth", loc)
	}
}

func TestGate_InvalidTokenRedirectsToLogin(t *testing.T) {
	router := newGateRouter(t, memstore.New(), middleware.DefaultGateConfig())

	rec := gateRequest(router, "/", "not-a-jwt")
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/auth" {
		t.Errorf("got %d -> %q, want 302 -> /auth", rec.Code, rec.Header().Get("Location"))
	}
}

func TestGate_DisabledProfile(t *testing.T) {
	store := memstore.New()
	seedProfile(t, store, "ram@example.com", models.StatusDisabled)
	router := newGateRouter(t, store, middleware.DefaultGateConfig())
	token := signToken(t, "ram@example.com")

	rec := gateRequest(router, "/", token)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/form" {
		t.Errorf("home: got %d -> %q, want 302 -> /form", rec.Code, rec.Header().Get("Location"))
	}

	rec = gateRequest(router, "/form", token)
	if rec.Code != http.StatusOK {
		t.Errorf("form: status = %d, want 200", rec.Code)
	}
}

func TestGate_NoProfileTreatedAsDisabled(t *testing.T) {
	router := newGateRouter(t, memstore.New(), middleware.DefaultGateConfig())
	token := signToken(t, "new@example.com")

	rec := gateRequest(router, "/details/ba-2-pa-4567", token)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/form" {
		t.Errorf("got %d -> %q, want 302 -> /form", rec.Code, rec.Header().Get("Location"))
	}
}

func TestGate_EnabledProfile(t *testing.T) {
	store := memstore.New()
	seedProfile(t, store, "ram@example.com", models.StatusEnabled)
	router := newGateRouter(t, store, middleware.DefaultGateConfig())
	token := signToken(t, "ram@example.com")

	rec := gateRequest(router, "/form", token)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/" {
		t.Errorf("form: got %d -> %q, want 302 -> /", rec.Code, rec.Header().Get("Location"))
	}

	rec = gateRequest(router, "/", token)
	if rec.Code != http.StatusOK {
		t.Errorf("home: status = %d, want 200", rec.Code)
	}
}

func TestGate_LookupFailureFailsOpen(t *testing.T) {
	store := memstore.New()
	store.StatusErr = errors.New("connection reset")
	router := newGateRouter(t, store, middleware.DefaultGateConfig())
	token := signToken(t, "ram@example.com")

	rec := gateRequest(router, "/", token)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 (fail-open)", rec.Code)
	}
}

func TestGate_LookupFailureFailsClosedWhenConfigured(t *testing.T) {
	store := memstore.New()
	store.StatusErr = errors.New("connection reset")
	cfg := middleware.DefaultGateConfig()
	cfg.FailClosed = true
	router := newGateRouter(t, store, cfg)
	token := signToken(t, "ram@example.com")

	rec := gateRequest(router, "/", token)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/auth" {
		t.Errorf("got %d -> %q, want 302 -> /auth", rec.Code, rec.Header().Get("Location"))
	}
}

func TestGate_ExemptPrefixBypassesGate(t *testing.T) {
	// No session at all, yet /api is never gated.
	router := newGateRouter(t, memstore.New(), middleware.DefaultGateConfig())

	rec := gateRequest(router, "/api/ping", "")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
