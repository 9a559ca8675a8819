package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"gaadi/config"
	"gaadi/handlers"
	"gaadi/middleware"
	"gaadi/pkg/logger"
	"gaadi/routes"
	"gaadi/storage/memstore"
)

const testSecret = "test-secret"

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T) (*gin.Engine, *memstore.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		ServiceName:   "gaadi-test",
		JWTSecret:     testSecret,
		SessionCookie: "session",
		SessionTTLHrs: 1,
	}
	store := memstore.New()
	h := handlers.New(cfg, logger.NewNop(), store)

	router := routes.SetupRouter(routes.Deps{
		Handler:   h,
		Session:   middleware.SessionAuth(cfg.JWTSecret, cfg.SessionCookie),
		Gate:      middleware.AccessGate(store.Profiles(), cfg.JWTSecret, cfg.SessionCookie, middleware.DefaultGateConfig(), logger.NewNop()),
		RateLimit: middleware.RateLimit(middleware.NewIPRateLimiter(10000, time.Minute)),
		RequestID: middleware.RequestID(),
	})
	return router, store
}

func authToken(t *testing.T, email string) string {
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

// doJSON fires a request with an optional bearer token and JSON body
// and decodes the response envelope.
func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("failed to decode envelope %q: %v", rec.Body.String(), err)
		}
	}
	return rec, env
}

func registration() map[string]interface{} {
	return map[string]interface{}{
		"fullName":       "Ram Thapa",
		"drivingLicense": "DL-123456",
		"roadPermit":     "RP-98765",
		"nationalId":     "NID-5544",
		"gender":         "Male",
		"contactNumber":  "9841000000",
		"vehicleNumber":  "BA 2 PA 4567",
	}
}
