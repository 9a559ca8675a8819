package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestSignupAndLogin(t *testing.T) {
	router, _ := newTestServer(t)

	creds := map[string]interface{}{"email": "Ram@Example.com", "password": "secret123", "name": "Ram"}

	rec, env := doJSON(t, router, "POST", "/api/signup", "", creds)
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup: status = %d (%s)", rec.Code, rec.Body.String())
	}
	var data struct {
		Token string `json:"token"`
		Email string `json:"email"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("failed to decode data: %v", err)
	}
	if data.Token == "" {
		t.Errorf("signup returned no token")
	}
	if data.Email != "ram@example.com" {
		t.Errorf("email = %q, want normalized", data.Email)
	}

	// Duplicate email, case-insensitively.
	rec, _ = doJSON(t, router, "POST", "/api/signup", "", map[string]interface{}{
		"email": "ram@example.com", "password": "secret456",
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate signup: status = %d, want 409", rec.Code)
	}

	rec, _ = doJSON(t, router, "POST", "/api/login", "", map[string]interface{}{
		"email": "ram@example.com", "password": "secret123",
	})
	if rec.Code != http.StatusOK {
		t.Errorf("login: status = %d", rec.Code)
	}

	rec, _ = doJSON(t, router, "POST", "/api/login", "", map[string]interface{}{
		"email": "ram@example.com", "password": "wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad password: status = %d, want 401", rec.Code)
	}
}

func TestSignup_InvalidBody(t *testing.T) {
	router, _ := newTestServer(t)

	rec, _ := doJSON(t, router, "POST", "/api/signup", "", map[string]interface{}{
		"email": "not-an-email", "password": "secret123",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
