package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"gaadi/pkg/logger"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

func randomState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// GetGoogleAuthURL hands the frontend a consent URL; the state nonce
// rides along in a short-lived cookie.
func (h *Handler) GetGoogleAuthURL(c *gin.Context) {
	if h.oauth == nil {
		respondError(c, http.StatusServiceUnavailable, "Google OAuth not configured")
		return
	}

	state, err := randomState()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	c.SetCookie("oauthstate", state, 600, "/", "", false, true)

	respondData(c, http.StatusOK, gin.H{"url": h.oauth.AuthCodeURL(state)})
}

// GoogleCallback exchanges the authorization code, upserts the
// account and redirects into the app with a session cookie set.
func (h *Handler) GoogleCallback(c *gin.Context) {
	if h.oauth == nil {
		respondError(c, http.StatusServiceUnavailable, "Google OAuth not configured")
		return
	}

	state, _ := c.Cookie("oauthstate")
	if state == "" || c.Query("state") != state {
		respondError(c, http.StatusBadRequest, "Invalid OAuth state")
		return
	}

	code := c.Query("code")
	if code == "" {
		respondError(c, http.StatusBadRequest, "Authorization code missing")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	token, err := h.oauth.Exchange(ctx, code)
	if err != nil {
		h.log.Error("google token exchange failed", logger.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to exchange authorization code")
		return
	}

	client := h.oauth.Client(ctx, token)
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		h.log.Error("failed to fetch google user info", logger.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to get user information")
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to get user information")
		return
	}

	var info GoogleUserInfo
	if err := json.Unmarshal(body, &info); err != nil || info.Email == "" {
		respondError(c, http.StatusInternalServerError, "Failed to get user information")
		return
	}

	account, err := h.store.Accounts().UpsertGoogle(ctx, info.Email, info.Name, info.Picture, info.ID)
	if err != nil {
		h.storeError(c, err, "google account upsert")
		return
	}

	if _, err := h.issueSession(c, account.Email, account.Name); err != nil {
		h.log.Error("failed to sign session token", logger.Error(err))
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.Redirect(http.StatusFound, "/")
}
