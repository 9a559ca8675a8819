package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"gaadi/models"
	"gaadi/pkg/logger"
	"gaadi/storage"
)

// GateConfig drives the navigation-time access gate.
type GateConfig struct {
	LoginPath string
	FormPath  string
	HomePath  string

	// FailClosed redirects to LoginPath when the profile-status lookup
	// fails. Default is fail-open: a transient store error must never
	// lock an authenticated user out of the app.
	FailClosed bool

	// ExemptPrefixes are matched once at startup; requests under them
	// bypass the gate entirely (API, auth and static surfaces).
	ExemptPrefixes []string
}

func DefaultGateConfig() GateConfig {
	return GateConfig{
		LoginPath:      "/auth",
		FormPath:       "/form",
		HomePath:       "/",
		ExemptPrefixes: []string{"/api", "/auth", "/static", "/favicon.ico", "/health"},
	}
}

// AccessGate routes every navigation request through the registration
// state machine:
//
//	no valid session                      -> LoginPath
//	status != enabled, path != FormPath   -> FormPath
//	status == enabled, path == FormPath   -> HomePath
//	otherwise                             -> pass through
//
// Authentication fails closed, the status lookup fails open (unless
// GateConfig.FailClosed).
func AccessGate(profiles storage.IProfileStorage, secret, cookieName string, cfg GateConfig, log logger.ILogger) gin.HandlerFunc {
	exempt := append([]string(nil), cfg.ExemptPrefixes...)

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, prefix := range exempt {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		claims, err := ParseSession(c, secret, cookieName)
		if err != nil {
			c.Redirect(http.StatusFound, cfg.LoginPath)
			c.Abort()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		status, err := profiles.StatusByOwner(ctx, claims.Email)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			// No profile yet counts as not enabled, not as a failure.
			status = models.StatusDisabled
		case err != nil:
			if cfg.FailClosed {
				log.Warning("gate status lookup failed, failing closed",
					logger.String("path", path), logger.Error(err))
				c.Redirect(http.StatusFound, cfg.LoginPath)
				c.Abort()
				return
			}
			log.Warning("gate status lookup failed, letting request through",
				logger.String("path", path), logger.Error(err))
			c.Set(identityKey, claims.Email)
			c.Set(identityNameKey, claims.Name)
			c.Next()
			return
		}

		switch {
		case status != models.StatusEnabled && path != cfg.FormPath:
			c.Redirect(http.StatusFound, cfg.FormPath)
			c.Abort()
		case status == models.StatusEnabled && path == cfg.FormPath:
			c.Redirect(http.StatusFound, cfg.HomePath)
			c.Abort()
		default:
			c.Set(identityKey, claims.Email)
			c.Set(identityNameKey, claims.Name)
			c.Next()
		}
	}
}
