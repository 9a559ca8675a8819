package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"gaadi/config"
	"gaadi/pkg/logger"
	"gaadi/storage"
)

const requestTimeout = 10 * time.Second

type Handler struct {
	cfg   config.Config
	log   logger.ILogger
	store storage.IStorage
	oauth *oauth2.Config
}

func New(cfg config.Config, log logger.ILogger, store storage.IStorage) *Handler {
	h := &Handler{cfg: cfg, log: log, store: store}

	if cfg.GoogleClientID != "" && cfg.GoogleClientSecret != "" {
		h.oauth = &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.PublicURL + "/api/google/callback",
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		}
	}

	return h
}

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func respondMessage(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, gin.H{"success": true, "message": message, "data": data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}

// storeError maps storage failures onto the envelope taxonomy.
// Anything unexpected is logged with detail and surfaced as a generic
// 500 so upstream messages never leak to clients.
func (h *Handler) storeError(c *gin.Context, err error, during string) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		respondError(c, http.StatusNotFound, "Not found")
	case errors.Is(err, storage.ErrDuplicate):
		respondError(c, http.StatusConflict, "Duplicate key")
	case errors.Is(err, storage.ErrInvalidID):
		respondError(c, http.StatusBadRequest, "Invalid id")
	default:
		h.log.Error("store operation failed",
			logger.String("during", during), logger.Error(err))
		respondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
