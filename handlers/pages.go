package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"gaadi/middleware"
)

// The page surface is intentionally minimal: just enough HTML for the
// gate to have something to redirect between. The real UI consumes
// the JSON API.

func page(c *gin.Context, title, body string) {
	html := fmt.Sprintf(
		"<!DOCTYPE html><html><head><title>%s | Gaadi</title></head><body><h1>%s</h1>%s</body></html>",
		title, title, body)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (h *Handler) HomePage(c *gin.Context) {
	page(c, "Gaadi", fmt.Sprintf("<p>Signed in as %s.</p><p><a href=\"/details/me\">My vehicle</a></p>", middleware.Identity(c)))
}

func (h *Handler) FormPage(c *gin.Context) {
	page(c, "Vehicle registration", "<p>Complete your vehicle registration to continue.</p>")
}

func (h *Handler) AuthPage(c *gin.Context) {
	page(c, "Sign in", "<p><a href=\"/api/google/auth-url\">Continue with Google</a></p>")
}

func (h *Handler) DetailsPage(c *gin.Context) {
	page(c, "Vehicle details", fmt.Sprintf("<p>Vehicle %s.</p>", c.Param("id")))
}
