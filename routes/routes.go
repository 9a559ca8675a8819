package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"gaadi/handlers"
)

type Deps struct {
	Handler   *handlers.Handler
	Session   gin.HandlerFunc
	Gate      gin.HandlerFunc
	RateLimit gin.HandlerFunc
	RequestID gin.HandlerFunc
}

func SetupRouter(d Deps) *gin.Engine {
	router := gin.Default()

	router.Use(d.RequestID)
	router.Use(d.RateLimit)

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:8080", "http://127.0.0.1:8080", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	h := d.Handler

	router.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "message": "Gaadi API is running", "time": time.Now().Unix()})
	})

	// Public auth routes
	router.POST("/api/signup", h.Signup)
	router.POST("/api/login", h.Login)
	router.POST("/api/logout", h.Logout)
	router.GET("/api/google/auth-url", h.GetGoogleAuthURL)
	router.GET("/api/google/callback", h.GoogleCallback)

	// Public reads (the gate reads profile status through the same store)
	router.GET("/api/vehicle", h.ListVehicles)
	router.GET("/api/vehicle/:id", h.GetVehicleBundle)
	router.GET("/api/profile/:id", h.GetProfile)

	// Routes requiring a resolved session identity
	protected := router.Group("/api")
	protected.Use(d.Session)

	protected.POST("/vehicle", h.UpsertVehicle)
	protected.POST("/vehicle/:id", h.CreateVehicleDetails)
	protected.DELETE("/vehicle/:id", h.DeleteVehicleBundle)

	protected.PUT("/profile/:id", h.UpdateProfile)
	protected.DELETE("/profile/:id", h.DeleteProfile)

	protected.PUT("/vehicleDetails", h.UpdateVehicleDetails)
	protected.GET("/details", h.GetMyDetails)

	protected.POST("/upload-photo", h.UploadPhoto)

	// Gated page surface
	pages := router.Group("/", d.Gate)
	pages.GET("", h.HomePage)
	pages.GET("form", h.FormPage)
	pages.GET("details/:id", h.DetailsPage)

	// Login surface stays outside the gate
	router.GET("/auth", h.AuthPage)

	router.NoRoute(func(c *gin.Context) {
		if len(c.Request.URL.Path) >= 4 && c.Request.URL.Path[:4] == "/api" {
			c.JSON(404, gin.H{
				"success": false,
				"error":   "Endpoint not found",
				"path":    c.Request.URL.Path,
			})
			return
		}
		c.String(404, "404 page not found")
	})

	return router
}
