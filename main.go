package main

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"gaadi/config"
	"gaadi/database"
	"gaadi/handlers"
	"gaadi/middleware"
	"gaadi/pkg/logger"
	"gaadi/routes"
	"gaadi/storage/mongostore"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.ServiceName, cfg.LoggerLevel)

	if cfg.JWTSecret == "" {
		log.Error("JWT_SECRET must be set")
		os.Exit(1)
	}

	// Connect to mongo with a few retries; the database may come up
	// after us in container deployments.
	var (
		client *mongo.Client
		dbErr  error
	)
	for i := 1; i <= 3; i++ {
		client, dbErr = database.Connect(cfg.MongoURI)
		if dbErr == nil {
			break
		}
		log.Warning("mongo connection attempt failed",
			logger.Int("attempt", i), logger.Error(dbErr))
		time.Sleep(2 * time.Second)
	}
	if dbErr != nil {
		log.Error("failed to connect to mongo", logger.Error(dbErr))
		os.Exit(1)
	}
	defer func() {
		if err := database.Disconnect(client); err != nil {
			log.Error("mongo disconnect failed", logger.Error(err))
		}
	}()
	log.Info("connected to mongo")

	db := client.Database(cfg.MongoDB)

	idxCtx, idxCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer idxCancel()
	if err := database.EnsureIndexes(idxCtx, db); err != nil {
		log.Error("failed to ensure indexes", logger.Error(err))
		os.Exit(1)
	}

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	store := mongostore.New(db, log)
	handler := handlers.New(cfg, log, store)

	gateCfg := middleware.DefaultGateConfig()
	gateCfg.FailClosed = cfg.GateFailClosed

	limiter := middleware.NewIPRateLimiter(cfg.RateLimit, time.Duration(cfg.RateWindowSecs)*time.Second)

	router := routes.SetupRouter(routes.Deps{
		Handler:   handler,
		Session:   middleware.SessionAuth(cfg.JWTSecret, cfg.SessionCookie),
		Gate:      middleware.AccessGate(store.Profiles(), cfg.JWTSecret, cfg.SessionCookie, gateCfg, log),
		RateLimit: middleware.RateLimit(limiter),
		RequestID: middleware.RequestID(),
	})

	server := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server running", logger.Int("port", cfg.AppPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", logger.Error(err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", logger.Error(err))
	}

	log.Info("server stopped")
}
