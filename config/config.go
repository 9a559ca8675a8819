package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

type Config struct {
	ServiceName string
	LoggerLevel string

	AppPort int
	GinMode string

	MongoURI string
	MongoDB  string

	JWTSecret     string
	SessionCookie string
	SessionTTLHrs int

	// PublicURL is the externally visible base URL, used to build the
	// Google OAuth redirect and absolute links.
	PublicURL string

	GoogleClientID     string
	GoogleClientSecret string

	CloudinaryURL string

	// GateFailClosed switches the access gate from its default
	// fail-open behavior (profile lookup errors let the request
	// through) to redirecting to the login surface instead.
	GateFailClosed bool

	RateLimit       int
	RateWindowSecs  int
}

func Load() Config {
	_ = godotenv.Load(".env")

	cfg := Config{}

	cfg.ServiceName = cast.ToString(getOrReturnDefault("SERVICE_NAME", "gaadi"))
	cfg.LoggerLevel = cast.ToString(getOrReturnDefault("LOGGER_LEVEL", "debug"))
	cfg.AppPort = cast.ToInt(getOrReturnDefault("APP_PORT", 8080))
	cfg.GinMode = cast.ToString(getOrReturnDefault("GIN_MODE", "debug"))

	cfg.MongoURI = cast.ToString(getOrReturnDefault("MONGODB_URI", "mongodb://127.0.0.1:27017"))
	cfg.MongoDB = cast.ToString(getOrReturnDefault("MONGODB_DB", "gaadi"))

	cfg.JWTSecret = cast.ToString(getOrReturnDefault("JWT_SECRET", ""))
	cfg.SessionCookie = cast.ToString(getOrReturnDefault("SESSION_COOKIE", "session"))
	cfg.SessionTTLHrs = cast.ToInt(getOrReturnDefault("SESSION_TTL_HOURS", 24))

	cfg.PublicURL = cast.ToString(getOrReturnDefault("PUBLIC_URL", "http://localhost:8080"))

	cfg.GoogleClientID = cast.ToString(getOrReturnDefault("GOOGLE_CLIENT_ID", ""))
	cfg.GoogleClientSecret = cast.ToString(getOrReturnDefault("GOOGLE_CLIENT_SECRET", ""))

	cfg.CloudinaryURL = cast.ToString(getOrReturnDefault("CLOUDINARY_URL", ""))

	cfg.GateFailClosed = cast.ToBool(getOrReturnDefault("GATE_FAIL_CLOSED", false))

	cfg.RateLimit = cast.ToInt(getOrReturnDefault("RATE_LIMIT", 60))
	cfg.RateWindowSecs = cast.ToInt(getOrReturnDefault("RATE_WINDOW_SECONDS", 60))

	return cfg
}

func getOrReturnDefault(key string, defaultValue interface{}) interface{} {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}
