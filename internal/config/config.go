package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// AppConfig collects the settings needed to run the portfolio server.
type AppConfig struct {
	ListenAddr         string
	Port               string
	DatabasePath       string
	SessionSecret      string
	GinMode            string
	UploadDir          string
	UploadURLPath      string
	SiteBaseURL        string
	LogLevel           string
	SidebarIdleTimeout time.Duration
}

// Load reads the configuration from environment variables and fills in
// safe defaults for anything missing.
func Load() AppConfig {
	port := envOrDefault("PORT", "8080")

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	idle := 30 * time.Minute
	if raw := strings.TrimSpace(os.Getenv("SIDEBAR_IDLE_TIMEOUT")); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			idle = parsed
		}
	}

	return AppConfig{
		ListenAddr:         listenAddr,
		Port:               port,
		DatabasePath:       envOrDefault("DATABASE_PATH", "portfolio.db"),
		SessionSecret:      envOrDefault("SESSION_SECRET", "portfolio-dev-secret"),
		GinMode:            envOrDefault("GIN_MODE", "release"),
		UploadDir:          envOrDefault("UPLOAD_DIR", "web/static/uploads"),
		UploadURLPath:      envOrDefault("UPLOAD_URL_PATH", "/static/uploads"),
		SiteBaseURL:        envOrDefault("SITE_BASE_URL", "http://localhost:8080"),
		LogLevel:           strings.ToLower(envOrDefault("LOG_LEVEL", "info")),
		SidebarIdleTimeout: idle,
	}
}

func envOrDefault(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
