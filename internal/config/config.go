package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the application configuration.
type Config struct {
	ServerPort     int
	DatabasePath   string
	UploadsPath    string
	TokenSecret    string
	TokenTTL       time.Duration
	SweepSchedule  string
	AllowedOrigins []string
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	portStr := getEnv("PORT", "8000")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}

	ttlStr := getEnv("TOKEN_TTL_HOURS", "72")
	ttlHours, err := strconv.Atoi(ttlStr)
	if err != nil {
		return nil, err
	}

	secret := os.Getenv("ACCESS_TOKEN_SECRET")
	if secret == "" {
		if os.Getenv("APP_ENV") == "production" {
			return nil, fmt.Errorf("ACCESS_TOKEN_SECRET must be set in production")
		}
		secret = "dev-insecure-secret"
	}

	origins := strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173"), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	return &Config{
		ServerPort:     port,
		DatabasePath:   getEnv("DATABASE_PATH", "./triply.db"),
		UploadsPath:    getEnv("UPLOADS_PATH", "./uploads"),
		TokenSecret:    secret,
		TokenTTL:       time.Duration(ttlHours) * time.Hour,
		SweepSchedule:  getEnv("SWEEP_SCHEDULE", "0 3 * * *"),
		AllowedOrigins: origins,
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
