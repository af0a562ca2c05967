package config

import (
	"os"
	"path/filepath"
	"strconv"
)

// Config holds the environment-driven settings for the server.
type Config struct {
	AppEnv        string
	Port          string
	JWTSecret     string
	UploadsDir    string
	PublicBaseURL string
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads configuration from the environment with development defaults.
func Load() *Config {
	uploadsDir := getenv("UPLOADS_DIR", filepath.Join(".", "uploads"))
	_ = os.MkdirAll(uploadsDir, 0o755)

	return &Config{
		AppEnv:        getenv("APP_ENV", "development"),
		Port:          getenv("PORT", "8080"),
		JWTSecret:     getenv("JWT_SECRET", "betterus-dev-secret"),
		UploadsDir:    uploadsDir,
		PublicBaseURL: getenv("PUBLIC_BASE_URL", "http://localhost:8080"),
	}
}

// StrEnv reads a string environment variable with a fallback.
func StrEnv(key, fallback string) string {
	return getenv(key, fallback)
}

// IntEnv reads an integer environment variable with a fallback.
func IntEnv(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
