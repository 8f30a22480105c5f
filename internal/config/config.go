package config

import (
	"os"
	"strconv"
)

// Config holds the application configuration.
type Config struct {
	ServerPort     int
	DatabasePath   string
	SessionPath    string // File holding the current session token
	CatalogBaseURL string
	CatalogAPIKey  string
	JWTSecret      string
	CORSOrigin     string
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:     port,
		DatabasePath:   getEnv("DATABASE_PATH", "./binder.db"),
		SessionPath:    getEnv("SESSION_PATH", "./session.json"),
		CatalogBaseURL: getEnv("CATALOG_BASE_URL", "https://api.pokemontcg.io/v2"),
		CatalogAPIKey:  getEnv("CATALOG_API_KEY", ""),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		CORSOrigin:     getEnv("CORS_ORIGIN", "http://localhost:3000"),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
