// config.go - Handles configuration for the project

package config

import (
	"os" // For reading environment variables
)

type Config struct { // Config struct holds all configuration values
	Port            string // HTTP port to listen on
	DBPath          string // Path to the SQLite database file
	DatabaseURL     string // Postgres DSN; when set it takes precedence over DBPath
	JWTSecret       string // Secret key for signing bearer tokens
	SeedAdmins      bool   // Whether to seed the initial admin accounts
	DefaultPassword string // Password assigned to newly provisioned accounts
}

func Load() *Config { // Load reads config from environment variables or uses defaults
	return &Config{
		Port:            getEnv("PORT", "8080"),
		DBPath:          getEnv("DB_PATH", "data.db"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		JWTSecret:       getEnv("JWT_SECRET", "supersecret"),
		SeedAdmins:      getEnv("SEED_ADMINS", "") == "true",
		DefaultPassword: getEnv("DEFAULT_PASSWORD", "password123"),
	}
}

func getEnv(key, fallback string) string { // Helper to get env var or fallback
	if value := os.Getenv(key); value != "" { // If env var is set, use it
		return value
	}
	return fallback // Otherwise, use fallback value
}
