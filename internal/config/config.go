// Package config provides configuration management for the route engine.
// It loads settings from environment variables with sensible defaults and
// validates them before the engine starts serving.
//
// Environment Variables:
//
//   - PORT: Server port (default: 8080)
//   - LOG_LEVEL: Logging level - debug, info, warn, error (default: info)
//   - MODE: "debug" or "production" (default: production). Debug mode lets
//     raw controller return values pass through as text responses.
//   - BASE_URL: Scheme and host used for absolute URLs when no request is
//     available (e.g. "https://example.com")
//   - JWT_SECRET: Signing secret for the bearer-token validator; when set
//     it must be at least 32 characters and the validator is installed
//   - JWT_ISSUER: Expected token issuer (default: route-engine)
//   - ROUTES_FILE: Optional YAML file with declarative route definitions
package config

import (
	"fmt"
	"os"
)

// Config holds all configuration values for the route engine
type Config struct {
	Port       string // Server port number
	LogLevel   string // Logging level (debug, info, warn, error)
	Mode       string // "debug" or "production"
	BaseURL    string // Default scheme+host for absolute URLs
	JWTSecret  string // Bearer-token signing secret, empty disables auth
	JWTIssuer  string // Expected token issuer
	RoutesFile string // Optional YAML route declarations
}

// Load reads configuration from the environment
func Load() *Config {
	return &Config{
		Port:       getEnv("PORT", "8080"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		Mode:       getEnv("MODE", "production"),
		BaseURL:    os.Getenv("BASE_URL"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		JWTIssuer:  getEnv("JWT_ISSUER", "route-engine"),
		RoutesFile: os.Getenv("ROUTES_FILE"),
	}
}

// Validate checks the configuration for values the engine cannot start
// with
func (c *Config) Validate() error {
	if c.Mode != "debug" && c.Mode != "production" {
		return fmt.Errorf("invalid MODE %q: must be debug or production", c.Mode)
	}

	if c.JWTSecret != "" && len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}

	return nil
}

// DebugMode reports whether the engine runs with relaxed response
// processing
func (c *Config) DebugMode() bool {
	return c.Mode == "debug"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
