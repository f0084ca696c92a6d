// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig
	Gemini GeminiConfig
	Relay  RelayConfig
}

type ServerConfig struct {
	Port string
	Host string
}

type GeminiConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

type RelayConfig struct {
	// BackendURL may be empty; the relay then answers 500 per request
	// instead of refusing to start.
	BackendURL     string
	AllowedOrigins []string
}

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"

// Origins allowed to call the relay when ALLOWED_ORIGINS is not set.
var defaultAllowedOrigins = []string{
	"https://sareestage-v2-887514490287.us-west1.run.app",
	"http://localhost:3000",
	"http://localhost:5173",
}

// Load reads configuration for the generation backend. The provider
// credential is required; absence is startup-fatal.
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	_ = godotenv.Load()

	config := loadCommon()

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// LoadRelay reads configuration for the edge relay. A missing backend URL is
// not fatal here; the relay reports it per request.
func LoadRelay() (*Config, error) {
	_ = godotenv.Load()

	config := loadCommon()
	// RELAY_PORT lets both binaries share one .env; an explicit PORT wins.
	if os.Getenv("PORT") == "" {
		config.Server.Port = getEnvOrDefault("RELAY_PORT", config.Server.Port)
	}
	return config, nil
}

func loadCommon() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "3001"),
			Host: getEnvOrDefault("HOST", "0.0.0.0"),
		},
		Gemini: GeminiConfig{
			APIKey:  os.Getenv("GEMINI_API_KEY"),
			BaseURL: getEnvOrDefault("GEMINI_BASE_URL", defaultGeminiBaseURL),
			Model:   getEnvOrDefault("GEMINI_MODEL", "gemini-2.5-flash-image"),
			Timeout: time.Duration(getEnvAsInt("GEMINI_TIMEOUT_SECONDS", 120)) * time.Second,
		},
		Relay: RelayConfig{
			BackendURL:     strings.TrimRight(os.Getenv("BACKEND_URL"), "/"),
			AllowedOrigins: parseOrigins(os.Getenv("ALLOWED_ORIGINS")),
		},
	}
}

func (c *Config) validate() error {
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	return nil
}

func parseOrigins(raw string) []string {
	if raw == "" {
		return defaultAllowedOrigins
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
