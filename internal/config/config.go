package config

import (
	"fmt"
	"os"
)

// Config holds application configuration
type Config struct {
	DatabaseURL        string
	ServerPort         string
	BaseURL            string
	FrontendURL        string
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	OpenAIKey          string
	AIModel            string
	AIBaseURL          string
	RedisURL           string
	RabbitMQURL        string
	RateLimit          string
	EnableHSTS         bool
	DebugMode          bool
	Development        bool
	OTELEnabled        bool
	OTELEndpoint       string
}

// Load loads configuration from environment variables. DATABASE_URL is the
// one hard requirement: the persistence gateway cannot be constructed
// without it and the process must not start in a broken state.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		BaseURL:            getEnv("BASE_URL", "http://localhost:8080"),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:3000"),
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),
		OpenAIKey:          getEnv("OPENAI_API_KEY", ""),
		AIModel:            getEnv("AI_MODEL", ""),
		AIBaseURL:          getEnv("AI_BASE_URL", ""),
		RedisURL:           getEnv("REDIS_URL", ""),
		RabbitMQURL:        getEnv("RABBITMQ_URL", ""),
		RateLimit:          getEnv("RATE_LIMIT", "10-M"),
		EnableHSTS:         getEnvBool("ENABLE_HSTS", false),
		DebugMode:          getEnvBool("DEBUG_MODE", false),
		Development:        getEnvBool("DEVELOPMENT", false),
		OTELEnabled:        getEnvBool("OTEL_ENABLED", false),
		OTELEndpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.GoogleRedirectURL == "" {
		cfg.GoogleRedirectURL = cfg.BaseURL + "/api/v1/auth/google/callback"
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}
