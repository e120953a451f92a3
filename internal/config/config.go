package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DatabaseURL string

	// Auth
	JWTSecret string

	// OpenAI
	OpenAIAPIKey string

	// Limits
	AITimeout   time.Duration
	BodyLimitMB int
}

func Load() *Config {
	timeoutSecs, _ := strconv.Atoi(getEnv("AI_TIMEOUT_SECONDS", "120"))
	bodyLimit, _ := strconv.Atoi(getEnv("BODY_LIMIT_MB", "25"))
	return &Config{
		Port:         getEnv("PORT", "3001"),
		Env:          getEnv("APP_ENV", "development"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		JWTSecret:    getEnv("JWT_SECRET", ""),
		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		AITimeout:    time.Duration(timeoutSecs) * time.Second,
		BodyLimitMB:  bodyLimit,
	}
}

// Validate rejects incomplete configuration so the process fails at startup
// instead of on the first request.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if len(c.JWTSecret) < 16 {
		return errors.New("JWT_SECRET must be at least 16 chars")
	}
	if c.OpenAIAPIKey == "" {
		return errors.New("OPENAI_API_KEY is required")
	}
	if c.AITimeout <= 0 {
		return fmt.Errorf("AI_TIMEOUT_SECONDS must be positive, got %s", c.AITimeout)
	}
	if c.BodyLimitMB <= 0 {
		return fmt.Errorf("BODY_LIMIT_MB must be positive, got %d", c.BodyLimitMB)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
