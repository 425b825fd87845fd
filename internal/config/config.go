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
	// Environment
	GoEnv string `env:"GO_ENV" default:"development"`

	// Service Ports
	HTTPPort int `env:"HTTP_PORT" default:"5000"`

	// Database
	DatabaseURL string `env:"DATABASE_URL" required:"true"`

	// Redis Cache (optional, caching is disabled when empty)
	RedisURL      string        `env:"REDIS_URL"`
	PhotoCacheTTL time.Duration `env:"PHOTO_CACHE_TTL" default:"1h"`

	// External APIs
	GoogleMapsAPIKey     string  `env:"GOOGLE_MAPS_API_KEY" required:"true"`
	GoogleSearchAPIKey   string  `env:"GOOGLE_SEARCH_API_KEY" required:"true"`
	GoogleSearchEngineID string  `env:"GOOGLE_SEARCH_ENGINE_ID" required:"true"`
	GoogleRateLimit      float64 `env:"GOOGLE_RATE_LIMIT" default:"10"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`
	LogFile   string `env:"LOG_FILE"`

	CORSOrigins []string `env:"CORS_ORIGINS" default:"http://localhost:5173"`
}

// LoadConfig loads configuration from the .env file (if any) and environment
// variables. Missing credentials fail here so the server never starts without them.
func LoadConfig() (*Config, error) {
	// A missing .env is fine, system env vars still apply.
	_ = godotenv.Load(".env")

	config := &Config{}

	if err := loadEnvString(&config.GoEnv, "GO_ENV", "development"); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.HTTPPort, "HTTP_PORT", 5000); err != nil {
		return nil, err
	}

	// Database
	if err := loadEnvStringRequired(&config.DatabaseURL, "DATABASE_URL"); err != nil {
		return nil, err
	}

	// Redis
	if err := loadEnvString(&config.RedisURL, "REDIS_URL", ""); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.PhotoCacheTTL, "PHOTO_CACHE_TTL", time.Hour); err != nil {
		return nil, err
	}

	// External APIs
	if err := loadEnvStringRequired(&config.GoogleMapsAPIKey, "GOOGLE_MAPS_API_KEY"); err != nil {
		return nil, err
	}
	if err := loadEnvStringRequired(&config.GoogleSearchAPIKey, "GOOGLE_SEARCH_API_KEY"); err != nil {
		return nil, err
	}
	if err := loadEnvStringRequired(&config.GoogleSearchEngineID, "GOOGLE_SEARCH_ENGINE_ID"); err != nil {
		return nil, err
	}
	if err := loadEnvFloat(&config.GoogleRateLimit, "GOOGLE_RATE_LIMIT", 10); err != nil {
		return nil, err
	}

	// Logging
	if err := loadEnvString(&config.LogLevel, "LOG_LEVEL", "info"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.LogFormat, "LOG_FORMAT", "text"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.LogFile, "LOG_FILE", ""); err != nil {
		return nil, err
	}

	if err := loadEnvStringSlice(&config.CORSOrigins, "CORS_ORIGINS", []string{"http://localhost:5173"}); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Helper functions for type conversion and validation
func loadEnvString(target *string, key, defaultValue string) error {
	if value := os.Getenv(key); value != "" {
		*target = value
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvStringRequired(target *string, key string) error {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fmt.Errorf("required environment variable %s is not set", key)
	}
	*target = value
	return nil
}

func loadEnvInt(target *int, key string, defaultValue int) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvFloat(target *float64, key string, defaultValue float64) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid float value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvDuration(target *time.Duration, key string, defaultValue time.Duration) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvStringSlice(target *[]string, key string, defaultValue []string) error {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, v := range parts {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
		*target = out
	} else {
		*target = defaultValue
	}
	return nil
}

// Validate performs validation on the loaded configuration
func (c *Config) Validate() error {
	var errors []string

	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		errors = append(errors, "HTTP_PORT must be between 1 and 65535")
	}

	validLogLevels := []string{"trace", "debug", "info", "warn", "error", "fatal", "panic"}
	if !contains(validLogLevels, c.LogLevel) {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: %s", strings.Join(validLogLevels, ", ")))
	}

	validLogFormats := []string{"text", "json"}
	if !contains(validLogFormats, c.LogFormat) {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be one of: %s", strings.Join(validLogFormats, ", ")))
	}

	if c.GoogleRateLimit <= 0 {
		errors = append(errors, "GOOGLE_RATE_LIMIT must be positive")
	}
	if c.PhotoCacheTTL < 0 {
		errors = append(errors, "PHOTO_CACHE_TTL must not be negative")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errors, "; "))
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
