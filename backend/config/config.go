// ABOUTME: Configuration loader for the sizing service
// ABOUTME: Loads settings from an optional .env file and environment variables

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/markalston/tenant-pool-sizer/backend/services"
)

const (
	defaultMaxRequestBytes = 1 << 20
	maxCacheTTL            = 86400
)

type Config struct {
	// Server
	Port               string
	CacheTTL           int      // seconds, lifetime of cached plans (0 disables caching)
	CORSAllowedOrigins []string // allowed CORS origins (empty = block all cross-origin)
	MaxRequestBytes    int64    // request body limit

	// Sizing
	DefaultParity string // parity level selected when a plan does not name one

	// EnvFile is the dotenv file consulted before the environment
	EnvFile string
}

// Load reads ENV_FILE (default .env) when it exists, then builds the
// configuration from the environment. Variables already set in the
// environment take precedence over the file.
func Load() (*Config, error) {
	envFile := getEnv("ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", envFile, err)
	}

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		CacheTTL:           getEnvInt("CACHE_TTL", 300),
		CORSAllowedOrigins: getEnvStringList("CORS_ALLOWED_ORIGINS"),
		MaxRequestBytes:    int64(getEnvInt("MAX_REQUEST_BYTES", defaultMaxRequestBytes)),
		DefaultParity:      getEnv("DEFAULT_PARITY", "EC:4"),
		EnvFile:            envFile,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("PORT must be a number between 1 and 65535, got %q", c.Port)
	}
	if c.CacheTTL < 0 || c.CacheTTL > maxCacheTTL {
		return fmt.Errorf("CACHE_TTL must be between 0 and %d, got %d", maxCacheTTL, c.CacheTTL)
	}
	if c.MaxRequestBytes < 1 {
		return fmt.Errorf("MAX_REQUEST_BYTES must be positive, got %d", c.MaxRequestBytes)
	}
	if services.ValidateParityLevel(c.DefaultParity) != nil {
		return fmt.Errorf("DEFAULT_PARITY must look like EC:<n>, got %q", c.DefaultParity)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvStringList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
