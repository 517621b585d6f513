// Package config loads application configuration from the environment,
// optionally seeded from a .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int    `validate:"required,min=1,max=65535"`
	Environment string `validate:"oneof=dev staging production"`

	// APIKey gates every /api/v1 endpoint. Empty disables auth, which
	// validation rejects in production.
	APIKey         string   `validate:"required_if=Environment production"`
	TrustedProxies []string `validate:"-"`

	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=text json"`
	LogDir    string `validate:"required"`

	DBUser     string `validate:"required"`
	DBPassword string `validate:"required"`
	DBHost     string `validate:"required"`
	DBPort     string `validate:"required,numeric"`
	DBName     string `validate:"required"`
	DBMaxConns int    `validate:"min=1"`

	DBMaxIdleTime time.Duration `validate:"min=0"`
	DBMaxLifetime time.Duration `validate:"min=0"`

	HTTPReadTimeout  time.Duration `validate:"min=1s"`
	HTTPWriteTimeout time.Duration `validate:"min=1s"`
	ShutdownTimeout  time.Duration `validate:"min=1s"`

	// DeadLetterPath is where events that exhaust publish retries are
	// persisted for manual replay.
	DeadLetterPath string `validate:"required"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		Environment:    getEnv("ENVIRONMENT", DefaultEnvironment),
		APIKey:         getEnv("API_KEY", ""),
		TrustedProxies: splitCSV(getEnv("TRUSTED_PROXIES", "")),
		LogLevel:       getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:      getEnv("LOG_FORMAT", DefaultLogFormat),
		LogDir:         getEnv("LOG_DIR", DefaultLogDir),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", "postgres"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBName:         getEnv("DB_NAME", DefaultDBName),
		DeadLetterPath: getEnv("DEAD_LETTER_PATH", DefaultDeadLetterPath),
	}

	var err error
	if cfg.Port, err = getEnvInt("PORT", DefaultPort); err != nil {
		return nil, err
	}
	if cfg.DBMaxConns, err = getEnvInt("DB_MAX_CONNS", DefaultDBMaxConns); err != nil {
		return nil, err
	}
	if cfg.DBMaxIdleTime, err = getEnvDuration("DB_MAX_IDLE_TIME", DefaultDBMaxIdleTime); err != nil {
		return nil, err
	}
	if cfg.DBMaxLifetime, err = getEnvDuration("DB_MAX_LIFETIME", DefaultDBMaxLifetime); err != nil {
		return nil, err
	}
	if cfg.HTTPReadTimeout, err = getEnvDuration("HTTP_READ_TIMEOUT", DefaultHTTPReadTimeout); err != nil {
		return nil, err
	}
	if cfg.HTTPWriteTimeout, err = getEnvDuration("HTTP_WRITE_TIMEOUT", DefaultHTTPWriteTimeout); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = getEnvDuration("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// splitCSV turns a comma separated list into a slice, dropping empty entries.
func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return v, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return v, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// IsProduction reports whether the app runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
