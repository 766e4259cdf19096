package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	IsProduction   bool
	MigrationsPath string

	// Posting retry bounds for transient per-account conflicts.
	PostMaxAttempts  int
	PostRetryBackoff time.Duration
}

// LoadConfig loads configuration from environment variables and a .env file
// if present. Actual environment variables override .env values.
func LoadConfig() (*Config, error) {
	// Ignore the error: a missing .env file is the normal production case.
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("POST_MAX_ATTEMPTS", 3)
	viper.SetDefault("POST_RETRY_BACKOFF", "25ms")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")

	cfg.PostMaxAttempts = viper.GetInt("POST_MAX_ATTEMPTS")
	if cfg.PostMaxAttempts <= 0 {
		cfg.PostMaxAttempts = 3
	}

	backoffStr := viper.GetString("POST_RETRY_BACKOFF")
	backoff, err := time.ParseDuration(backoffStr)
	if err != nil {
		backoff = 25 * time.Millisecond
		if backoffStr != "" {
			log.Printf("Warning: Invalid value for POST_RETRY_BACKOFF ('%s'). Defaulting to %s.\n", backoffStr, backoff)
		}
	}
	cfg.PostRetryBackoff = backoff

	return cfg, nil
}
