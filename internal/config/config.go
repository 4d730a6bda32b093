package config

import (
	"os"
	"strconv"

	"senscalc/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Observability ObservabilityConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DatabaseConfig holds the optional calculation-history database.
// When URL is empty the history feature is disabled and the engine
// runs fully stateless.
type DatabaseConfig struct {
	URL string
}

// ObservabilityConfig holds the metrics/pprof debug listener settings.
type ObservabilityConfig struct {
	Port    string
	Enabled bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			GinMode: getEnv("GIN_MODE", "release"),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Observability: ObservabilityConfig{
			Port:    getEnv("OBSERVABILITY_PORT", "9090"),
			Enabled: getEnvBool("OBSERVABILITY_ENABLED", true),
		},
	}

	if err := validate(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validate(c *Config) error {
	if c.Server.Port == "" {
		return errors.ConfigInvalid("PORT cannot be empty")
	}
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return errors.ConfigInvalid("PORT must be numeric: " + c.Server.Port)
	}
	if c.Observability.Enabled {
		if _, err := strconv.Atoi(c.Observability.Port); err != nil {
			return errors.ConfigInvalid("OBSERVABILITY_PORT must be numeric: " + c.Observability.Port)
		}
		if c.Observability.Port == c.Server.Port {
			return errors.ConfigInvalid("OBSERVABILITY_PORT must differ from PORT")
		}
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
