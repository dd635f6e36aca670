package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Provider backends selectable via TEMPO_PROVIDER.
const (
	ProviderNone      = "none"
	ProviderGoogleFit = "googlefit"
	ProviderMemory    = "memory"
)

type Config struct {
	// Database
	DBPath string

	// External activity provider
	Provider         string
	ProviderSeedFile string // memory provider only
	SyncInterval     time.Duration

	// Category classification for productivity metrics
	ExerciseCategories    []string
	ImprovementCategories []string
}

func Load() *Config {
	return &Config{
		DBPath: getEnv("TEMPO_DB_PATH", "./data/tempo.db"),

		Provider:         getEnv("TEMPO_PROVIDER", ProviderNone),
		ProviderSeedFile: getEnv("TEMPO_PROVIDER_SEED_FILE", ""),
		SyncInterval:     getEnvDuration("TEMPO_SYNC_INTERVAL", 15*time.Minute),

		ExerciseCategories:    getEnvList("TEMPO_EXERCISE_CATEGORIES"),
		ImprovementCategories: getEnvList("TEMPO_IMPROVEMENT_CATEGORIES"),
	}
}

// Validate checks the configuration and returns one error naming every
// problem found.
func (c *Config) Validate() error {
	var errors []string

	if c.DBPath == "" {
		errors = append(errors, "database path cannot be empty")
	} else {
		dir := filepath.Dir(c.DBPath)
		if dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errors = append(errors, fmt.Sprintf("cannot create database directory '%s': %v", dir, err))
				}
			}
		}
	}

	switch c.Provider {
	case ProviderNone, ProviderGoogleFit, ProviderMemory:
	default:
		errors = append(errors, fmt.Sprintf("invalid provider '%s': must be one of [%s %s %s]",
			c.Provider, ProviderNone, ProviderGoogleFit, ProviderMemory))
	}

	if c.SyncInterval < time.Second {
		errors = append(errors, fmt.Sprintf("invalid sync interval %v: must be at least 1 second", c.SyncInterval))
	} else if c.SyncInterval > 24*time.Hour {
		errors = append(errors, fmt.Sprintf("invalid sync interval %v: must be at most 24 hours", c.SyncInterval))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// getEnvList splits a comma-separated variable into trimmed, non-empty names.
func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
