// Package config loads process configuration from environment variables,
// grounded on api/pkg/config/config.go's shape. The JWT/session/puzzle-file
// fields are dropped: spec.md's Non-goals exclude persistence and network
// auth, and this module never issues or checks a token.
package config

import (
	"os"

	"sudoku-engine/pkg/constants"
)

// Config holds the server's runtime configuration.
type Config struct {
	Port string
}

// Load reads configuration from the environment, applying defaults for
// anything unset.
func Load() *Config {
	return &Config{
		Port: getEnv("PORT", constants.DefaultPort),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
