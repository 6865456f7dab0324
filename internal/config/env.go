// Package config reads configuration from the environment. Entrypoints
// load .env files via godotenv's autoload import; everything else goes
// through these helpers.
package config

import (
	"os"
	"strconv"
)

// GetEnv reads an environment variable or returns a default value.
func GetEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// GetEnvInt parses an environment variable as an integer, falling back
// to the default on absence or parse failure.
func GetEnvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
