// Package config reads runtime configuration from the environment.
package config

import (
	"os"
	"time"
)

// Config holds everything the binary needs at startup.
type Config struct {
	Addr         string
	DBPath       string
	GeminiAPIKey string
	GeminiModel  string
	AskTimeout   time.Duration
	OTLPEndpoint string
	Debug        bool
}

// FromEnv builds a Config from environment variables with defaults
// suitable for local use.
func FromEnv() Config {
	return Config{
		Addr:         getEnv("ATHENA_ADDR", "localhost:8080"),
		DBPath:       getEnv("ATHENA_DB_PATH", "athena.db"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		AskTimeout:   getDuration("ATHENA_ASK_TIMEOUT", 30*time.Second),
		OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		Debug:        os.Getenv("ATHENA_DEBUG") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return defaultValue
	}
	return d
}
