package config

import (
	"log"
	"os"
	"strconv"
)

// Config holds application configuration values.
type Config struct {
	HTTPPort       string
	SeedPath       string
	LogLevel       string
	MetricsEnabled bool
}

// Load reads configuration from environment variables with reasonable defaults.
func Load() Config {
	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}
	// Validate that port is numeric.
	if _, err := strconv.Atoi(port); err != nil {
		log.Printf("invalid HTTP_PORT value %q, defaulting to 8080", port)
		port = "8080"
	}

	seedPath := os.Getenv("SEED_PATH")
	if seedPath == "" {
		seedPath = "assets/medicines.csv"
	}

	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}

	metrics := true
	if v := os.Getenv("METRICS_ENABLED"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid METRICS_ENABLED value %q, defaulting to true", v)
		} else {
			metrics = parsed
		}
	}

	return Config{
		HTTPPort:       port,
		SeedPath:       seedPath,
		LogLevel:       level,
		MetricsEnabled: metrics,
	}
}
