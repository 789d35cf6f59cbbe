package common

import (
	"os"
)

// Config holds all application configuration
type Config struct {
	Output OutputConfig
	Store  StoreConfig
}

// OutputConfig holds output-related configuration
type OutputConfig struct {
	Dir      string
	XLSXPath string
}

// StoreConfig holds run-history store configuration
type StoreConfig struct {
	Path string
}

// LoadConfig loads configuration from environment variables. CLI flags
// override these defaults.
func LoadConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Dir:      getEnv("UPSEXTRACT_OUTPUT_DIR", "./out"),
			XLSXPath: getEnv("UPSEXTRACT_XLSX", ""),
		},
		Store: StoreConfig{
			Path: getEnv("UPSEXTRACT_DB", ""),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
