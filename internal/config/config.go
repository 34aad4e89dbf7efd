package config

import (
	"os"
	"strconv"
)

// Config holds the verification service configuration.
type Config struct {
	// HTTP server
	HTTPAddr string

	// Analysis
	EnableAnalysis bool
	FrameInterval  int

	// Limits
	MaxUploadBytes int64
	MaxAnalyses    int
}

// Load loads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
		EnableAnalysis: getEnvBool("ENABLE_ANALYSIS", true),
		FrameInterval:  getEnvInt("FRAME_INTERVAL_MS", 1),
		MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_BYTES", 256<<20)),
		MaxAnalyses:    getEnvInt("MAX_ANALYSES", 1024),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
