package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	BackendScheme  string
	BackendHost    string
	BackendPort    int
	Model          string
	Temperature    float64
	MaxTokens      int
	HistoryWindow  int
	RequestTimeout time.Duration
	APIPort        string
	LogLevel       slog.Level
	LogFormat      string
	RateLimitRPS   float64
	RateLimitBurst int
}

// BackendURL returns the base URL of the inference backend.
func (c *Config) BackendURL() string {
	return fmt.Sprintf("%s://%s:%d", c.BackendScheme, c.BackendHost, c.BackendPort)
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates the result.
// If a .env file exists in the current directory or project root, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	// Check current directory first, then walk up to find project root (where go.mod is)
	_ = godotenv.Load() // Try current directory

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break // Reached filesystem root
			}
			dir = parent
		}
	}

	cfg := &Config{
		BackendScheme: getEnv("BACKEND_SCHEME", "http"),
		BackendHost:   getEnv("BACKEND_HOST", "localhost"),
		Model:         getEnv("MODEL", "qwen2.5:14b"),
		APIPort:       getEnv("API_PORT", "8000"),
		LogFormat:     getEnv("LOG_FORMAT", "text"),
	}

	cfg.BackendPort, err = getEnvInt("BACKEND_PORT", 11434)
	if err != nil {
		return nil, err
	}
	if cfg.BackendPort < 1 || cfg.BackendPort > 65535 {
		return nil, fmt.Errorf("BACKEND_PORT out of range: %d", cfg.BackendPort)
	}

	cfg.Temperature, err = getEnvFloat("TEMPERATURE", 0.7)
	if err != nil {
		return nil, err
	}
	if cfg.Temperature < 0 || cfg.Temperature > 2 {
		return nil, fmt.Errorf("TEMPERATURE must be between 0 and 2, got %g", cfg.Temperature)
	}

	cfg.MaxTokens, err = getEnvInt("MAX_TOKENS", 2000)
	if err != nil {
		return nil, err
	}
	if cfg.MaxTokens <= 0 {
		return nil, fmt.Errorf("MAX_TOKENS must be greater than 0")
	}

	cfg.HistoryWindow, err = getEnvInt("HISTORY_WINDOW", 20)
	if err != nil {
		return nil, err
	}
	if cfg.HistoryWindow <= 0 {
		return nil, fmt.Errorf("HISTORY_WINDOW must be greater than 0")
	}

	timeoutSecs, err := getEnvInt("REQUEST_TIMEOUT_SECONDS", 120)
	if err != nil {
		return nil, err
	}
	if timeoutSecs <= 0 {
		return nil, fmt.Errorf("REQUEST_TIMEOUT_SECONDS must be greater than 0")
	}
	cfg.RequestTimeout = time.Duration(timeoutSecs) * time.Second

	cfg.RateLimitRPS, err = getEnvFloat("RATE_LIMIT_RPS", 5)
	if err != nil {
		return nil, err
	}
	if cfg.RateLimitRPS <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_RPS must be greater than 0")
	}

	cfg.RateLimitBurst, err = getEnvInt("RATE_LIMIT_BURST", 10)
	if err != nil {
		return nil, err
	}
	if cfg.RateLimitBurst <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_BURST must be greater than 0")
	}

	cfg.LogLevel, err = parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be \"text\" or \"json\", got %q", cfg.LogFormat)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable or returns a default value.
func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return parsed, nil
}

// getEnvFloat gets a float environment variable or returns a default value.
func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid number: %w", key, err)
	}
	return parsed, nil
}

// parseLogLevel converts a level name into a slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error; got %q", level)
	}
}
