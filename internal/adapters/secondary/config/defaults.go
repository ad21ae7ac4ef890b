package config

import (
	"os"
	"strconv"

	"github.com/slidecraft/slidecraft/internal/domain/entities"
)

// GetDefaultConfig returns the default configuration with environment overrides
func GetDefaultConfig() *entities.Config {
	return &entities.Config{
		Server: entities.ServerConfig{
			Host:            getEnvOrDefault("SLIDECRAFT_HOST", "localhost"),
			Port:            getEnvIntOrDefault("SLIDECRAFT_PORT", 8421),
			ReadTimeout:     getEnvIntOrDefault("SLIDECRAFT_READ_TIMEOUT", 30),
			WriteTimeout:    getEnvIntOrDefault("SLIDECRAFT_WRITE_TIMEOUT", 180),
			ShutdownTimeout: getEnvIntOrDefault("SLIDECRAFT_SHUTDOWN_TIMEOUT", 5),
			CORSOrigins: []string{
				"http://localhost:8421",
				"http://127.0.0.1:8421",
			},
		},
		Generator: entities.GeneratorConfig{
			BaseURL:        getEnvOrDefault("SLIDECRAFT_API_BASE", "https://openrouter.ai/api/v1"),
			APIKey:         os.Getenv("OPENROUTER_API_KEY"),
			DefaultModel:   "mistralai/mistral-7b-instruct",
			MaxAttempts:    3,
			RetryDelayMs:   1000,
			TimeoutSeconds: 120,
		},
		Search: entities.SearchConfig{
			Enabled:        getEnvBoolOrDefault("SLIDECRAFT_LIVE_CONTEXT", true),
			MaxSnippets:    5,
			TimeoutSeconds: 15,
		},
		Templates: entities.TemplatesConfig{
			Directory: getEnvOrDefault("SLIDECRAFT_TEMPLATES_DIR", "templates"),
		},
		Logging: entities.LoggingConfig{
			Level:   getEnvOrDefault("SLIDECRAFT_LOG_LEVEL", "info"),
			Verbose: getEnvBoolOrDefault("SLIDECRAFT_LOG_VERBOSE", false),
		},
	}
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvIntOrDefault returns the environment variable as int or a default
func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBoolOrDefault returns the environment variable as bool or a default
func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
