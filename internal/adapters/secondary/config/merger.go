package config

import (
	"os"
	"strconv"

	"github.com/slidecraft/slidecraft/internal/domain/entities"
)

// ConfigMerger implements the ports.ConfigMerger interface
type ConfigMerger struct{}

// NewConfigMerger creates a new configuration merger
func NewConfigMerger() *ConfigMerger {
	return &ConfigMerger{}
}

// Merge merges multiple configurations with later configs taking precedence
func (m *ConfigMerger) Merge(configs ...*entities.Config) *entities.Config {
	if len(configs) == 0 {
		return GetDefaultConfig()
	}

	result := deepCopy(configs[0])

	for i := 1; i < len(configs); i++ {
		if configs[i] != nil {
			m.mergeInto(result, configs[i])
		}
	}

	return result
}

// ApplyFlags applies CLI flag overrides to a configuration
func (m *ConfigMerger) ApplyFlags(config *entities.Config, flags map[string]interface{}) *entities.Config {
	result := deepCopy(config)

	if port, ok := flags["port"].(int); ok && port > 0 {
		result.Server.Port = port
	}

	if host, ok := flags["host"].(string); ok && host != "" {
		result.Server.Host = host
	}

	if model, ok := flags["model"].(string); ok && model != "" {
		result.Generator.DefaultModel = model
	}

	if templatesDir, ok := flags["templates-dir"].(string); ok && templatesDir != "" {
		result.Templates.Directory = templatesDir
	}

	if noSearch, ok := flags["no-live-context"].(bool); ok && noSearch {
		result.Search.Enabled = false
	}

	return result
}

// ApplyEnvVars applies environment variable overrides to a configuration
func (m *ConfigMerger) ApplyEnvVars(config *entities.Config) *entities.Config {
	result := deepCopy(config)

	if host := os.Getenv("SLIDECRAFT_HOST"); host != "" {
		result.Server.Host = host
	}

	if portStr := os.Getenv("SLIDECRAFT_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			result.Server.Port = port
		}
	}

	if baseURL := os.Getenv("SLIDECRAFT_API_BASE"); baseURL != "" {
		result.Generator.BaseURL = baseURL
	}

	if key := os.Getenv("OPENROUTER_API_KEY"); key != "" {
		result.Generator.APIKey = key
	}

	if model := os.Getenv("SLIDECRAFT_MODEL"); model != "" {
		result.Generator.DefaultModel = model
	}

	if dir := os.Getenv("SLIDECRAFT_TEMPLATES_DIR"); dir != "" {
		result.Templates.Directory = dir
	}

	if liveStr := os.Getenv("SLIDECRAFT_LIVE_CONTEXT"); liveStr != "" {
		if live, err := strconv.ParseBool(liveStr); err == nil {
			result.Search.Enabled = live
		}
	}

	if level := os.Getenv("SLIDECRAFT_LOG_LEVEL"); level != "" {
		result.Logging.Level = level
	}

	return result
}

// mergeInto merges source configuration into target configuration
func (m *ConfigMerger) mergeInto(target, source *entities.Config) {
	// Server config
	if source.Server.Port != 0 {
		target.Server.Port = source.Server.Port
	}
	if source.Server.Host != "" {
		target.Server.Host = source.Server.Host
	}
	if source.Server.ReadTimeout != 0 {
		target.Server.ReadTimeout = source.Server.ReadTimeout
	}
	if source.Server.WriteTimeout != 0 {
		target.Server.WriteTimeout = source.Server.WriteTimeout
	}
	if source.Server.ShutdownTimeout != 0 {
		target.Server.ShutdownTimeout = source.Server.ShutdownTimeout
	}
	if len(source.Server.CORSOrigins) > 0 {
		target.Server.CORSOrigins = append([]string(nil), source.Server.CORSOrigins...)
	}

	// Generator config
	if source.Generator.BaseURL != "" {
		target.Generator.BaseURL = source.Generator.BaseURL
	}
	if source.Generator.APIKey != "" {
		target.Generator.APIKey = source.Generator.APIKey
	}
	if source.Generator.DefaultModel != "" {
		target.Generator.DefaultModel = source.Generator.DefaultModel
	}
	if source.Generator.CatalogPath != "" {
		target.Generator.CatalogPath = source.Generator.CatalogPath
	}
	if source.Generator.MaxAttempts != 0 {
		target.Generator.MaxAttempts = source.Generator.MaxAttempts
	}
	if source.Generator.RetryDelayMs != 0 {
		target.Generator.RetryDelayMs = source.Generator.RetryDelayMs
	}
	if source.Generator.TimeoutSeconds != 0 {
		target.Generator.TimeoutSeconds = source.Generator.TimeoutSeconds
	}

	// Search config
	// Boolean fields always merge; TOML cannot distinguish false from unset
	target.Search.Enabled = source.Search.Enabled
	if source.Search.MaxSnippets != 0 {
		target.Search.MaxSnippets = source.Search.MaxSnippets
	}
	if source.Search.TimeoutSeconds != 0 {
		target.Search.TimeoutSeconds = source.Search.TimeoutSeconds
	}

	// Templates config
	if source.Templates.Directory != "" {
		target.Templates.Directory = source.Templates.Directory
	}
	if source.Templates.Default != "" {
		target.Templates.Default = source.Templates.Default
	}

	// Logging config
	if source.Logging.Level != "" {
		target.Logging.Level = source.Logging.Level
	}
	target.Logging.Verbose = source.Logging.Verbose
	if source.Logging.File != "" {
		target.Logging.File = source.Logging.File
	}
}

// deepCopy creates an independent copy of a configuration
func deepCopy(config *entities.Config) *entities.Config {
	if config == nil {
		return GetDefaultConfig()
	}

	copied := *config
	copied.Server.CORSOrigins = append([]string(nil), config.Server.CORSOrigins...)

	return &copied
}
