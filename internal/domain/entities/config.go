package entities

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Generator GeneratorConfig `toml:"generator"`
	Search    SearchConfig    `toml:"search"`
	Templates TemplatesConfig `toml:"templates"`
	Logging   LoggingConfig   `toml:"logging"`
}

// Validate validates the entire configuration
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := c.Generator.Validate(); err != nil {
		return fmt.Errorf("generator config: %w", err)
	}

	if err := c.Search.Validate(); err != nil {
		return fmt.Errorf("search config: %w", err)
	}

	if err := c.Templates.Validate(); err != nil {
		return fmt.Errorf("templates config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string   `toml:"host"`
	Port            int      `toml:"port"`
	ReadTimeout     int      `toml:"read_timeout"`
	WriteTimeout    int      `toml:"write_timeout"`
	ShutdownTimeout int      `toml:"shutdown_timeout"`
	CORSOrigins     []string `toml:"cors_origins"`
}

// Validate validates server configuration
func (s ServerConfig) Validate() error {
	if s.Port < 0 || s.Port > 65535 {
		return errors.New("port must be between 0 and 65535")
	}

	if s.Host != "" {
		if ip := net.ParseIP(s.Host); ip == nil {
			if _, err := net.LookupHost(s.Host); err != nil {
				return fmt.Errorf("invalid host: %w", err)
			}
		}
	}

	if s.ReadTimeout < 0 {
		return errors.New("read timeout must be non-negative")
	}

	if s.WriteTimeout < 0 {
		return errors.New("write timeout must be non-negative")
	}

	if s.ShutdownTimeout < 0 {
		return errors.New("shutdown timeout must be non-negative")
	}

	for _, origin := range s.CORSOrigins {
		if origin == "" {
			return errors.New("CORS origin cannot be empty")
		}
		if origin == "*" {
			continue
		}
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("invalid CORS origin format: %s (must start with http:// or https://)", origin)
		}
	}

	return nil
}

// GetReadTimeout returns the read timeout as a duration
func (s ServerConfig) GetReadTimeout() time.Duration {
	if s.ReadTimeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(s.ReadTimeout) * time.Second
}

// GetWriteTimeout returns the write timeout as a duration
func (s ServerConfig) GetWriteTimeout() time.Duration {
	if s.WriteTimeout <= 0 {
		// Generation can take a while; keep writes open long enough
		return 180 * time.Second
	}
	return time.Duration(s.WriteTimeout) * time.Second
}

// GetShutdownTimeout returns the shutdown timeout as a duration
func (s ServerConfig) GetShutdownTimeout() time.Duration {
	if s.ShutdownTimeout <= 0 {
		return 5 * time.Second
	}
	return time.Duration(s.ShutdownTimeout) * time.Second
}

// GeneratorConfig contains text-generation backend configuration
type GeneratorConfig struct {
	// BaseURL is the OpenAI-compatible API endpoint
	BaseURL string `toml:"base_url"`

	// APIKey authenticates against the generation backend. Usually
	// injected from the OPENROUTER_API_KEY environment variable rather
	// than written to disk.
	APIKey string `toml:"api_key"`

	// DefaultModel is the backend model id used when none is selected
	DefaultModel string `toml:"default_model"`

	// CatalogPath optionally points at a YAML model catalog file
	CatalogPath string `toml:"catalog_path"`

	// MaxAttempts bounds the retry loop around malformed model output
	MaxAttempts int `toml:"max_attempts"`

	// RetryDelayMs is the pause between generation attempts
	RetryDelayMs int `toml:"retry_delay_ms"`

	// TimeoutSeconds bounds a single generation call
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// Validate validates generator configuration
func (g GeneratorConfig) Validate() error {
	if g.BaseURL != "" && !strings.HasPrefix(g.BaseURL, "http://") && !strings.HasPrefix(g.BaseURL, "https://") {
		return fmt.Errorf("invalid base URL: %s", g.BaseURL)
	}

	if g.MaxAttempts < 0 {
		return errors.New("max attempts must be non-negative")
	}

	if g.RetryDelayMs < 0 {
		return errors.New("retry delay must be non-negative")
	}

	if g.TimeoutSeconds < 0 {
		return errors.New("timeout must be non-negative")
	}

	return nil
}

// GetMaxAttempts returns the bounded retry count
func (g GeneratorConfig) GetMaxAttempts() int {
	if g.MaxAttempts <= 0 {
		return 3
	}
	return g.MaxAttempts
}

// GetRetryDelay returns the delay between attempts as a duration
func (g GeneratorConfig) GetRetryDelay() time.Duration {
	if g.RetryDelayMs <= 0 {
		return time.Second
	}
	return time.Duration(g.RetryDelayMs) * time.Millisecond
}

// GetTimeout returns the per-call timeout as a duration
func (g GeneratorConfig) GetTimeout() time.Duration {
	if g.TimeoutSeconds <= 0 {
		return 120 * time.Second
	}
	return time.Duration(g.TimeoutSeconds) * time.Second
}

// SearchConfig contains web-context enrichment configuration
type SearchConfig struct {
	// Enabled toggles the live-context default for new requests
	Enabled bool `toml:"enabled"`

	// MaxSnippets caps how many search snippets are added to the prompt
	MaxSnippets int `toml:"max_snippets"`

	// TimeoutSeconds bounds the search call
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// Validate validates search configuration
func (s SearchConfig) Validate() error {
	if s.MaxSnippets < 0 {
		return errors.New("max snippets must be non-negative")
	}
	if s.TimeoutSeconds < 0 {
		return errors.New("timeout must be non-negative")
	}
	return nil
}

// GetMaxSnippets returns the snippet cap
func (s SearchConfig) GetMaxSnippets() int {
	if s.MaxSnippets <= 0 {
		return 5
	}
	return s.MaxSnippets
}

// GetTimeout returns the search timeout as a duration
func (s SearchConfig) GetTimeout() time.Duration {
	if s.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// TemplatesConfig locates deck templates on disk
type TemplatesConfig struct {
	// Directory containing *.pptx template files
	Directory string `toml:"directory"`

	// Default is the template file used when none is selected
	Default string `toml:"default"`
}

// Validate validates templates configuration
func (t TemplatesConfig) Validate() error {
	if t.Directory == "" {
		return nil // resolved to "./templates" at load time
	}

	if info, err := os.Stat(t.Directory); err == nil && !info.IsDir() {
		return fmt.Errorf("templates path is not a directory: %s", t.Directory)
	}

	return nil
}

// GetDirectory returns the templates directory, defaulting to ./templates
func (t TemplatesConfig) GetDirectory() string {
	if t.Directory == "" {
		return "templates"
	}
	return t.Directory
}

// LogLevel represents logging verbosity levels
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level   string `toml:"level"`
	Verbose bool   `toml:"verbose"`
	File    string `toml:"file"`
}

// Validate validates logging configuration
func (l LoggingConfig) Validate() error {
	switch strings.ToLower(l.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", l.Level)
	}

	if l.File != "" {
		if !filepath.IsAbs(l.File) {
			return errors.New("log file path must be absolute")
		}
		dir := filepath.Dir(l.File)
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return fmt.Errorf("log file directory does not exist: %s", dir)
		}
	}

	return nil
}

// GetLevel returns the configured level, defaulting to info
func (l LoggingConfig) GetLevel() LogLevel {
	switch strings.ToLower(l.Level) {
	case "debug":
		return LogLevelDebug
	case "warn":
		return LogLevelWarn
	case "error":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}
