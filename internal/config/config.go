// Package config provides configuration management using the Singleton pattern.
// It loads configuration from environment variables and config.yaml using Viper.
package config

import (
	"fmt"
	"sync"

	"github.com/edulab/agent-gateway/internal/domain"
)

// Configuration holds all application configuration values.
type Configuration struct {
	// Server configuration
	Server ServerConfig `json:"server" mapstructure:"server"`

	// Providers configuration (outbound LLM backends)
	Providers ProvidersConfig `json:"providers" mapstructure:"providers"`

	// Personas maps persona name to its prompt and provider route.
	Personas map[string]PersonaConfig `json:"personas" mapstructure:"personas"`

	// Cache configuration for the /chat response cache.
	Cache CacheConfig `json:"cache" mapstructure:"cache"`

	// Logging configuration
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	// Host is the server bind address.
	Host string `json:"host" mapstructure:"host"`

	// Port is the server port number.
	Port int `json:"port" mapstructure:"port"`

	// ReadTimeout is the maximum duration for reading the entire request.
	ReadTimeoutSeconds int `json:"read_timeout_seconds" mapstructure:"read_timeout_seconds"`

	// WriteTimeout is the maximum duration before timing out writes of the response.
	WriteTimeoutSeconds int `json:"write_timeout_seconds" mapstructure:"write_timeout_seconds"`

	// ShutdownTimeout is the maximum duration to wait for active connections to finish.
	ShutdownTimeoutSeconds int `json:"shutdown_timeout_seconds" mapstructure:"shutdown_timeout_seconds"`
}

// ProvidersConfig holds the outbound provider endpoints.
type ProvidersConfig struct {
	Local LocalProviderConfig `json:"local" mapstructure:"local"`
	Cloud CloudProviderConfig `json:"cloud" mapstructure:"cloud"`
}

// LocalProviderConfig configures the local inference server client.
type LocalProviderConfig struct {
	// Endpoint is the full chat endpoint URL of the local server.
	Endpoint string `json:"endpoint" mapstructure:"endpoint"`

	// Model is the model identifier passed to the local server.
	Model string `json:"model" mapstructure:"model"`
}

// CloudProviderConfig configures the cloud completions client.
type CloudProviderConfig struct {
	// BaseURL is the completions endpoint URL.
	BaseURL string `json:"base_url" mapstructure:"base_url"`

	// APIKey is the bearer token. Loaded from OPENROUTER_API_KEY when set.
	APIKey string `json:"api_key" mapstructure:"api_key"`

	// Model is the model identifier.
	Model string `json:"model" mapstructure:"model"`

	// Referer is sent as the HTTP-Referer header.
	Referer string `json:"referer" mapstructure:"referer"`

	// Title is sent as the X-Title header.
	Title string `json:"title" mapstructure:"title"`
}

// PersonaConfig binds a persona to its system prompt and provider route.
type PersonaConfig struct {
	// Prompt is the literal system prompt template. Empty means no system message.
	Prompt string `json:"prompt" mapstructure:"prompt"`

	// Provider selects the route: "local" or "cloud".
	Provider string `json:"provider" mapstructure:"provider"`

	// Temperature is the sampling temperature for this persona.
	Temperature float64 `json:"temperature" mapstructure:"temperature"`
}

// CacheConfig holds the /chat response cache configuration.
type CacheConfig struct {
	// Enabled toggles the cache middleware.
	Enabled bool `json:"enabled" mapstructure:"enabled"`

	// TTLSeconds is the time-to-live of cached replies.
	TTLSeconds int `json:"ttl_seconds" mapstructure:"ttl_seconds"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `json:"level" mapstructure:"level"`

	// Format is the log format (json, text).
	Format string `json:"format" mapstructure:"format"`
}

// configInstance holds the singleton configuration instance.
var (
	configInstance *Configuration
	configOnce     sync.Once
	configErr      error
)

// GetConfig returns the singleton Configuration instance.
// It initializes the configuration on first call using the default config path.
func GetConfig() (*Configuration, error) {
	configOnce.Do(func() {
		configInstance, configErr = loadConfig("")
	})
	return configInstance, configErr
}

// GetConfigWithPath returns the singleton Configuration instance loaded from
// a custom config file path.
func GetConfigWithPath(configPath string) (*Configuration, error) {
	configOnce.Do(func() {
		configInstance, configErr = loadConfig(configPath)
	})
	return configInstance, configErr
}

// ResetConfig resets the singleton instance.
// This is primarily used for testing purposes.
func ResetConfig() {
	configOnce = sync.Once{}
	configInstance = nil
	configErr = nil
}

// Validate validates the configuration and returns an error if required
// fields are missing or out of range.
func (c *Configuration) Validate() error {
	var validationErrors []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		validationErrors = append(validationErrors, "server.port must be between 1 and 65535")
	}

	if c.Providers.Local.Endpoint == "" {
		validationErrors = append(validationErrors, "providers.local.endpoint is required")
	}
	if c.Providers.Local.Model == "" {
		validationErrors = append(validationErrors, "providers.local.model is required")
	}
	if c.Providers.Cloud.BaseURL == "" {
		validationErrors = append(validationErrors, "providers.cloud.base_url is required")
	}

	cloudUsed := false
	for name, p := range c.Personas {
		switch p.Provider {
		case "local":
		case "cloud":
			cloudUsed = true
		default:
			validationErrors = append(validationErrors, fmt.Sprintf(
				"personas.%s.provider '%s' is invalid, must be one of: local, cloud", name, p.Provider,
			))
		}
		if p.Temperature < 0 || p.Temperature > 2 {
			validationErrors = append(validationErrors, fmt.Sprintf(
				"personas.%s.temperature must be between 0 and 2", name,
			))
		}
	}

	if cloudUsed && c.Providers.Cloud.APIKey == "" {
		validationErrors = append(validationErrors,
			"providers.cloud.api_key is required (set OPENROUTER_API_KEY) when a persona routes to the cloud provider")
	}

	if _, ok := c.Personas[string(domain.PersonaTutor)]; !ok {
		validationErrors = append(validationErrors,
			"personas.tutor is required (it is the fallback persona)")
	}

	if c.Cache.Enabled && c.Cache.TTLSeconds <= 0 {
		validationErrors = append(validationErrors, "cache.ttl_seconds must be positive when cache is enabled")
	}

	if c.Logging.Level != "" && !isValidLogLevel(c.Logging.Level) {
		validationErrors = append(validationErrors, fmt.Sprintf(
			"logging.level '%s' is invalid, must be one of: debug, info, warn, error", c.Logging.Level,
		))
	}

	if len(validationErrors) > 0 {
		return &ValidationError{Errors: validationErrors}
	}

	return nil
}

// isValidLogLevel checks if the log level is valid.
func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// PersonaPrompts returns the persona→prompt map consumed by the prompt builder.
func (c *Configuration) PersonaPrompts() map[domain.Persona]string {
	prompts := make(map[domain.Persona]string, len(c.Personas))
	for name, p := range c.Personas {
		prompts[domain.Persona(name)] = p.Prompt
	}
	return prompts
}
