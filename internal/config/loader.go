// Package config provides configuration management using the Singleton pattern.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultConfigName = "config"
	defaultConfigType = "yaml"
	envPrefix         = "AGENT_GATEWAY"

	// EnvCloudAPIKey is the primary environment variable for the cloud
	// provider API key. It takes priority over file configuration so the
	// key never has to live in config.yaml.
	EnvCloudAPIKey = "OPENROUTER_API_KEY"
)

// Default persona prompts. The sales-content prompt is the production
// Indonesian marketing persona; the evaluator prompt pins the JSON contract
// the analysis normalizer validates against.
const (
	defaultTutorPrompt = "Kamu adalah tutor pendidikan yang ramah. " +
		"Jawab pertanyaan siswa dengan jelas, singkat, dan mudah dipahami."

	defaultSalesPrompt = "Kamu adalah AI Content Generator khusus sales: " +
		"buat konten profesional, singkat, persuasif, ramah, mudah dipahami, bahasa Indonesia."

	defaultEvaluatorPrompt = "Kamu adalah evaluator akademik. Analisis deskripsi kelas berikut dan " +
		"balas HANYA dengan JSON valid berbentuk: " +
		`{"students":[{"name":string,"category":"High Performer"|"Moderate"|"Needs Support",` +
		`"engagement":0-100,"progress_score":0-100,"study_recommendation":string}],` +
		`"summary":{"class_avg_progress":0-100,"class_engagement_health":"Good"|"Normal"|"Low",` +
		`"priority_actions":[string]}}. Tanpa teks lain di luar JSON.`
)

// loadConfig loads the configuration from environment variables and files.
// Priority order (highest to lowest):
//  1. OPENROUTER_API_KEY env var for the cloud API key
//  2. Environment variables (prefixed with AGENT_GATEWAY_)
//  3. config.yaml (fallback for local development)
//  4. Default values
//
// A .env file in the working directory is loaded first, if present.
func loadConfig(configPath string) (*Configuration, error) {
	// Optional .env for local development; missing file is fine.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName(defaultConfigName)
	v.SetConfigType(defaultConfigType)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/agent-gateway")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, &ConfigError{
				Op:  "read",
				Err: fmt.Errorf("failed to read config file: %w", err),
			}
		}
		// Config file not found is OK - defaults plus env vars suffice.
	}

	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &ConfigError{
			Op:  "unmarshal",
			Err: fmt.Errorf("failed to unmarshal config: %w", err),
		}
	}

	// The primary key env var beats any file-configured key.
	if key := os.Getenv(EnvCloudAPIKey); key != "" {
		cfg.Providers.Cloud.APIKey = key
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout_seconds", 30)
	v.SetDefault("server.write_timeout_seconds", 60)
	v.SetDefault("server.shutdown_timeout_seconds", 15)

	// Provider defaults
	v.SetDefault("providers.local.endpoint", "http://localhost:11434/api/chat")
	v.SetDefault("providers.local.model", "llama3.2")
	v.SetDefault("providers.cloud.base_url", "https://openrouter.ai/api/v1/chat/completions")
	v.SetDefault("providers.cloud.model", "arcee-ai/trinity-mini:free")
	v.SetDefault("providers.cloud.referer", "http://localhost")
	v.SetDefault("providers.cloud.title", "Agent Gateway")

	// Persona defaults
	v.SetDefault("personas.tutor.prompt", defaultTutorPrompt)
	v.SetDefault("personas.tutor.provider", "local")
	v.SetDefault("personas.tutor.temperature", 0.7)

	v.SetDefault("personas.sales-content.prompt", defaultSalesPrompt)
	v.SetDefault("personas.sales-content.provider", "cloud")
	v.SetDefault("personas.sales-content.temperature", 0.6)

	v.SetDefault("personas.academic-evaluator.prompt", defaultEvaluatorPrompt)
	v.SetDefault("personas.academic-evaluator.provider", "cloud")
	v.SetDefault("personas.academic-evaluator.temperature", 0.2)

	// Cache defaults
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl_seconds", 300)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}
