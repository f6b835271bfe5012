package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Generator GeneratorConfig
	Render    RenderConfig
	Storage   StorageConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"5000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// GeneratorConfig holds graph text generator configuration.
type GeneratorConfig struct {
	APIKey  string        `envconfig:"GENERATOR_API_KEY"`
	Model   string        `envconfig:"GENERATOR_MODEL" default:"gpt-4o-mini"`
	BaseURL string        `envconfig:"GENERATOR_BASE_URL"`
	Timeout time.Duration `envconfig:"GENERATOR_TIMEOUT" default:"60s"`
}

// RenderConfig holds render pipeline configuration.
type RenderConfig struct {
	TemplatePDF string `envconfig:"PDF_TEMPLATE" default:"Template.pdf"`
}

// StorageConfig holds filesystem layout configuration.
type StorageConfig struct {
	SessionDir  string `envconfig:"SESSION_DIR" default:"./session_files"`
	OutputDir   string `envconfig:"OUTPUT_DIR" default:"./outputs"`
	TempDir     string `envconfig:"TEMP_DIR" default:"./temp_files"`
	TemplateDir string `envconfig:"TEMPLATE_DIR" default:"./flowchart_templates"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns defaults.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "5000",
			Host: "0.0.0.0",
		},
		Generator: GeneratorConfig{
			Model:   "gpt-4o-mini",
			Timeout: 60 * time.Second,
		},
		Render: RenderConfig{
			TemplatePDF: "Template.pdf",
		},
		Storage: StorageConfig{
			SessionDir:  "./session_files",
			OutputDir:   "./outputs",
			TempDir:     "./temp_files",
			TemplateDir: "./flowchart_templates",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
}
