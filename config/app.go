package config

import (
	"fmt"

	"github.com/kbukum/chapterkit/chapters"
	"github.com/kbukum/chapterkit/llm"
	"github.com/kbukum/chapterkit/observability"
	"github.com/kbukum/chapterkit/storage"
	"github.com/kbukum/chapterkit/validation"
)

// OracleConfig selects and configures the oracle backend plus the gateway's
// retry and concurrency contract.
type OracleConfig struct {
	// Provider selects the oracle backend: "bedrock" or "ollama".
	Provider string `yaml:"provider" mapstructure:"provider" validate:"required,oneof=bedrock ollama"`

	llm.GatewayConfig `yaml:",inline" mapstructure:",squash"`

	// Settings carries backend-specific options (region, credentials, URL)
	// passed through to the backend factory.
	Settings map[string]any `yaml:"settings" mapstructure:"settings"`
}

// TranscriptionConfig selects and configures the transcription backend.
type TranscriptionConfig struct {
	// Provider selects the backend: "awstranscribe" or "whisper".
	Provider string `yaml:"provider" mapstructure:"provider" validate:"required,oneof=awstranscribe whisper"`

	// Settings carries backend-specific options passed through to the
	// backend factory.
	Settings map[string]any `yaml:"settings" mapstructure:"settings"`
}

// Config is the full chapterkit configuration.
type Config struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Oracle        OracleConfig          `yaml:"oracle" mapstructure:"oracle"`
	Transcription TranscriptionConfig   `yaml:"transcription" mapstructure:"transcription"`
	Storage       storage.Config        `yaml:"storage" mapstructure:"storage"`
	Chapters      chapters.Config       `yaml:"chapters" mapstructure:"chapters"`
	Telemetry     observability.Config  `yaml:"telemetry" mapstructure:"telemetry"`
}

// ApplyDefaults fills in zero-valued fields across all sections.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "chapterkit"
	}
	c.ServiceConfig.ApplyDefaults()
	if c.Oracle.Provider == "" {
		c.Oracle.Provider = "bedrock"
	}
	c.Oracle.GatewayConfig.ApplyDefaults()
	if c.Transcription.Provider == "" {
		c.Transcription.Provider = "awstranscribe"
	}
	c.Storage.ApplyDefaults()
	c.Chapters.ApplyDefaults()
	c.Telemetry.ApplyDefaults()
}

// Validate checks the whole configuration.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := validation.Validate(c); err != nil {
		return err
	}
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	if err := c.Chapters.Validate(); err != nil {
		return err
	}
	return nil
}

// LoadApp loads, defaults, and validates the full configuration.
func LoadApp(opts ...LoaderOption) (*Config, error) {
	cfg := &Config{}
	if err := Load("chapterkit", cfg, opts...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
