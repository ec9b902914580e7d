// Package config loads service settings from a YAML file and environment
// variables, with sane defaults for local development.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the root configuration for the service.
type Config struct {
	Listen   string         `mapstructure:"listen"`
	DBPath   string         `mapstructure:"db_path"`
	Auth     AuthConfig     `mapstructure:"auth"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Credits  CreditsConfig  `mapstructure:"credits"`
	Autosave AutosaveConfig `mapstructure:"autosave"`
	Log      LogConfig      `mapstructure:"log"`
}

type AuthConfig struct {
	JWTSecret     string `mapstructure:"jwt_secret"`
	WebhookSecret string `mapstructure:"webhook_secret"`
}

type LLMConfig struct {
	Endpoint    string  `mapstructure:"endpoint"`
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	Temperature float64 `mapstructure:"temperature"`
	TimeoutMs   int     `mapstructure:"timeout_ms"`
	MaxRetries  int     `mapstructure:"max_retries"`
}

type CreditsConfig struct {
	Plans     map[string]int `mapstructure:"plans"`
	Default   int            `mapstructure:"default"`
	Whitelist []string       `mapstructure:"whitelist"`
}

type AutosaveConfig struct {
	DelayMs int `mapstructure:"delay_ms"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"` // "text" or "json"
	Output     string `mapstructure:"output"` // "stdout", "stderr" or "file"
	FilePath   string `mapstructure:"file_path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("listen", ":8080")
	v.SetDefault("db_path", "projectflow.db")
	v.SetDefault("llm.endpoint", "https://api.openai.com/v1")
	v.SetDefault("llm.model", "gpt-4")
	v.SetDefault("llm.temperature", 0.3)
	v.SetDefault("llm.timeout_ms", 30000)
	v.SetDefault("llm.max_retries", 1)
	v.SetDefault("credits.plans", map[string]int{"basic": 5, "pro": 12})
	v.SetDefault("credits.default", 5)
	v.SetDefault("autosave.delay_ms", 2000)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
}

// Load reads the config file at path (optional; defaults apply when the
// file is absent) and overlays PROJECTFLOW_* environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("PROJECTFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// ValidateForServe checks the settings the HTTP service cannot run without.
func (c *Config) ValidateForServe() error {
	var errs []error
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		errs = append(errs, errors.New("auth.jwt_secret is required"))
	}
	if strings.TrimSpace(c.Auth.WebhookSecret) == "" {
		errs = append(errs, errors.New("auth.webhook_secret is required"))
	}
	if c.Log.Output == "file" && strings.TrimSpace(c.Log.FilePath) == "" {
		errs = append(errs, errors.New("log.file_path is required when log.output is file"))
	}
	return errors.Join(errs...)
}
