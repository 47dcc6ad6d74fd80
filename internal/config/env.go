package config

import (
	"fmt"

	"github.com/Razgrits/Suno-Battler/internal/constants"

	"github.com/caarlos0/env/v11"
)

// Env holds the settings read from the process environment. Secrets only
// ever come from here; the rest override the config file.
type Env struct {
	ConfigPath   string `env:"SUNO_BATTLER_CONFIG" envDefault:"./suno_battler.json"`
	DBPath       string `env:"SUNO_BATTLER_DB"`
	Address      string `env:"SUNO_BATTLER_ADDR"`
	LogLevel     string `env:"LOG_LEVEL"`
	LogFormat    string `env:"LOG_FORMAT"`
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
}

// ParseEnv loads Env from environment variables.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// Apply overlays the non-empty environment settings on cfg.
func (e Env) Apply(cfg *LoadedConfig) {
	if e.DBPath != "" {
		cfg.DBPath = e.DBPath
	}
	if e.Address != "" {
		cfg.ServerAddress = e.Address
	}
	if e.LogLevel != "" {
		cfg.LogLevel = e.LogLevel
	}
	if e.LogFormat != "" {
		cfg.LogFormat = e.LogFormat
	}
}

// APIKey returns the credential for the configured provider.
func (e Env) APIKey(provider string) string {
	if provider == constants.ProviderGemini {
		return e.GeminiAPIKey
	}
	return e.OpenAIAPIKey
}
