package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Razgrits/Suno-Battler/internal/constants"

	"gopkg.in/yaml.v3"
)

type rawConfig struct {
	Server *struct {
		Address string `json:"address" yaml:"address"`
	} `json:"server" yaml:"server"`
	Database *struct {
		Path string `json:"path" yaml:"path"`
	} `json:"database" yaml:"database"`
	Generator *struct {
		// Provider is "openai" or "gemini".
		Provider string `json:"provider" yaml:"provider"`
		Model    string `json:"model" yaml:"model"`
		// Optional prompt template. Use the token {{songs}} where the song
		// descriptions will be substituted.
		Prompt         string `json:"prompt" yaml:"prompt"`
		TimeoutSeconds int    `json:"timeout_seconds" yaml:"timeout_seconds"`
	} `json:"generator" yaml:"generator"`
	Battle *struct {
		TurnDelayMillis   int `json:"turn_delay_ms" yaml:"turn_delay_ms"`
		SessionTTLMinutes int `json:"session_ttl_minutes" yaml:"session_ttl_minutes"`
		// Seed fixes the engine's random source; 0 means time-seeded.
		Seed int64 `json:"seed" yaml:"seed"`
	} `json:"battle" yaml:"battle"`
	Log *struct {
		Level  string `json:"level" yaml:"level"`
		Format string `json:"format" yaml:"format"`
	} `json:"log" yaml:"log"`
}

// LoadedConfig contains everything the server needs to start.
type LoadedConfig struct {
	ServerAddress string
	DBPath        string

	Provider          string
	Model             string
	PromptTemplate    string
	GenerationTimeout time.Duration

	TurnDelay  time.Duration
	SessionTTL time.Duration
	Seed       int64

	LogLevel  string
	LogFormat string
}

// Default returns the configuration used when no file is present.
func Default() *LoadedConfig {
	return &LoadedConfig{
		ServerAddress:     ":8080",
		DBPath:            constants.DefaultDBPath,
		Provider:          constants.ProviderOpenAI,
		Model:             constants.OpenAIChatModel,
		GenerationTimeout: 90 * time.Second,
		TurnDelay:         2 * time.Second,
		SessionTTL:        30 * time.Minute,
		LogLevel:          "info",
		LogFormat:         "json",
	}
}

// LoadConfig reads the configuration file at path and overlays it on the
// defaults. Every section is optional.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return Parse(path, b)
}

// Parse decodes raw config bytes. Files ending in .yaml or .yml are read as
// YAML, anything else as JSON.
func Parse(path string, b []byte) (*LoadedConfig, error) {
	var rc rawConfig
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &rc)
	default:
		err = json.Unmarshal(b, &rc)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	cfg := Default()

	if rc.Server != nil && rc.Server.Address != "" {
		cfg.ServerAddress = rc.Server.Address
	}
	if rc.Database != nil && rc.Database.Path != "" {
		cfg.DBPath = rc.Database.Path
	}
	if g := rc.Generator; g != nil {
		if p := strings.ToLower(strings.TrimSpace(g.Provider)); p != "" {
			if p != constants.ProviderOpenAI && p != constants.ProviderGemini {
				return nil, fmt.Errorf("config file %s: unknown generator.provider %q (use %q or %q)", path, g.Provider, constants.ProviderOpenAI, constants.ProviderGemini)
			}
			cfg.Provider = p
			if p == constants.ProviderGemini {
				cfg.Model = constants.GeminiModel
			}
		}
		if m := strings.TrimSpace(g.Model); m != "" {
			cfg.Model = m
		}
		cfg.PromptTemplate = strings.TrimSpace(g.Prompt)
		if g.TimeoutSeconds < 0 {
			return nil, fmt.Errorf("config file %s: generator.timeout_seconds must not be negative", path)
		}
		if g.TimeoutSeconds > 0 {
			cfg.GenerationTimeout = time.Duration(g.TimeoutSeconds) * time.Second
		}
	}
	if bt := rc.Battle; bt != nil {
		if bt.TurnDelayMillis < 0 || bt.SessionTTLMinutes < 0 {
			return nil, fmt.Errorf("config file %s: battle durations must not be negative", path)
		}
		if bt.TurnDelayMillis > 0 {
			cfg.TurnDelay = time.Duration(bt.TurnDelayMillis) * time.Millisecond
		}
		if bt.SessionTTLMinutes > 0 {
			cfg.SessionTTL = time.Duration(bt.SessionTTLMinutes) * time.Minute
		}
		cfg.Seed = bt.Seed
	}
	if l := rc.Log; l != nil {
		if l.Level != "" {
			cfg.LogLevel = l.Level
		}
		if l.Format != "" {
			cfg.LogFormat = l.Format
		}
	}
	return cfg, nil
}
