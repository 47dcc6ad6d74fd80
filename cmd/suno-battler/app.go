package main

import (
	"context"
	"errors"
	"io/fs"

	"github.com/Razgrits/Suno-Battler/internal/config"
	"github.com/Razgrits/Suno-Battler/internal/constants"
	"github.com/Razgrits/Suno-Battler/internal/llmclient"
	"github.com/Razgrits/Suno-Battler/internal/logging"
	"github.com/Razgrits/Suno-Battler/internal/monstergen"
	"github.com/Razgrits/Suno-Battler/internal/storage"
)

// loadConfigOrExit loads the config file, falling back to defaults when it
// does not exist. A present but invalid file is fatal.
func loadConfigOrExit(path string) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path)
	if errors.Is(err, fs.ErrNotExist) {
		logging.Warn("config file not found; using defaults", logging.Fields{"config_path": path})
		return config.Default()
	}
	if err != nil {
		logging.Fatal("Invalid suno-battler configuration", err, logging.Fields{"config_path": path, "hint": "see suno_battler.example.json for the supported sections: server, database, generator, battle, log"})
	}
	return cfg
}

func parseEnvOrExit() config.Env {
	e, err := config.ParseEnv()
	if err != nil {
		logging.Fatal("Invalid environment", err, nil)
	}
	return e
}

func applyPromptTemplates(cfg *config.LoadedConfig) {
	if cfg == nil {
		return
	}
	if cfg.PromptTemplate != "" {
		monstergen.SetPromptTemplate(cfg.PromptTemplate)
	}
}

func createRepositoryOrExit(dbPath string) storage.Repository {
	db, err := storage.OpenAndMigrate(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, logging.Fields{"db_path": dbPath})
	}
	return storage.NewSQLiteRepository(db)
}

// createCompleter builds the language model client. Without credentials the
// server still runs; song battles then fail with a generation error while
// custom battles keep working.
func createCompleter(ctx context.Context, cfg *config.LoadedConfig, apiKey string) llmclient.Completer {
	client, err := llmclient.New(ctx, llmclient.Options{
		Provider: cfg.Provider,
		Model:    cfg.Model,
		APIKey:   apiKey,
		Timeout:  cfg.GenerationTimeout,
	})
	if err != nil {
		logging.Error("language model unavailable; song battles disabled", err, logging.Fields{constants.LogFieldProvider: cfg.Provider})
		return nil
	}
	logging.Info("language model configured", logging.Fields{constants.LogFieldProvider: cfg.Provider, constants.LogFieldModel: client.Model()})
	return client
}
