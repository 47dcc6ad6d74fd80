package main

import (
	"context"

	"github.com/Razgrits/Suno-Battler/internal/api"
	"github.com/Razgrits/Suno-Battler/internal/constants"
	"github.com/Razgrits/Suno-Battler/internal/logging"
	"github.com/Razgrits/Suno-Battler/internal/monstergen"
	"github.com/Razgrits/Suno-Battler/internal/service"
	"github.com/Razgrits/Suno-Battler/internal/version"

	"github.com/gin-gonic/gin"
)

func main() {
	// The config path comes from SUNO_BATTLER_CONFIG and defaults to
	// ./suno_battler.json in the current working directory.
	env := parseEnvOrExit()
	cfg := loadConfigOrExit(env.ConfigPath)
	env.Apply(cfg)
	logging.Init(cfg.LogLevel, cfg.LogFormat)
	applyPromptTemplates(cfg)

	ctx := context.Background()
	repo := createRepositoryOrExit(cfg.DBPath)

	var gen service.Generator
	if client := createCompleter(ctx, cfg, env.APIKey(cfg.Provider)); client != nil {
		gen = monstergen.NewGenerator(client, repo, cfg.GenerationTimeout)
	}
	mgr := service.NewManager(gen, repo, cfg.Seed)
	startIdleReaper(ctx, mgr, cfg.SessionTTL)

	handler := api.NewBattleHandler(mgr, repo, cfg.TurnDelay)

	router := gin.New()
	router.Use(gin.LoggerWithWriter(logging.Logger().Writer()), gin.Recovery())
	api.RegisterRoutes(router, handler)

	addr := cfg.ServerAddress
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr, "version": version.Version})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
