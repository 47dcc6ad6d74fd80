package api

import (
	"context"
	"time"

	"github.com/Razgrits/Suno-Battler/internal/game"
	"github.com/Razgrits/Suno-Battler/internal/monstergen"
	"github.com/Razgrits/Suno-Battler/internal/service"
)

// BattleService is what the HTTP layer needs from the session manager.
type BattleService interface {
	StartBattle(ctx context.Context, req monstergen.Request) (service.Battle, error)
	StartCustomBattle(a, b game.Combatant) (service.Battle, error)
	Get(id string) (service.Battle, error)
	Advance(id string) (game.TurnResult, service.Battle, error)
	Discard(id string) error
	Autoplay(ctx context.Context, id string, delay time.Duration) error
	Subscribe(id string) (service.Battle, <-chan service.TurnEvent, func(), error)
}

// LeaderboardRepo serves song rankings.
type LeaderboardRepo interface {
	GetTopSongs(limit int) ([]game.SongStats, error)
}

// BattleHandler groups all battle-related HTTP handlers.
type BattleHandler struct {
	battles   BattleService
	stats     LeaderboardRepo
	turnDelay time.Duration
}

// NewBattleHandler creates a BattleHandler. turnDelay paces autoplayed
// battles.
func NewBattleHandler(battles BattleService, stats LeaderboardRepo, turnDelay time.Duration) *BattleHandler {
	return &BattleHandler{battles: battles, stats: stats, turnDelay: turnDelay}
}
