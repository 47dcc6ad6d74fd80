package storage

import "github.com/Razgrits/Suno-Battler/internal/game"

type Repository interface {
	// Generated monster cache, keyed by the request's matchup key.
	GetGeneratedMatchup(key string) (*game.GeneratedMatchup, error)
	SaveGeneratedMatchup(m *game.GeneratedMatchup) error

	// RecordBattleResult adds one battle to both songs' stats.
	RecordBattleResult(winner, loser game.Combatant) error
	GetSongStats(songURL string) (*game.SongStats, error)
	// Leaderboard
	GetTopSongs(limit int) ([]game.SongStats, error)
}
