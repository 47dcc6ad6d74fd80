package storage

import (
	"errors"
	"time"

	"github.com/Razgrits/Suno-Battler/internal/game"
	"github.com/Razgrits/Suno-Battler/internal/keys"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sqliteRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db, now: time.Now}
}

func (r *sqliteRepository) GetGeneratedMatchup(key string) (*game.GeneratedMatchup, error) {
	var m game.GeneratedMatchup
	if err := r.db.Where("matchup_key = ?", key).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *sqliteRepository) SaveGeneratedMatchup(m *game.GeneratedMatchup) error {
	if m == nil || m.MatchupKey == "" {
		return gorm.ErrInvalidData
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "matchup_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"combatants", "source", "updated_at"}),
	}).Create(m).Error
}

// RecordBattleResult upserts both songs' rows inside one transaction. Songs
// are identified by keys.SongKey so short and long links to the same song
// collapse when the UUID is known.
func (r *sqliteRepository) RecordBattleResult(winner, loser game.Combatant) error {
	now := r.now()
	return r.db.Transaction(func(tx *gorm.DB) error {
		upsert := func(c game.Combatant, wins, losses int) error {
			key := keys.SongKey(c.SongURL)
			if key == "" {
				return nil
			}
			var s game.SongStats
			if err := tx.Where("song_key = ?", key).First(&s).Error; err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
				s = game.SongStats{SongKey: key}
			}
			s.MonsterName = c.Name
			if c.CoverURL != "" {
				s.CoverURL = c.CoverURL
			}
			s.Battles++
			s.Wins += wins
			s.Losses += losses
			s.LastBattle = now
			return tx.Save(&s).Error
		}
		if err := upsert(winner, 1, 0); err != nil {
			return err
		}
		return upsert(loser, 0, 1)
	})
}

func (r *sqliteRepository) GetSongStats(songURL string) (*game.SongStats, error) {
	var s game.SongStats
	if err := r.db.Where("song_key = ?", keys.SongKey(songURL)).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// GetTopSongs returns top N songs ordered by Wins desc, then Battles asc so
// fewer battles for the same wins ranks higher.
func (r *sqliteRepository) GetTopSongs(limit int) ([]game.SongStats, error) {
	if limit <= 0 {
		limit = 10
	}
	var out []game.SongStats
	if err := r.db.Model(&game.SongStats{}).
		Order("wins DESC").
		Order("battles ASC").
		Order("last_battle DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
