package storage

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/Razgrits/Suno-Battler/internal/game"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenAndMigrate opens the SQLite database at dataSourceName, creating its
// directory when needed, and migrates the generation cache and song stats.
func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	if !strings.HasPrefix(dataSourceName, "file:") && !strings.Contains(dataSourceName, ":memory:") {
		if dir := filepath.Dir(dataSourceName); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, err
			}
		}
	}
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&game.GeneratedMatchup{}, &game.SongStats{}); err != nil {
		return nil, err
	}
	return db, nil
}
