package service

import (
	"context"
	"time"

	"github.com/Razgrits/Suno-Battler/internal/constants"
	"github.com/Razgrits/Suno-Battler/internal/logging"
)

// ExpireIdle discards every battle not touched since now-ttl and returns how
// many were removed. Autoplaying battles count as touched on every turn, so
// only abandoned or finished battles expire.
func (m *Manager) ExpireIdle(now time.Time, ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}
	cutoff := now.Add(-ttl)

	m.mu.Lock()
	var expired []*session
	for id, s := range m.sessions {
		s.mu.Lock()
		idle := s.lastActive.Before(cutoff)
		s.mu.Unlock()
		if idle {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		s.mu.Lock()
		s.stop()
		s.events.closeAll()
		s.mu.Unlock()
		logging.Info("battle expired due to inactivity", logging.Fields{constants.LogFieldBattleID: s.id})
	}
	return len(expired)
}

// StartReaper runs ExpireIdle every interval until ctx is cancelled.
func (m *Manager) StartReaper(ctx context.Context, interval, ttl time.Duration) {
	go func() {
		_ = RunBattle(ctx, interval, func() bool {
			if n := m.ExpireIdle(m.now(), ttl); n > 0 {
				logging.Info("idle battles reaped", logging.Fields{"count": n, "remaining": m.Len()})
			}
			return true
		})
	}()
}
