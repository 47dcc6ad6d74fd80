package service

import (
	"context"
	"time"

	"github.com/Razgrits/Suno-Battler/internal/constants"
	"github.com/Razgrits/Suno-Battler/internal/logging"
)

// RunBattle calls step every delay until step reports false or ctx is
// cancelled. It returns nil when step stopped the loop and ctx.Err()
// otherwise. The first step runs after one delay, matching the pause a
// viewer gets before the opening move.
func RunBattle(ctx context.Context, delay time.Duration, step func() bool) error {
	if delay <= 0 {
		delay = time.Millisecond
	}
	ticker := time.NewTicker(delay)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if !step() {
				return nil
			}
		}
	}
}

// Autoplay starts a background driver that advances the battle every delay
// until it finishes, is discarded, or ctx is cancelled. Calling it on a
// battle that is already autoplaying is a no-op.
func (m *Manager) Autoplay(ctx context.Context, id string, delay time.Duration) error {
	s, err := m.lookup(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	if s.cancel != nil || !s.state.InProgress() {
		s.mu.Unlock()
		return nil
	}
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.driver++
	driver := s.driver
	s.mu.Unlock()

	logging.Info("autoplay started", logging.Fields{constants.LogFieldBattleID: id, "delay_ms": delay.Milliseconds()})
	go func() {
		err := RunBattle(runCtx, delay, func() bool {
			s.mu.Lock()
			defer s.mu.Unlock()
			if runCtx.Err() != nil {
				return false
			}
			_, more := m.step(s)
			return more
		})
		s.mu.Lock()
		// A later Autoplay may have installed a new driver after a stop;
		// only clear our own.
		if s.driver == driver {
			s.cancel = nil
		}
		s.mu.Unlock()
		cancel()
		logging.Debug("autoplay stopped", logging.Fields{constants.LogFieldBattleID: id, "cancelled": err != nil})
	}()
	return nil
}

// StopAutoplay halts the driver of a battle, leaving the battle itself live.
func (m *Manager) StopAutoplay(id string) error {
	s, err := m.lookup(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.stop()
	s.mu.Unlock()
	return nil
}
