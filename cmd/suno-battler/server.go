package main

import (
	"context"
	"time"

	"github.com/Razgrits/Suno-Battler/internal/logging"
	"github.com/Razgrits/Suno-Battler/internal/service"
)

const reaperInterval = time.Minute

// startIdleReaper discards battles nobody has touched for ttl.
func startIdleReaper(ctx context.Context, mgr *service.Manager, ttl time.Duration) {
	logging.Info("idle battle reaper started", logging.Fields{"interval": reaperInterval.String(), "ttl": ttl.String()})
	mgr.StartReaper(ctx, reaperInterval, ttl)
}
