package service

import (
	"testing"
	"time"
)

func TestExpireIdle(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewManager(nil, nil, 1)
	m.now = func() time.Time { return now }

	a, b := slowPair()
	old, _ := m.StartCustomBattle(a, b)

	now = now.Add(20 * time.Minute)
	fresh, _ := m.StartCustomBattle(a, b)

	if n := m.ExpireIdle(now, 30*time.Minute); n != 0 {
		t.Fatalf("nothing should expire yet, got %d", n)
	}

	now = now.Add(15 * time.Minute)
	if n := m.ExpireIdle(now, 30*time.Minute); n != 1 {
		t.Fatalf("expected one expired battle, got %d", n)
	}
	if _, err := m.Get(old.ID); err == nil {
		t.Fatalf("old battle should be gone")
	}

	// Advancing counts as activity.
	if _, _, err := m.Advance(fresh.ID); err != nil {
		t.Fatalf("advance: %v", err)
	}
	now = now.Add(25 * time.Minute)
	if n := m.ExpireIdle(now, 30*time.Minute); n != 0 {
		t.Fatalf("recently advanced battle should survive, got %d", n)
	}
	if n := m.ExpireIdle(now, 0); n != 0 {
		t.Fatalf("zero ttl disables expiry, got %d", n)
	}
}
