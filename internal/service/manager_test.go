package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Razgrits/Suno-Battler/internal/game"
	"github.com/Razgrits/Suno-Battler/internal/monstergen"
)

type mockGenerator struct {
	pair [2]game.Combatant
	err  error
}

func (g *mockGenerator) GetOrCreate(ctx context.Context, req monstergen.Request) ([2]game.Combatant, string, error) {
	return g.pair, monstergen.SourceLLM, g.err
}

type mockStats struct {
	mu      sync.Mutex
	winners []string
	losers  []string
}

func (m *mockStats) RecordBattleResult(winner, loser game.Combatant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.winners = append(m.winners, winner.ID)
	m.losers = append(m.losers, loser.ID)
	return nil
}

func (m *mockStats) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.winners)
}

func fighter(id string, hp, agi int, skills ...game.Skill) game.Combatant {
	return game.Combatant{ID: id, Name: "Mon " + id, MaxHealth: hp, CurrentHealth: hp, AttackPower: 100, DefensePower: 50, Agility: agi, Skills: skills}
}

// quickPair finishes on the first turn: a is faster and its signature
// overwhelms b's health whatever the variance.
func quickPair() (game.Combatant, game.Combatant) {
	a := fighter("a", 1000, 90, game.Skill{Name: "Final Verse", Kind: game.SkillSignature, Power: 500, CooldownTurns: 99})
	b := fighter("b", 50, 10, game.Skill{Name: "Hum", Kind: game.SkillOffense, Power: 10})
	return a, b
}

// slowPair never finishes within a test: damage is at most a few points
// against a huge health pool.
func slowPair() (game.Combatant, game.Combatant) {
	a := fighter("a", 1_000_000, 50)
	b := fighter("b", 1_000_000, 40)
	return a, b
}

func TestStartBattle_UsesGenerator(t *testing.T) {
	a, b := quickPair()
	m := NewManager(&mockGenerator{pair: [2]game.Combatant{a, b}}, nil, 7)
	bt, err := m.StartBattle(context.Background(), monstergen.Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bt.ID == "" || bt.Source != monstergen.SourceLLM {
		t.Fatalf("unexpected battle: %+v", bt)
	}
	if bt.State.Outcome.Status != game.StatusInProgress || bt.State.ActiveIndex != 0 || len(bt.State.Log) != 1 {
		t.Fatalf("unexpected initial state: %+v", bt.State)
	}
	if m.Len() != 1 {
		t.Fatalf("expected one live battle, got %d", m.Len())
	}
}

func TestStartBattle_GenerationError(t *testing.T) {
	m := NewManager(&mockGenerator{err: monstergen.ErrGenerationFailed}, nil, 0)
	if _, err := m.StartBattle(context.Background(), monstergen.Request{}); !errors.Is(err, monstergen.ErrGenerationFailed) {
		t.Fatalf("expected generation error, got %v", err)
	}
	if m.Len() != 0 {
		t.Fatalf("no battle should be registered on failure")
	}
}

func TestStartCustomBattle_Validates(t *testing.T) {
	m := NewManager(nil, nil, 1)
	a, b := quickPair()
	b.ID = a.ID
	if _, err := m.StartCustomBattle(a, b); !errors.Is(err, ErrInvalidCombatants) {
		t.Fatalf("expected invalid combatants, got %v", err)
	}
	a, b = quickPair()
	a.CurrentHealth = 1
	if _, err := m.StartCustomBattle(a, b); !errors.Is(err, ErrInvalidCombatants) {
		t.Fatalf("expected invalid combatants for damaged input, got %v", err)
	}
}

func TestAdvance_FinishesAndRecordsOnce(t *testing.T) {
	stats := &mockStats{}
	m := NewManager(nil, stats, 1)
	a, b := quickPair()
	bt, err := m.StartCustomBattle(a, b)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	res, view, err := m.Advance(bt.ID)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if !res.Defeated || res.SkillName != "Final Verse" || view.State.Outcome.WinnerID != "a" {
		t.Fatalf("expected one-shot win, got %+v / %+v", res, view.State.Outcome)
	}

	// Terminal battles are inert and are not recorded twice.
	res, again, err := m.Advance(bt.ID)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if res.AttackerID != "" || len(again.State.Log) != len(view.State.Log) {
		t.Fatalf("expected inert advance, got %+v", res)
	}
	if stats.count() != 1 || stats.winners[0] != "a" || stats.losers[0] != "b" {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestGet_ReturnsIndependentSnapshot(t *testing.T) {
	m := NewManager(nil, nil, 1)
	a, b := slowPair()
	bt, _ := m.StartCustomBattle(a, b)
	bt.State.Combatants[0].CurrentHealth = 1
	bt.State.Log[0].Message = "tampered"

	got, err := m.Get(bt.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.State.Combatants[0].CurrentHealth != 1_000_000 || got.State.Log[0].Message != "BATTLE INITIATED!" {
		t.Fatalf("snapshot leaked into live state: %+v", got.State)
	}
}

func TestUnknownBattle(t *testing.T) {
	m := NewManager(nil, nil, 1)
	if _, err := m.Get("nope"); !errors.Is(err, ErrBattleNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, _, err := m.Advance("nope"); !errors.Is(err, ErrBattleNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := m.Discard("nope"); !errors.Is(err, ErrBattleNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := m.Autoplay(context.Background(), "nope", time.Millisecond); !errors.Is(err, ErrBattleNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSeededManagersReplayIdentically(t *testing.T) {
	run := func() []game.LogEntry {
		m := NewManager(nil, nil, 42)
		a, b := slowPair()
		a.Skills = []game.Skill{{Name: "Riff", Kind: game.SkillOffense, Power: 30}, {Name: "Solo", Kind: game.SkillOffense, Power: 40}}
		bt, _ := m.StartCustomBattle(a, b)
		var view Battle
		for i := 0; i < 20; i++ {
			_, view, _ = m.Advance(bt.ID)
		}
		return view.State.Log
	}
	first, second := run(), run()
	if len(first) != len(second) {
		t.Fatalf("log lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("entry %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestSubscribe_ReceivesTurnsAndClosesOnFinish(t *testing.T) {
	m := NewManager(nil, nil, 1)
	a, b := quickPair()
	bt, _ := m.StartCustomBattle(a, b)

	snap, events, cancel, err := m.Subscribe(bt.ID)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer cancel()
	if snap.Watchers != 1 {
		t.Fatalf("expected one watcher, got %d", snap.Watchers)
	}

	if _, _, err := m.Advance(bt.ID); err != nil {
		t.Fatalf("advance: %v", err)
	}
	ev, ok := <-events
	if !ok || !ev.Result.Defeated || ev.Battle.State.Outcome.WinnerID != "a" {
		t.Fatalf("unexpected event %+v (ok=%v)", ev, ok)
	}
	if _, ok := <-events; ok {
		t.Fatalf("expected channel closed after the battle ended")
	}

	// Late subscribers to a finished battle get a closed channel.
	_, late, lateCancel, err := m.Subscribe(bt.ID)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	lateCancel()
	if _, ok := <-late; ok {
		t.Fatalf("expected closed channel for finished battle")
	}
}

func TestSubscribe_DiscardClosesStream(t *testing.T) {
	m := NewManager(nil, nil, 1)
	a, b := slowPair()
	bt, _ := m.StartCustomBattle(a, b)
	_, events, cancel, _ := m.Subscribe(bt.ID)
	defer cancel()

	if err := m.Discard(bt.ID); err != nil {
		t.Fatalf("discard: %v", err)
	}
	if _, ok := <-events; ok {
		t.Fatalf("expected stream closed on discard")
	}
}
