package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Razgrits/Suno-Battler/internal/constants"
	"github.com/Razgrits/Suno-Battler/internal/engine"
	"github.com/Razgrits/Suno-Battler/internal/game"
	"github.com/Razgrits/Suno-Battler/internal/logging"
	"github.com/Razgrits/Suno-Battler/internal/monstergen"

	"github.com/google/uuid"
)

var (
	ErrBattleNotFound    = errors.New("battle not found")
	ErrInvalidCombatants = errors.New("invalid combatants")
)

// Generator produces two fresh combatants for a pair of songs.
type Generator interface {
	GetOrCreate(ctx context.Context, req monstergen.Request) ([2]game.Combatant, string, error)
}

// StatsRecorder persists finished battle outcomes.
type StatsRecorder interface {
	RecordBattleResult(winner, loser game.Combatant) error
}

// Battle is a read-only view of a session handed to callers.
type Battle struct {
	ID         string           `json:"id"`
	Source     string           `json:"source"`
	Autoplay   bool             `json:"autoplay"`
	Watchers   int              `json:"watchers"`
	CreatedAt  time.Time        `json:"created_at"`
	LastActive time.Time        `json:"last_active"`
	State      game.BattleState `json:"state"`
}

type session struct {
	id     string
	source string

	// mu serializes every engine call on state; the engine is not
	// re-entrant.
	mu         sync.Mutex
	engine     *engine.Engine
	state      *game.BattleState
	createdAt  time.Time
	lastActive time.Time
	recorded   bool
	cancel     context.CancelFunc
	driver     uint64

	events broadcaster
}

func (s *session) view() Battle {
	return Battle{
		ID:         s.id,
		Source:     s.source,
		Autoplay:   s.cancel != nil,
		Watchers:   s.events.count(),
		CreatedAt:  s.createdAt,
		LastActive: s.lastActive,
		State:      s.state.Snapshot(),
	}
}

// Manager owns every live battle. Each session has its own engine and
// random source so concurrent battles never share mutable state.
type Manager struct {
	gen   Generator
	stats StatsRecorder

	mu       sync.RWMutex
	sessions map[string]*session
	seed     int64
	started  int64

	now func() time.Time
}

// NewManager builds a Manager. A non-zero seed makes every battle
// reproducible (battle n uses seed+n); zero seeds from the clock.
func NewManager(gen Generator, stats StatsRecorder, seed int64) *Manager {
	return &Manager{
		gen:      gen,
		stats:    stats,
		sessions: make(map[string]*session),
		seed:     seed,
		now:      time.Now,
	}
}

func (m *Manager) newEngine() *engine.Engine {
	if m.seed == 0 {
		return engine.New(nil)
	}
	m.started++
	return engine.NewSeeded(m.seed + m.started)
}

// StartBattle generates monsters for req and opens a new session.
func (m *Manager) StartBattle(ctx context.Context, req monstergen.Request) (Battle, error) {
	if m.gen == nil {
		return Battle{}, fmt.Errorf("%w: no generator configured", monstergen.ErrGenerationFailed)
	}
	pair, source, err := m.gen.GetOrCreate(ctx, req)
	if err != nil {
		return Battle{}, err
	}
	return m.open(pair[0], pair[1], source)
}

// StartCustomBattle opens a session for two pre-built combatants.
func (m *Manager) StartCustomBattle(a, b game.Combatant) (Battle, error) {
	if err := monstergen.ValidatePair(a, b); err != nil {
		return Battle{}, fmt.Errorf("%w: %v", ErrInvalidCombatants, err)
	}
	return m.open(a, b, "custom")
}

func (m *Manager) open(a, b game.Combatant, source string) (Battle, error) {
	now := m.now()
	m.mu.Lock()
	s := &session{
		id:         uuid.NewString(),
		source:     source,
		engine:     m.newEngine(),
		createdAt:  now,
		lastActive: now,
	}
	s.state = s.engine.Initialize(a, b)
	m.sessions[s.id] = s
	m.mu.Unlock()

	logging.Info("battle started", logging.Fields{
		constants.LogFieldBattleID: s.id,
		constants.LogFieldSource:   source,
		"combatants":               []string{a.Name, b.Name},
	})
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view(), nil
}

func (m *Manager) lookup(id string) (*session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrBattleNotFound
	}
	return s, nil
}

// Get returns a snapshot of the battle.
func (m *Manager) Get(id string) (Battle, error) {
	s, err := m.lookup(id)
	if err != nil {
		return Battle{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view(), nil
}

// Advance resolves one turn. On a finished battle it returns an empty
// result and the unchanged snapshot.
func (m *Manager) Advance(id string) (game.TurnResult, Battle, error) {
	s, err := m.lookup(id)
	if err != nil {
		return game.TurnResult{}, Battle{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	res, _ := m.step(s)
	return res, s.view(), nil
}

// step advances s by one turn; the caller holds s.mu. It reports whether
// the battle can continue.
func (m *Manager) step(s *session) (game.TurnResult, bool) {
	s.lastActive = m.now()
	res, ok := s.engine.AdvanceTurn(s.state)
	if !ok {
		return res, false
	}
	logging.Debug("turn resolved", logging.Fields{
		constants.LogFieldBattleID: s.id,
		constants.LogFieldTurn:     res.Turn,
		"skill":                    res.SkillName,
		"damage":                   res.Damage,
		"healed":                   res.Healed,
	})
	s.events.publish(TurnEvent{Result: res, Battle: s.view()})
	if s.state.InProgress() {
		return res, true
	}
	m.finish(s)
	s.events.closeAll()
	return res, false
}

// finish records the outcome once per battle; the caller holds s.mu.
func (m *Manager) finish(s *session) {
	if s.recorded {
		return
	}
	s.recorded = true
	winner, ok := s.state.Winner()
	if !ok {
		return
	}
	loser := s.state.Combatants[0]
	if loser.ID == winner.ID {
		loser = s.state.Combatants[1]
	}
	logging.Info("battle finished", logging.Fields{
		constants.LogFieldBattleID: s.id,
		constants.LogFieldWinner:   winner.ID,
		constants.LogFieldName:     winner.Name,
		constants.LogFieldTurn:     s.state.TurnCount,
	})
	if m.stats == nil {
		return
	}
	if err := m.stats.RecordBattleResult(winner, loser); err != nil {
		logging.Error("failed to record battle result", err, logging.Fields{constants.LogFieldBattleID: s.id})
	}
}

// Discard drops the battle and stops its driver, if any. Resetting a battle
// is discarding it and starting a new one.
func (m *Manager) Discard(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()
	if !ok {
		return ErrBattleNotFound
	}
	s.mu.Lock()
	s.stop()
	s.events.closeAll()
	s.mu.Unlock()
	logging.Info("battle discarded", logging.Fields{constants.LogFieldBattleID: id})
	return nil
}

// stop cancels the driver; the caller holds s.mu.
func (s *session) stop() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Len reports how many battles are live.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
