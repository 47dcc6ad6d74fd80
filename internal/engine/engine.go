package engine

import (
	"math/rand"
	"time"

	"github.com/Razgrits/Suno-Battler/internal/game"
)

// Rand is the random source the engine draws skill picks and damage
// variance from. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Engine resolves battles. It holds no battle state of its own: every
// operation works on the BattleState passed in, and the caller is expected
// to serialize access to a given state.
type Engine struct {
	rng Rand
}

// New returns an engine drawing randomness from rng.
func New(rng Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{rng: rng}
}

// NewSeeded returns an engine with a deterministic math/rand source.
func NewSeeded(seed int64) *Engine {
	return New(rand.New(rand.NewSource(seed)))
}

// Initialize builds the starting state for a battle between a and b. The
// combatant with strictly greater agility acts first; ties go to a.
// Inputs are copied, so later changes to a or b do not leak into the state.
func (e *Engine) Initialize(a, b game.Combatant) *game.BattleState {
	st := &game.BattleState{
		Combatants: [2]game.Combatant{a.Clone(), b.Clone()},
		Outcome:    game.Outcome{Status: game.StatusInProgress},
	}
	st.ActiveIndex = firstActor(a, b)
	AppendLog(st, "BATTLE INITIATED!", game.LogInfo)
	return st
}

// AppendLog adds a narrative entry stamped with the current turn count.
func AppendLog(st *game.BattleState, msg string, category game.LogCategory) game.LogEntry {
	entry := game.LogEntry{Turn: st.TurnCount, Message: msg, Category: category}
	st.Log = append(st.Log, entry)
	return entry
}

func firstActor(a, b game.Combatant) int {
	if b.Agility > a.Agility {
		return 1
	}
	return 0
}
