package engine

import "github.com/Razgrits/Suno-Battler/internal/game"

// --- Turn context -------------------------------------------------------
type turnContext struct {
	st       *game.BattleState
	atkIdx   int
	defIdx   int
	attacker *game.Combatant
	defender *game.Combatant
	result   game.TurnResult
}

func newTurnContext(st *game.BattleState) *turnContext {
	atk := st.ActiveIndex
	def := opponentIndex(atk)
	tc := &turnContext{
		st:       st,
		atkIdx:   atk,
		defIdx:   def,
		attacker: &st.Combatants[atk],
		defender: &st.Combatants[def],
	}
	tc.result = game.TurnResult{
		Turn:       st.TurnCount,
		AttackerID: tc.attacker.ID,
		DefenderID: tc.defender.ID,
	}
	return tc
}

func (tc *turnContext) add(msg string, category game.LogCategory) {
	entry := AppendLog(tc.st, msg, category)
	tc.result.Entries = append(tc.result.Entries, entry)
}
