package engine

import "github.com/Razgrits/Suno-Battler/internal/game"

// checkDefeat ends the battle when the defender has no health left.
func (tc *turnContext) checkDefeat() bool {
	if tc.defender.CurrentHealth > 0 {
		return false
	}
	tc.defender.CurrentHealth = 0
	tc.defender.IsDefeated = true
	tc.st.Outcome = game.Outcome{Status: game.StatusFinished, WinnerID: tc.attacker.ID}
	tc.result.Defeated = true
	tc.add(displayName(tc.defender)+" has been defeated! "+displayName(tc.attacker)+" wins!", game.LogSpecial)
	return true
}

// handoff passes the turn to the defender.
func (tc *turnContext) handoff() {
	tc.st.ActiveIndex = tc.defIdx
	tc.st.TurnCount++
}

// AdvanceTurn resolves one action by the active combatant and mutates st in
// place. It reports false and leaves st untouched when the battle is
// uninitialized or already finished.
func (e *Engine) AdvanceTurn(st *game.BattleState) (game.TurnResult, bool) {
	if !st.InProgress() {
		return game.TurnResult{}, false
	}
	tc := newTurnContext(st)

	cast := e.chooseSkill(tc.attacker)
	tc.resolveSkill(e, cast)
	updateCooldowns(tc.attacker, cast)

	if !tc.checkDefeat() {
		tc.handoff()
	}
	return tc.result, true
}
