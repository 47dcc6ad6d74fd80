package engine

import (
	"strconv"

	"github.com/Razgrits/Suno-Battler/internal/game"
)

// resolveSkill applies the chosen skill's effect and logs it.
func (tc *turnContext) resolveSkill(e *Engine, cast chosenSkill) {
	s := cast.skill
	tc.result.SkillName = s.Name
	tc.result.SkillIndex = cast.index
	tc.result.SkillKind = s.Kind
	tc.result.UsedFallback = cast.isFallback()

	msg := displayName(tc.attacker) + " uses " + s.Name + "!"
	switch s.Kind {
	case game.SkillSupport:
		heal := healFor(s.Power, tc.attacker)
		before := tc.attacker.CurrentHealth
		tc.attacker.CurrentHealth = clamp(before+heal, 0, tc.attacker.MaxHealth)
		tc.result.Action = game.ActionSupport
		tc.result.Healed = tc.attacker.CurrentHealth - before
		msg += " Restores " + strconv.Itoa(heal) + " HP!"
	default:
		dmg := damageFor(rawDamage(s.Power, tc.attacker, tc.defender), e.variance())
		tc.defender.CurrentHealth = clamp(tc.defender.CurrentHealth-dmg, 0, tc.defender.MaxHealth)
		tc.result.Action = game.ActionOffense
		tc.result.Damage = dmg
		msg += " It deals " + strconv.Itoa(dmg) + " damage!"
		if s.Effect != "" {
			msg += " Effect: " + s.Effect
		}
	}
	tc.add(msg, s.Kind.Category())
}
