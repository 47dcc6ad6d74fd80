package engine

import "github.com/Razgrits/Suno-Battler/internal/game"

// FallbackSkill is used when every owned skill is cooling down. It is never
// added to a combatant's skill set.
var FallbackSkill = game.Skill{
	Name:        "Struggle",
	Description: "Basic hit",
	Kind:        game.SkillOffense,
	Power:       10,
}

// --- Skill selection ----------------------------------------------------
type chosenSkill struct {
	skill game.Skill
	// index into the attacker's skill set, -1 for the fallback.
	index int
}

func (c chosenSkill) isFallback() bool { return c.index < 0 }

// chooseSkill applies the automatic policy: the first available signature
// skill wins outright, otherwise a uniform pick among available skills,
// otherwise the fallback.
func (e *Engine) chooseSkill(c *game.Combatant) chosenSkill {
	avail := availableSkills(c)
	if len(avail) == 0 {
		return chosenSkill{skill: FallbackSkill, index: -1}
	}
	for _, i := range avail {
		if c.Skills[i].Kind == game.SkillSignature {
			return chosenSkill{skill: c.Skills[i], index: i}
		}
	}
	i := avail[e.rng.Intn(len(avail))]
	return chosenSkill{skill: c.Skills[i], index: i}
}

// updateCooldowns resets the cast skill and ticks every other skill down.
func updateCooldowns(c *game.Combatant, cast chosenSkill) {
	for i := range c.Skills {
		s := &c.Skills[i]
		if i == cast.index {
			s.RemainingCooldown = s.CooldownTurns
			continue
		}
		if s.RemainingCooldown > 0 {
			s.RemainingCooldown--
		}
	}
}
