package engine

import (
	"math"

	"github.com/Razgrits/Suno-Battler/internal/game"
)

const (
	attackFactor   = 0.5
	defenseFactor  = 0.25
	varianceMin    = 0.9
	varianceSpread = 0.2

	healPowerFactor  = 0.8
	healAttackFactor = 0.2
)

// --- Damage and heal formulas --------------------------------------------

// rawDamage is the unvaried magnitude of an offensive skill.
func rawDamage(power int, attacker, defender *game.Combatant) float64 {
	return float64(power) + float64(attacker.AttackPower)*attackFactor - float64(defender.DefensePower)*defenseFactor
}

// variance draws a multiplier uniformly from [0.9, 1.1].
func (e *Engine) variance() float64 {
	return varianceMin + e.rng.Float64()*varianceSpread
}

// damageFor applies variance and the floor of one damage.
func damageFor(raw, variance float64) int {
	dmg := int(math.Floor(raw * variance))
	if dmg < 1 {
		dmg = 1
	}
	return dmg
}

// healFor never returns a negative amount.
func healFor(power int, attacker *game.Combatant) int {
	h := int(math.Floor(float64(power)*healPowerFactor + float64(attacker.AttackPower)*healAttackFactor))
	if h < 0 {
		h = 0
	}
	return h
}
