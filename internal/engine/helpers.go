package engine

import "github.com/Razgrits/Suno-Battler/internal/game"

func opponentIndex(i int) int {
	if i == 0 {
		return 1
	}
	return 0
}

// availableSkills returns the indexes of the skills that are off cooldown,
// in skill-set order.
func availableSkills(c *game.Combatant) []int {
	out := make([]int, 0, len(c.Skills))
	for i := range c.Skills {
		if c.Skills[i].Available() {
			out = append(out, i)
		}
	}
	return out
}

// displayName falls back to the id for unnamed combatants.
func displayName(c *game.Combatant) string {
	if c == nil {
		return ""
	}
	if c.Name != "" {
		return c.Name
	}
	return c.ID
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
