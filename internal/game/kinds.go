package game

import "strings"

// ParseSkillKind maps a generated skill type onto a SkillKind. Both the
// engine vocabulary and the generator's ATTACK/DEFENSE/ULTIMATE vocabulary
// are accepted; anything unknown is treated as an offensive skill.
func ParseSkillKind(s string) SkillKind {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SUPPORT", "DEFENSE", "HEAL":
		return SkillSupport
	case "SIGNATURE", "ULTIMATE":
		return SkillSignature
	default:
		return SkillOffense
	}
}

// Category returns the log category used when a skill of this kind resolves.
func (k SkillKind) Category() LogCategory {
	switch k {
	case SkillSupport:
		return LogHeal
	case SkillSignature:
		return LogSpecial
	default:
		return LogDamage
	}
}
