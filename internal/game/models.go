package game

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SkillKind classifies what a skill does when cast.
type SkillKind string

const (
	SkillOffense SkillKind = "OFFENSE"
	SkillSupport SkillKind = "SUPPORT"
	// SkillSignature is the once-available ultimate. It always takes priority
	// over every other available skill.
	SkillSignature SkillKind = "SIGNATURE"
)

// Skill is a selectable action owned by a combatant.
type Skill struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Kind        SkillKind `json:"kind"`
	Power       int       `json:"power"`
	// Effect is a flavor tag only (e.g. "fire"); it never changes the outcome.
	Effect            string `json:"effect,omitempty"`
	CooldownTurns     int    `json:"cooldown_turns"`
	RemainingCooldown int    `json:"remaining_cooldown"`
}

// Available reports whether the skill can be cast this turn.
func (s Skill) Available() bool { return s.RemainingCooldown == 0 }

// Combatant is one of the two monsters in a battle. Attributes are fixed at
// creation; only CurrentHealth, IsDefeated and skill cooldowns change.
type Combatant struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	MaxHealth     int     `json:"max_health"`
	CurrentHealth int     `json:"current_health"`
	IsDefeated    bool    `json:"is_defeated"`
	AttackPower   int     `json:"attack_power"`
	DefensePower  int     `json:"defense_power"`
	Agility       int     `json:"agility"`
	Skills        []Skill `json:"skills"`

	// Presentation-only references carried through untouched by the engine.
	SongURL  string `json:"song_url,omitempty"`
	CoverURL string `json:"cover_url,omitempty"`
	AudioURL string `json:"audio_url,omitempty"`
}

// Clone returns a deep copy so callers never share the skill slice.
func (c Combatant) Clone() Combatant {
	out := c
	if c.Skills != nil {
		out.Skills = make([]Skill, len(c.Skills))
		copy(out.Skills, c.Skills)
	}
	return out
}

const (
	StatusUninitialized = ""
	StatusInProgress    = "in_progress"
	StatusFinished      = "finished"
)

// Outcome is IN_PROGRESS until a combatant wins; WinnerID is set only once
// Status is StatusFinished.
type Outcome struct {
	Status   string `json:"status"`
	WinnerID string `json:"winner_id,omitempty"`
}

// LogCategory tags a narrative entry for presentation.
type LogCategory string

const (
	LogInfo    LogCategory = "info"
	LogDamage  LogCategory = "damage"
	LogHeal    LogCategory = "heal"
	LogSpecial LogCategory = "special"
)

type LogEntry struct {
	Turn     int         `json:"turn"`
	Message  string      `json:"message"`
	Category LogCategory `json:"category"`
}

// BattleState is the authoritative combat state. The zero value is an
// uninitialized battle. Combatants keep their initial order for the whole
// battle.
type BattleState struct {
	Combatants  [2]Combatant `json:"combatants"`
	ActiveIndex int          `json:"active_index"`
	TurnCount   int          `json:"turn_count"`
	Outcome     Outcome      `json:"outcome"`
	Log         []LogEntry   `json:"log"`
}

// InProgress reports whether AdvanceTurn would do anything.
func (s *BattleState) InProgress() bool {
	return s != nil && s.Outcome.Status == StatusInProgress
}

// Winner returns the winning combatant, if any.
func (s *BattleState) Winner() (Combatant, bool) {
	if s == nil || s.Outcome.Status != StatusFinished {
		return Combatant{}, false
	}
	for _, c := range s.Combatants {
		if c.ID == s.Outcome.WinnerID {
			return c, true
		}
	}
	return Combatant{}, false
}

// Snapshot returns a deep copy safe to hand to readers outside the engine.
func (s *BattleState) Snapshot() BattleState {
	if s == nil {
		return BattleState{}
	}
	out := *s
	out.Combatants[0] = s.Combatants[0].Clone()
	out.Combatants[1] = s.Combatants[1].Clone()
	if s.Log != nil {
		out.Log = make([]LogEntry, len(s.Log))
		copy(out.Log, s.Log)
	}
	return out
}

// ActionKind is the coarse category presentation layers animate on.
type ActionKind string

const (
	ActionNone    ActionKind = ""
	ActionOffense ActionKind = "offense"
	ActionSupport ActionKind = "support"
)

// TurnResult describes what a single AdvanceTurn call did.
type TurnResult struct {
	Turn       int    `json:"turn"`
	AttackerID string `json:"attacker_id"`
	DefenderID string `json:"defender_id"`
	SkillName  string `json:"skill_name"`
	// SkillIndex is the slot in the attacker's skill set, -1 for the fallback.
	SkillIndex   int        `json:"skill_index"`
	SkillKind    SkillKind  `json:"skill_kind"`
	Action       ActionKind `json:"action"`
	Damage       int        `json:"damage"`
	Healed       int        `json:"healed"`
	UsedFallback bool       `json:"used_fallback"`
	Defeated     bool       `json:"defeated"`
	Entries      []LogEntry `json:"entries"`
}

// GeneratedMatchup caches the two combatants generated for a pair of songs
// so repeated matchups do not call the LLM again.
type GeneratedMatchup struct {
	gorm.Model
	MatchupKey string `json:"matchup_key" gorm:"uniqueIndex"`
	// Combatants holds the JSON-encoded [2]Combatant as produced by the
	// generator (full health, cooldowns at zero).
	Combatants datatypes.JSON `json:"combatants"`
	Source     string         `json:"source"`
}

// TableName keeps the cache in a descriptive table.
func (GeneratedMatchup) TableName() string { return "generated_matchups" }

// SongStats aggregates battle outcomes per song.
type SongStats struct {
	gorm.Model
	SongKey     string    `json:"song_key" gorm:"uniqueIndex"`
	MonsterName string    `json:"monster_name"`
	CoverURL    string    `json:"cover_url"`
	Battles     int       `json:"battles"`
	Wins        int       `json:"wins"`
	Losses      int       `json:"losses"`
	LastBattle  time.Time `json:"last_battle"`
}

func (SongStats) TableName() string { return "song_stats" }
