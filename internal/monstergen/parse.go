package monstergen

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Razgrits/Suno-Battler/internal/game"
	"github.com/Razgrits/Suno-Battler/internal/keys"

	"github.com/google/uuid"
)

var (
	// ErrGenerationFailed wraps every failure to turn a model reply into two
	// combatants. It is unrelated to battle resolution.
	ErrGenerationFailed = errors.New("monster generation failed")
	ErrInvalidCombatant = errors.New("invalid combatant")
)

// Defaults applied when the model omits a stat or returns a non-positive one.
const (
	DefaultHealth  = 1000
	DefaultAttack  = 100
	DefaultDefense = 50
	DefaultAgility = 50
)

type rawSkill struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Power       int    `json:"power"`
	Effect      string `json:"effect"`
	Cooldown    int    `json:"cooldown"`
}

type rawMonster struct {
	Name     string     `json:"name"`
	CoverURL string     `json:"coverUrl"`
	AudioURL string     `json:"audioUrl"`
	HP       int        `json:"hp"`
	Attack   int        `json:"attack"`
	Defense  int        `json:"defense"`
	Agility  int        `json:"agility"`
	Skills   []rawSkill `json:"skills"`
}

// stripFences removes a surrounding ``` or ```json code fence.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// ParseMonsters turns a model reply into two ready-to-fight combatants, in
// the same order as req.Songs.
func ParseMonsters(reply string, req Request) ([2]game.Combatant, error) {
	var out [2]game.Combatant
	var data struct {
		Monsters []rawMonster `json:"monsters"`
	}
	if err := json.Unmarshal([]byte(stripFences(reply)), &data); err != nil {
		return out, fmt.Errorf("%w: decode reply: %v", ErrGenerationFailed, err)
	}
	if len(data.Monsters) < 2 {
		return out, fmt.Errorf("%w: expected 2 monsters, got %d", ErrGenerationFailed, len(data.Monsters))
	}
	for i := range out {
		out[i] = buildCombatant(data.Monsters[i], req.Songs[i])
		if err := Validate(out[i]); err != nil {
			return out, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
		}
	}
	return out, nil
}

func positiveOr(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

func buildCombatant(m rawMonster, song SongInput) game.Combatant {
	songID := keys.SongIDFromURL(song.URL)

	name := strings.TrimSpace(m.Name)
	if name == "" {
		name = "Subject Unknown"
		if len(songID) >= 6 {
			name = "Subject " + songID[:6]
		}
	}

	// Cover: manual > model (if plausibly a URL) > CDN.
	cover := strings.TrimSpace(song.CoverURL)
	if cover == "" && len(m.CoverURL) > 10 {
		cover = m.CoverURL
	}
	if cover == "" {
		cover = keys.CoverURL(songID)
	}
	audio := m.AudioURL
	if len(audio) < 10 {
		audio = keys.AudioURL(songID)
	}

	hp := positiveOr(m.HP, DefaultHealth)
	c := game.Combatant{
		ID:            uuid.NewString(),
		Name:          name,
		MaxHealth:     hp,
		CurrentHealth: hp,
		AttackPower:   positiveOr(m.Attack, DefaultAttack),
		DefensePower:  positiveOr(m.Defense, DefaultDefense),
		Agility:       positiveOr(m.Agility, DefaultAgility),
		Skills:        make([]game.Skill, 0, len(m.Skills)),
		SongURL:       song.URL,
		CoverURL:      cover,
		AudioURL:      audio,
	}
	for _, s := range m.Skills {
		cd := s.Cooldown
		if cd < 0 {
			cd = 0
		}
		skillName := strings.TrimSpace(s.Name)
		if skillName == "" {
			continue
		}
		c.Skills = append(c.Skills, game.Skill{
			Name:          skillName,
			Description:   s.Description,
			Kind:          game.ParseSkillKind(s.Type),
			Power:         s.Power,
			Effect:        strings.TrimSpace(s.Effect),
			CooldownTurns: cd,
		})
	}
	return c
}

// Validate checks that c is a fresh combatant the engine can accept.
func Validate(c game.Combatant) error {
	switch {
	case strings.TrimSpace(c.ID) == "":
		return fmt.Errorf("%w: missing id", ErrInvalidCombatant)
	case strings.TrimSpace(c.Name) == "":
		return fmt.Errorf("%w: missing name", ErrInvalidCombatant)
	case c.MaxHealth <= 0:
		return fmt.Errorf("%w: %s: max health must be positive", ErrInvalidCombatant, c.Name)
	case c.CurrentHealth != c.MaxHealth || c.IsDefeated:
		return fmt.Errorf("%w: %s: must start at full health", ErrInvalidCombatant, c.Name)
	case c.AttackPower <= 0 || c.DefensePower <= 0 || c.Agility <= 0:
		return fmt.Errorf("%w: %s: attack, defense and agility must be positive", ErrInvalidCombatant, c.Name)
	}
	for _, s := range c.Skills {
		switch {
		case strings.TrimSpace(s.Name) == "":
			return fmt.Errorf("%w: %s: skill without a name", ErrInvalidCombatant, c.Name)
		case s.Kind != game.SkillOffense && s.Kind != game.SkillSupport && s.Kind != game.SkillSignature:
			return fmt.Errorf("%w: %s: skill %s has unknown kind %q", ErrInvalidCombatant, c.Name, s.Name, s.Kind)
		case s.CooldownTurns < 0 || s.RemainingCooldown != 0:
			return fmt.Errorf("%w: %s: skill %s must start off cooldown", ErrInvalidCombatant, c.Name, s.Name)
		}
	}
	return nil
}

// ValidatePair validates both combatants and requires distinct ids.
func ValidatePair(a, b game.Combatant) error {
	if err := Validate(a); err != nil {
		return err
	}
	if err := Validate(b); err != nil {
		return err
	}
	if a.ID == b.ID {
		return fmt.Errorf("%w: combatants share id %q", ErrInvalidCombatant, a.ID)
	}
	return nil
}
