package keys

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/Razgrits/Suno-Battler/internal/constants"

	"golang.org/x/text/cases"
)

var songUUIDRegex = regexp.MustCompile(`(?i)[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)

// SongIDFromURL extracts the Suno song UUID embedded in a link, lowercased.
// Short links (suno.com/s/...) carry no UUID and return "".
func SongIDFromURL(url string) string {
	return strings.ToLower(songUUIDRegex.FindString(url))
}

// CoverURL is the CDN cover image for a song UUID ("" when id is empty).
func CoverURL(id string) string {
	if id == "" {
		return ""
	}
	return constants.SunoCDNBaseURL + "image_" + id + ".png"
}

// AudioURL is the CDN mp3 for a song UUID ("" when id is empty).
func AudioURL(id string) string {
	if id == "" {
		return ""
	}
	return constants.SunoCDNBaseURL + id + ".mp3"
}

// SongKey identifies a song for stats aggregation: its UUID when the link
// has one, otherwise the trimmed, lowercased link itself.
func SongKey(url string) string {
	if id := SongIDFromURL(url); id != "" {
		return id
	}
	return strings.ToLower(strings.TrimSpace(url))
}

// MatchupKey produces a stable cache key for an ordered list of song
// descriptions. Each part is trimmed and case-folded, so "ÉCLAIR" and
// "éclair" collide; order is preserved because the first song always
// becomes the first combatant.
func MatchupKey(parts ...string) string {
	fold := cases.Fold()
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(fold.String(strings.TrimSpace(p))))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
