package monstergen

import (
	"fmt"
	"strings"

	"github.com/Razgrits/Suno-Battler/internal/keys"
)

// SongInput describes one song a monster is derived from. Only URL is
// required; the manual fields override whatever the model finds.
type SongInput struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	Theme    string `json:"theme"`
	CoverURL string `json:"cover_url"`
	Lyrics   string `json:"lyrics"`
}

// Request asks for one monster per song, in order.
type Request struct {
	Songs [2]SongInput `json:"songs"`
}

// Key is the cache key for this request.
func (r Request) Key() string {
	parts := make([]string, 0, 10)
	for _, s := range r.Songs {
		parts = append(parts, s.URL, s.Title, s.Theme, s.CoverURL, s.Lyrics)
	}
	return keys.MatchupKey(parts...)
}

const maxLyricsChars = 800

// promptTemplate can be set at application startup to customize the prompt.
// Use the token "{{songs}}" where the song descriptions are substituted.
var promptTemplate string

// SetPromptTemplate overrides the built-in prompt. Call this during app
// initialization.
func SetPromptTemplate(t string) {
	promptTemplate = strings.TrimSpace(t)
}

const defaultPromptTemplate = `Create two RPG monsters, one for each of the Suno songs below.

{{songs}}

For each song:
1. Name: use the manual title when given. Otherwise look the link up; a page title like "Song Name by @artist | Suno" means the name is "Song Name".
2. Cover: use the manual cover when given, otherwise any image or video URL you can find for the song.
3. Skills: exactly three, one ATTACK, one DEFENSE and one ULTIMATE, themed on the title, theme and lyrics (quote lyric lines when provided).
4. Stats: hp 800-1500, attack 60-150, defense 40-120, agility 10-100. The two monsters' stat totals must be within 10% of each other.

Reply with JSON only, in this shape:
{"monsters":[{"name":"","coverUrl":"","audioUrl":"","hp":1000,"attack":100,"defense":80,"agility":50,"skills":[{"name":"","type":"ATTACK","description":"","power":50,"effect":"fire","cooldown":2}]}]}`

// BuildPrompt renders the configured template for req.
func BuildPrompt(req Request) string {
	var sb strings.Builder
	for i, s := range req.Songs {
		id := keys.SongIDFromURL(s.URL)
		if id == "" {
			id = "None"
		}
		fmt.Fprintf(&sb, "MONSTER %d:\n", i+1)
		fmt.Fprintf(&sb, "- URL: %s\n", s.URL)
		fmt.Fprintf(&sb, "- Manual Title: %q\n", s.Title)
		fmt.Fprintf(&sb, "- Manual Theme: %q\n", s.Theme)
		fmt.Fprintf(&sb, "- Manual Cover URL: %q\n", s.CoverURL)
		fmt.Fprintf(&sb, "- Manual Lyrics: %q\n", flattenLyrics(s.Lyrics))
		fmt.Fprintf(&sb, "- Detected UUID: %s\n", id)
		if i == 0 {
			sb.WriteString("\n")
		}
	}
	t := promptTemplate
	if t == "" {
		t = defaultPromptTemplate
	}
	return strings.ReplaceAll(t, "{{songs}}", sb.String())
}

// flattenLyrics keeps the first 800 characters on a single line.
func flattenLyrics(l string) string {
	if l == "" {
		return ""
	}
	r := []rune(l)
	if len(r) > maxLyricsChars {
		r = r[:maxLyricsChars]
	}
	return strings.ReplaceAll(string(r), "\n", " ") + "..."
}
