package dedupe

// Package dedupe provides shared singleflight groups used to deduplicate
// concurrent generation requests. Only one generation job runs for a given
// key while other callers wait for its result.

import "golang.org/x/sync/singleflight"

// MatchupGroup deduplicates monster generation keyed by the matchup key.
var MatchupGroup singleflight.Group
