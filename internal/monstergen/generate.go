package monstergen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Razgrits/Suno-Battler/internal/constants"
	"github.com/Razgrits/Suno-Battler/internal/dedupe"
	"github.com/Razgrits/Suno-Battler/internal/game"
	"github.com/Razgrits/Suno-Battler/internal/llmclient"
	"github.com/Razgrits/Suno-Battler/internal/logging"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Sources reported by GetOrCreate.
const (
	SourceCache = "db"
	SourceLLM   = "llm"
)

// Repo is the subset of storage the generator needs.
type Repo interface {
	GetGeneratedMatchup(key string) (*game.GeneratedMatchup, error)
	SaveGeneratedMatchup(m *game.GeneratedMatchup) error
}

// Generator produces combatant pairs for song matchups, reusing cached
// results when the same request was seen before.
type Generator struct {
	client  llmclient.Completer
	repo    Repo
	timeout time.Duration
}

// NewGenerator wires a Completer and a cache. repo may be nil to disable
// caching.
func NewGenerator(client llmclient.Completer, repo Repo, timeout time.Duration) *Generator {
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &Generator{client: client, repo: repo, timeout: timeout}
}

type genRes struct {
	Pair   [2]game.Combatant
	Source string
}

func (g *Generator) cached(key string) ([2]game.Combatant, bool) {
	var out [2]game.Combatant
	if g.repo == nil {
		return out, false
	}
	m, err := g.repo.GetGeneratedMatchup(key)
	if err != nil || m == nil || len(m.Combatants) == 0 {
		return out, false
	}
	if err := json.Unmarshal(m.Combatants, &out); err != nil {
		logging.Warn("discarding unreadable cached matchup", logging.Fields{constants.LogFieldMatchupKey: key, "error": err.Error()})
		return out, false
	}
	if ValidatePair(out[0], out[1]) != nil {
		return out, false
	}
	return out, true
}

func (g *Generator) generate(key string, req Request) (genRes, error) {
	// Another caller may have stored the matchup while we waited to enter
	// the flight.
	if pair, ok := g.cached(key); ok {
		logging.Info("matchup cache hit (singleflight)", logging.Fields{constants.LogFieldMatchupKey: key, constants.LogFieldSource: SourceCache})
		return genRes{Pair: pair, Source: SourceCache}, nil
	}
	if g.client == nil {
		return genRes{}, fmt.Errorf("%w: no language model configured", ErrGenerationFailed)
	}

	// The flight is shared, so it must not depend on any one caller's
	// context.
	ctx, cancel := context.WithTimeout(context.Background(), g.timeout)
	defer cancel()

	prompt := BuildPrompt(req)
	logging.Debug("monster generation prompt", logging.Fields{constants.LogFieldMatchupKey: key, "prompt": prompt})
	reply, err := g.client.Complete(ctx, prompt)
	if err != nil {
		logging.Error("monster generation request failed", err, logging.Fields{constants.LogFieldMatchupKey: key, constants.LogFieldModel: g.client.Model()})
		return genRes{}, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	pair, err := ParseMonsters(reply, req)
	if err != nil {
		logging.Error("monster generation reply rejected", err, logging.Fields{constants.LogFieldMatchupKey: key})
		return genRes{}, err
	}
	logging.Info("monster generation success", logging.Fields{
		constants.LogFieldMatchupKey: key,
		constants.LogFieldModel:      g.client.Model(),
		"monsters":                   []string{pair[0].Name, pair[1].Name},
	})

	if g.repo != nil {
		b, err := json.Marshal(pair)
		if err == nil {
			err = g.repo.SaveGeneratedMatchup(&game.GeneratedMatchup{
				MatchupKey: key,
				Combatants: datatypes.JSON(b),
				Source:     g.client.Model(),
			})
		}
		if err != nil {
			logging.Error("failed to cache generated matchup", err, logging.Fields{constants.LogFieldMatchupKey: key})
		}
	}
	return genRes{Pair: pair, Source: SourceLLM}, nil
}

// GetOrCreate returns two fresh combatants for req and where they came from
// (SourceCache or SourceLLM). Concurrent identical requests share a single
// model call. Every call hands out new combatant ids so two battles never
// share identities.
func (g *Generator) GetOrCreate(ctx context.Context, req Request) ([2]game.Combatant, string, error) {
	var out [2]game.Combatant
	for i, s := range req.Songs {
		if s.URL == "" {
			return out, "", fmt.Errorf("%w: song %d has no url", ErrGenerationFailed, i+1)
		}
	}
	key := req.Key()

	if pair, ok := g.cached(key); ok {
		logging.Info("matchup cache hit", logging.Fields{constants.LogFieldMatchupKey: key, constants.LogFieldSource: SourceCache})
		return freshIDs(pair), SourceCache, nil
	}

	ch := dedupe.MatchupGroup.DoChan(key, func() (interface{}, error) {
		return g.generate(key, req)
	})

	select {
	case r := <-ch:
		if r.Err != nil {
			return out, "", r.Err
		}
		res, ok := r.Val.(genRes)
		if !ok {
			return out, "", fmt.Errorf("%w: unexpected result type %T", ErrGenerationFailed, r.Val)
		}
		return freshIDs(res.Pair), res.Source, nil
	case <-ctx.Done():
		return out, "", fmt.Errorf("%w: %v", ErrGenerationFailed, ctx.Err())
	case <-time.After(g.timeout + 5*time.Second):
		logging.Error("monster generation timed out", errors.New("timeout"), logging.Fields{constants.LogFieldMatchupKey: key})
		return out, "", fmt.Errorf("%w: timed out waiting for generation", ErrGenerationFailed)
	}
}

func freshIDs(pair [2]game.Combatant) [2]game.Combatant {
	for i := range pair {
		pair[i] = pair[i].Clone()
		pair[i].ID = uuid.NewString()
	}
	return pair
}
