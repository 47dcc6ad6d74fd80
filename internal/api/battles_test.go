package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Razgrits/Suno-Battler/internal/game"
	"github.com/Razgrits/Suno-Battler/internal/monstergen"
	"github.com/Razgrits/Suno-Battler/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	pair [2]game.Combatant
	err  error
}

func (g *stubGenerator) GetOrCreate(ctx context.Context, req monstergen.Request) ([2]game.Combatant, string, error) {
	return g.pair, monstergen.SourceCache, g.err
}

type stubLeaderboard struct {
	songs []game.SongStats
	err   error
	limit int
}

func (s *stubLeaderboard) GetTopSongs(limit int) ([]game.SongStats, error) {
	s.limit = limit
	return s.songs, s.err
}

func combatant(id string, hp, agi, power int) game.Combatant {
	return game.Combatant{
		ID: id, Name: "Mon " + id, MaxHealth: hp, CurrentHealth: hp,
		AttackPower: 100, DefensePower: 50, Agility: agi,
		Skills: []game.Skill{{Name: "Hit " + id, Kind: game.SkillSignature, Power: power, CooldownTurns: 5}},
	}
}

func newTestRouter(gen service.Generator, lb *stubLeaderboard) (*gin.Engine, *service.Manager) {
	gin.SetMode(gin.TestMode)
	m := service.NewManager(gen, nil, 1)
	r := gin.New()
	RegisterRoutes(r, NewBattleHandler(m, lb, time.Millisecond))
	return r, m
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateBattle_FromSongs(t *testing.T) {
	gen := &stubGenerator{pair: [2]game.Combatant{combatant("a", 500, 10, 10), combatant("b", 500, 20, 10)}}
	r, _ := newTestRouter(gen, &stubLeaderboard{})

	w := doJSON(t, r, http.MethodPost, "/api/battles", gin.H{"songs": []gin.H{{"url": "https://suno.com/song/x"}, {"url": "https://suno.com/song/y"}}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var bt service.Battle
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bt))
	assert.NotEmpty(t, bt.ID)
	assert.Equal(t, monstergen.SourceCache, bt.Source)
	assert.Equal(t, 1, bt.State.ActiveIndex)
	assert.Equal(t, game.StatusInProgress, bt.State.Outcome.Status)
}

func TestCreateBattle_BadInput(t *testing.T) {
	r, _ := newTestRouter(&stubGenerator{}, &stubLeaderboard{})

	w := doJSON(t, r, http.MethodPost, "/api/battles", gin.H{"songs": []gin.H{{"url": "only-one"}}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/battles", gin.H{"songs": []gin.H{{"url": "x"}, {"title": "no url"}}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateBattle_GenerationFailureIsBadGateway(t *testing.T) {
	gen := &stubGenerator{err: errors.Join(monstergen.ErrGenerationFailed, errors.New("quota"))}
	r, _ := newTestRouter(gen, &stubLeaderboard{})

	w := doJSON(t, r, http.MethodPost, "/api/battles", gin.H{"songs": []gin.H{{"url": "x"}, {"url": "y"}}})
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestCustomBattle_AdvanceToVictoryAndDelete(t *testing.T) {
	r, _ := newTestRouter(nil, &stubLeaderboard{})

	a := combatant("", 1000, 90, 500)
	a.CurrentHealth = 0
	b := combatant("", 40, 10, 10)
	w := doJSON(t, r, http.MethodPost, "/api/battles/custom", gin.H{"combatants": []game.Combatant{a, b}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var bt service.Battle
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bt))
	assert.Equal(t, 1000, bt.State.Combatants[0].CurrentHealth)
	assert.NotEmpty(t, bt.State.Combatants[0].ID)

	w = doJSON(t, r, http.MethodPost, "/api/battles/"+bt.ID+"/advance", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var adv struct {
		Result game.TurnResult `json:"result"`
		Battle service.Battle  `json:"battle"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &adv))
	assert.True(t, adv.Result.Defeated)
	assert.Equal(t, game.StatusFinished, adv.Battle.State.Outcome.Status)
	assert.Equal(t, bt.State.Combatants[0].ID, adv.Battle.State.Outcome.WinnerID)

	// Terminal: inert result.
	w = doJSON(t, r, http.MethodPost, "/api/battles/"+bt.ID+"/advance", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &adv))
	assert.Empty(t, adv.Result.AttackerID)

	w = doJSON(t, r, http.MethodGet, "/api/battles/"+bt.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/battles/"+bt.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/battles/"+bt.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCustomBattle_Invalid(t *testing.T) {
	r, _ := newTestRouter(nil, &stubLeaderboard{})
	bad := combatant("a", 100, 10, 10)
	bad.AttackPower = 0
	w := doJSON(t, r, http.MethodPost, "/api/battles/custom", gin.H{"combatants": []game.Combatant{bad, combatant("b", 100, 10, 10)}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCustomBattle_Autoplay(t *testing.T) {
	r, m := newTestRouter(nil, &stubLeaderboard{})
	w := doJSON(t, r, http.MethodPost, "/api/battles/custom", gin.H{
		"combatants": []game.Combatant{combatant("a", 1000, 90, 500), combatant("b", 40, 10, 10)},
		"autoplay":   true,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var bt service.Battle
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bt))
	assert.True(t, bt.Autoplay)

	assert.Eventually(t, func() bool {
		got, err := m.Get(bt.ID)
		return err == nil && got.State.Outcome.Status == game.StatusFinished
	}, 2*time.Second, 5*time.Millisecond)
}

func TestBattleID_Validation(t *testing.T) {
	r, _ := newTestRouter(nil, &stubLeaderboard{})
	assert.Equal(t, http.StatusBadRequest, doJSON(t, r, http.MethodGet, "/api/battles/not-a-uuid", nil).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodPost, "/api/battles/6f1c2a54-8a77-4d47-9b4e-0e1c2d3e4f5a/advance", nil).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodDelete, "/api/battles/6f1c2a54-8a77-4d47-9b4e-0e1c2d3e4f5a", nil).Code)
}

func TestLeaderboard(t *testing.T) {
	lb := &stubLeaderboard{songs: []game.SongStats{{SongKey: "k", MonsterName: "Neon", Wins: 3, Battles: 4}}}
	lb.songs[0].ID = 9
	r, _ := newTestRouter(nil, lb)

	w := doJSON(t, r, http.MethodGet, "/api/leaderboard?limit=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5, lb.limit)

	var out []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "Neon", out[0]["monster_name"])
	assert.Contains(t, out[0], "created_at")
	assert.Contains(t, out[0], "id")
	assert.NotContains(t, out[0], "CreatedAt")

	doJSON(t, r, http.MethodGet, "/api/leaderboard?limit=1000", nil)
	assert.Equal(t, 10, lb.limit)

	lb.err = errors.New("db down")
	assert.Equal(t, http.StatusInternalServerError, doJSON(t, r, http.MethodGet, "/api/leaderboard", nil).Code)
}

func TestVersion(t *testing.T) {
	r, _ := newTestRouter(nil, &stubLeaderboard{})
	w := doJSON(t, r, http.MethodGet, "/api/version", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"suno-battler"`)
}
