package api

import (
	"context"
	"net/http"

	"github.com/Razgrits/Suno-Battler/internal/constants"
	"github.com/Razgrits/Suno-Battler/internal/game"
	"github.com/Razgrits/Suno-Battler/internal/logging"
	"github.com/Razgrits/Suno-Battler/internal/monstergen"
	"github.com/Razgrits/Suno-Battler/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type startBattleRequest struct {
	Songs    []monstergen.SongInput `json:"songs" binding:"required,len=2"`
	Autoplay bool                   `json:"autoplay"`
}

type customBattleRequest struct {
	Combatants []game.Combatant `json:"combatants" binding:"required,len=2"`
	Autoplay   bool             `json:"autoplay"`
}

// CreateBattle generates two monsters from Suno songs and starts a battle.
func (h *BattleHandler) CreateBattle(c *gin.Context) {
	var req startBattleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest, constants.JSONKeyDetails: err.Error()})
		return
	}
	var genReq monstergen.Request
	for i := range genReq.Songs {
		genReq.Songs[i] = req.Songs[i]
		if genReq.Songs[i].URL == "" {
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest, constants.JSONKeyDetails: "every song needs a url"})
			return
		}
	}
	bt, err := h.battles.StartBattle(c.Request.Context(), genReq)
	if err != nil {
		logging.Error("failed to start battle", err, nil)
		writeServiceError(c, err, constants.ErrFailedStartBattle)
		return
	}
	h.respondStarted(c, bt, req.Autoplay)
}

// CreateCustomBattle starts a battle between two caller-supplied
// combatants. Missing ids are assigned and a zero current health means full
// health.
func (h *BattleHandler) CreateCustomBattle(c *gin.Context) {
	var req customBattleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest, constants.JSONKeyDetails: err.Error()})
		return
	}
	for i := range req.Combatants {
		cb := &req.Combatants[i]
		if cb.ID == "" {
			cb.ID = uuid.NewString()
		}
		if cb.CurrentHealth == 0 {
			cb.CurrentHealth = cb.MaxHealth
		}
	}
	bt, err := h.battles.StartCustomBattle(req.Combatants[0], req.Combatants[1])
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedStartBattle)
		return
	}
	h.respondStarted(c, bt, req.Autoplay)
}

func (h *BattleHandler) respondStarted(c *gin.Context, bt service.Battle, autoplay bool) {
	if autoplay {
		// The driver must outlive the request.
		if err := h.battles.Autoplay(context.Background(), bt.ID, h.turnDelay); err != nil {
			logging.Error("failed to start autoplay", err, logging.Fields{constants.LogFieldBattleID: bt.ID})
		} else {
			bt.Autoplay = true
		}
	}
	c.JSON(http.StatusCreated, bt)
}

// GetBattle returns a snapshot of a live battle.
func (h *BattleHandler) GetBattle(c *gin.Context) {
	id := battleIDParam(c)
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleID})
		return
	}
	bt, err := h.battles.Get(id)
	if err != nil {
		writeServiceError(c, err, constants.ErrBattleNotFound)
		return
	}
	c.JSON(http.StatusOK, bt)
}

// AdvanceBattle resolves one turn and returns it with the new snapshot.
func (h *BattleHandler) AdvanceBattle(c *gin.Context) {
	id := battleIDParam(c)
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleID})
		return
	}
	res, bt, err := h.battles.Advance(id)
	if err != nil {
		writeServiceError(c, err, constants.ErrBattleNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyResult: res, constants.JSONKeyBattle: bt})
}

// DeleteBattle discards a battle and stops its autoplay.
func (h *BattleHandler) DeleteBattle(c *gin.Context) {
	id := battleIDParam(c)
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleID})
		return
	}
	if err := h.battles.Discard(id); err != nil {
		writeServiceError(c, err, constants.ErrBattleNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}
