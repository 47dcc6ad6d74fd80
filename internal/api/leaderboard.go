package api

import (
	"net/http"
	"strconv"

	"github.com/Razgrits/Suno-Battler/internal/constants"

	"github.com/gin-gonic/gin"
)

// ListLeaderboard returns the top songs by wins, limited to 10 by default.
func (h *BattleHandler) ListLeaderboard(c *gin.Context) {
	// optional ?limit=N
	limit := 10
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	songs, err := h.stats.GetTopSongs(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaderboard})
		return
	}
	out, err := MarshalIntoSnakeTimestamps(songs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedEncodeLeaderboard})
		return
	}
	c.JSON(http.StatusOK, out)
}
