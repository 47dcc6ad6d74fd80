package api

import (
	"github.com/Razgrits/Suno-Battler/internal/constants"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts every endpoint under /api.
func RegisterRoutes(router gin.IRouter, h *BattleHandler) {
	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.GET(constants.RouteVersion, Version)
		apiRoutes.GET(constants.RouteLeaderboard, h.ListLeaderboard)

		apiRoutes.POST(constants.RouteBattles, h.CreateBattle)
		apiRoutes.POST(constants.RouteBattlesCustom, h.CreateCustomBattle)
		apiRoutes.GET(constants.RouteBattleByID, h.GetBattle)
		apiRoutes.POST(constants.RouteBattleAdvance, h.AdvanceBattle)
		apiRoutes.DELETE(constants.RouteBattleByID, h.DeleteBattle)
		apiRoutes.GET(constants.RouteBattleStream, h.StreamBattle)
	}
}
