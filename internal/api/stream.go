package api

import (
	"net/http"
	"time"

	"github.com/Razgrits/Suno-Battler/internal/constants"
	"github.com/Razgrits/Suno-Battler/internal/logging"
	"github.com/Razgrits/Suno-Battler/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// StreamBattle upgrades to a websocket that first sends {"battle": snapshot}
// and then one {"result", "battle"} message per resolved turn. The server
// closes the socket when the battle ends or is discarded.
func (h *BattleHandler) StreamBattle(c *gin.Context) {
	id := battleIDParam(c)
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleID})
		return
	}
	bt, events, cancel, err := h.battles.Subscribe(id)
	if err != nil {
		writeServiceError(c, err, constants.ErrBattleNotFound)
		return
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// The upgrader has already written the HTTP error.
		cancel()
		logging.Warn("websocket upgrade failed", logging.Fields{constants.LogFieldBattleID: id, "error": err.Error()})
		return
	}
	logging.Debug("battle watcher connected", logging.Fields{constants.LogFieldBattleID: id})

	go readPump(conn, cancel)
	writePump(conn, bt, events)
	cancel()
	logging.Debug("battle watcher disconnected", logging.Fields{constants.LogFieldBattleID: id})
}

// readPump only watches for the client going away; watchers send nothing.
func readPump(conn *websocket.Conn, cancel func()) {
	defer cancel()
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Debug("websocket read error", logging.Fields{"error": err.Error()})
			}
			return
		}
	}
}

func writePump(conn *websocket.Conn, bt service.Battle, events <-chan service.TurnEvent) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(gin.H{constants.JSONKeyBattle: bt}); err != nil {
		return
	}
	for {
		select {
		case ev, ok := <-events:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
