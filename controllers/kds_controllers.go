package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/tab-pos/kds"
	"github.com/yeremiapane/tab-pos/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// KDSHandler returns the board websocket endpoint. A new client gets the current board
// right away, later changes arrive through the hub.
func KDSHandler(engine *services.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}

		tabs := engine.List()
		if err := ws.WriteJSON(kds.Message{Event: kds.EventTabsUpdate, Data: tabs}); err != nil {
			ws.Close()
			return
		}
		kds.RegisterClient(ws, role)

		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				break
			}
		}
		kds.UnregisterClient(ws)
	}
}
