package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Tejaspatil777/Coffee-Hub-sub001/kds"
	"github.com/Tejaspatil777/Coffee-Hub-sub001/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // layar KDS berjalan di jaringan lokal kafe
	},
}

// KDSHandler -> endpoint WebSocket untuk layar dapur, waiter dan admin
func KDSHandler(c *gin.Context) {
	role := c.GetString("role")
	if role == "" {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("KDS upgrade failed: %v", err)
		return
	}

	kds.RegisterClient(ws, role)
	utils.InfoLogger.Printf("KDS client connected (role=%s, total=%d)", role, kds.ClientCount())

	// Layar hanya menerima; baca sampai koneksi putus
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	kds.UnregisterClient(ws)
}
