package handlers

import (
	"net/http"

	"taskmanager/internal/logger"
	"taskmanager/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The identity-aware proxy fronts every request; the socket carries
	// no state worth forging, only "re-render now" pings.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS upgrades the connection and keeps it registered with the hub until
// the page goes away.
func (h *Handler) WS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	ws.NewClient(h.Hub, conn).Run()
}
