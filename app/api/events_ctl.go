package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// cross-origin clients hold the session token, which Auth already
	// verified before the upgrade
	CheckOrigin: func(*http.Request) bool { return true },
}

type EventsCtl struct {
	hub *Hub
	log *zap.Logger
}

// Stream upgrades the request and keeps the connection subscribed to
// domain events until the client goes away.
func (ctl *EventsCtl) Stream(ctx *gin.Context) {
	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		ctl.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	ctl.hub.Add(conn)
	defer func() {
		ctl.hub.Remove(conn)
		_ = conn.Close()
	}()
	// the stream is write-only; reading just detects disconnects
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
