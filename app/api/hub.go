package api

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const writeWait = 10 * time.Second

// Hub fans domain change events out to connected websocket clients so
// client caches can follow mutations without polling.
type Hub struct {
	log   *zap.Logger
	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

type hubEvent struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		log:   log,
		conns: map[*websocket.Conn]struct{}{},
	}
}

func (h *Hub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = struct{}{}
}

func (h *Hub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, conn)
}

// Broadcast sends the event to every connected client; dead connections
// are dropped.
func (h *Hub) Broadcast(event string, data any) {
	msg, err := json.Marshal(hubEvent{Event: event, Data: data})
	if err != nil {
		h.log.Error("marshal hub event failed", zap.String("event", event), zap.Error(err))
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.log.Debug("dropping websocket client", zap.Error(err))
			_ = conn.Close()
			delete(h.conns, conn)
		}
	}
}
