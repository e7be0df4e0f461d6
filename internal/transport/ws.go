// Package transport bridges a Hub Subscriber to one external stream. The
// sole adapter today upgrades an HTTP connection to a gorilla/websocket
// connection, grounded in the monitoring package's broadcastHandler this
// engine replaces and the pack's hub write/read pump pairing.
package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"svctopo/internal/hub"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSAdapter serves GET /ws: it upgrades the request, subscribes to the
// hub, and bridges inbox messages to websocket frames until the client
// disconnects or a write fails.
type WSAdapter struct {
	hub *hub.Hub
	log *slog.Logger
}

func NewWSAdapter(h *hub.Hub, log *slog.Logger) *WSAdapter {
	return &WSAdapter{hub: h, log: log}
}

func (a *WSAdapter) Handle(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		a.log.Warn("websocket upgrade failed", "error", err)
		return
	}

	sub := a.hub.Subscribe()

	go a.readPump(conn, sub)
	a.writePump(conn, sub)
}

// writePump drains the subscriber's inbox and writes one JSON frame per
// StatusUpdate. Any write error or subscriber close ends the loop and
// evicts the subscriber.
func (a *WSAdapter) writePump(conn *websocket.Conn, sub *hub.Subscriber) {
	defer conn.Close()
	defer sub.Close()

	for {
		update, ok := sub.NextMessage()
		if !ok {
			return
		}

		frame, err := json.Marshal(update)
		if err != nil {
			a.log.Error("failed to encode status update", "error", err)
			continue
		}

		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			return
		}
	}
}

// readPump drains inbound frames so client keep-alives don't stall the
// TCP connection; their content is ignored. It terminates the subscriber
// on close so writePump unblocks.
func (a *WSAdapter) readPump(conn *websocket.Conn, sub *hub.Subscriber) {
	defer sub.Close()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
