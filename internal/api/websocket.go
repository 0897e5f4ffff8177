package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/studyquery/backend/internal/state"
)

// statusPushInterval is how often the gateway snapshot is pushed to
// connected clients. Transfers and submissions settle asynchronously, so
// this is the frontend's alternative to polling GET /api/status.
const statusPushInterval = 500 * time.Millisecond

// StatusWebSocketHandler pushes gateway snapshots over WebSocket
type StatusWebSocketHandler struct {
	state    *state.Manager
	upgrader websocket.Upgrader
}

// NewStatusWebSocketHandler creates a new status push handler
func NewStatusWebSocketHandler(stateMgr *state.Manager) *StatusWebSocketHandler {
	return &StatusWebSocketHandler{
		state: stateMgr,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Allow connections from dev server
				return true
			},
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 4 * 1024,
		},
	}
}

// HandleStatusWebSocket upgrades the connection and streams snapshots until
// the client disconnects.
func (wsh *StatusWebSocketHandler) HandleStatusWebSocket(c echo.Context) error {
	ws, err := wsh.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer ws.Close()

	fmt.Println("[WebSocket] Client connected for status updates")

	// Discard inbound messages; reads only serve to detect disconnects.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(statusPushInterval)
	defer ticker.Stop()

	// Initial snapshot so clients don't wait a full tick
	if err := ws.WriteJSON(wsh.state.Status()); err != nil {
		return nil
	}

	for {
		select {
		case <-done:
			fmt.Println("[WebSocket] Client disconnected")
			return nil
		case <-ticker.C:
			if err := ws.WriteJSON(wsh.state.Status()); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					fmt.Printf("[WebSocket] Connection error: %v\n", err)
				}
				return nil
			}
		}
	}
}
