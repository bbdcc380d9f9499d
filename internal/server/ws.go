// Package server provides the HTTP server for the Mudra gesture control service.
package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/ayusman/mudra/internal/control"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// OutputFrame is one render-tick update pushed to the browser renderer.
type OutputFrame struct {
	Output    control.Output `json:"output"`
	Status    control.Status `json:"status"`
	Timestamp int64          `json:"timestamp"`
}

// OutputHub broadcasts controller output to all connected WebSocket clients.
// The app's render loop publishes one frame per tick; the hub fans it out.
type OutputHub struct {
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
}

// NewOutputHub creates an empty OutputHub.
func NewOutputHub() *OutputHub {
	return &OutputHub{
		clients: make(map[*websocket.Conn]bool),
	}
}

// ServeHTTP handles WebSocket upgrade requests and keeps the connection
// registered until the client goes away.
func (h *OutputHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// Publish sends one output frame to every connected client. Slow or broken
// clients are skipped; their read loop will clean them up.
func (h *OutputHub) Publish(out control.Output, status control.Status) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.clients) == 0 {
		return
	}

	msg, err := json.Marshal(OutputFrame{
		Output:    out,
		Status:    status,
		Timestamp: time.Now().UnixMilli(),
	})
	if err != nil {
		return
	}

	for conn := range h.clients {
		conn.WriteMessage(websocket.TextMessage, msg)
	}
}

// ClientCount returns the number of connected clients.
func (h *OutputHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
