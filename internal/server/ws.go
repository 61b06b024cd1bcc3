package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/ayusman/veena/internal/stage"
	"github.com/gorilla/websocket"
)

// stageWriteTimeout bounds how long one frame write may block. A client
// that cannot keep up is dropped rather than allowed to stall the feed.
const stageWriteTimeout = time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// StageHandler broadcasts composed stage frames to WebSocket clients. The
// host loop pushes each frame with Publish; projection clients only listen.
type StageHandler struct {
	clients map[*websocket.Conn]bool
	mu      sync.Mutex
}

// NewStageHandler creates a new StageHandler with no connected clients.
func NewStageHandler() *StageHandler {
	return &StageHandler{
		clients: make(map[*websocket.Conn]bool),
	}
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *StageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
		conn.Close()
	}()

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// Publish sends a composed frame to every connected client. Clients whose
// writes fail or time out are closed and removed.
func (h *StageHandler) Publish(frame stage.Frame) {
	msg, err := json.Marshal(frame)
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		conn.SetWriteDeadline(time.Now().Add(stageWriteTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *StageHandler) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
