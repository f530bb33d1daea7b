package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"jerkwad-backend/internal/handlers"
	"jerkwad-backend/internal/middleware"
	"jerkwad-backend/internal/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub serves the chat contract over WebSocket connections. Each inbound frame
// is one {message, history} request and gets exactly one reply frame. Frames
// on a connection are answered in order, one at a time.
type Hub struct {
	mu          sync.RWMutex
	connections map[*websocket.Conn]context.CancelFunc
	replier     handlers.Replier
}

func NewHub(replier handlers.Replier) *Hub {
	return &Hub{
		connections: make(map[*websocket.Conn]context.CancelFunc),
		replier:     replier,
	}
}

func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	// The request context ends when this handler returns.
	ctx, cancel := context.WithCancel(context.Background())
	connID := middleware.GetRequestID(r.Context())
	h.registerConnection(conn, cancel)

	go func() {
		defer h.unregisterConnection(conn)
		h.serve(ctx, conn, connID)
	}()
}

func (h *Hub) serve(ctx context.Context, conn *websocket.Conn, connID string) {
	for frame := 1; ; frame++ {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var req models.ChatRequest
		if err := json.Unmarshal(data, &req); err != nil {
			if err := conn.WriteJSON(models.ErrorResponse{Error: "Invalid request body"}); err != nil {
				return
			}
			continue
		}

		reply, _, errMsg := handlers.Answer(ctx, h.replier, req, fmt.Sprintf("%s/%d", connID, frame))

		var out interface{} = models.ChatResponse{Response: reply}
		if errMsg != "" {
			out = models.ErrorResponse{Error: errMsg}
		}
		if err := conn.WriteJSON(out); err != nil {
			return
		}
	}
}

func (h *Hub) registerConnection(conn *websocket.Conn, cancel context.CancelFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.connections[conn] = cancel
	log.Printf("WebSocket connected: %s (total: %d)", conn.RemoteAddr(), len(h.connections))
}

func (h *Hub) unregisterConnection(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn.Close()
	if cancel, ok := h.connections[conn]; ok {
		cancel()
		delete(h.connections, conn)
	}

	log.Printf("WebSocket disconnected: %s", conn.RemoteAddr())
}

// Count reports the number of open connections.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// Close drops every open connection, cancelling in-flight replies.
func (h *Hub) Close() {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for conn, cancel := range h.connections {
		cancel()
		conn.Close()
	}
}
