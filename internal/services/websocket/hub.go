// Package websocket maintains the set of live viewer connections and
// broadcasts detection events to them.
package websocket

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Nikhil-S15/Employee-monitoring-system/internal/logger"
)

// broadcastBuffer bounds how many undelivered messages the hub holds.
// When viewers fall behind, messages are dropped rather than queued.
const broadcastBuffer = 64

type client struct {
	id   string
	conn *websocket.Conn
}

type HubService struct {
	mu         sync.RWMutex
	clients    map[*websocket.Conn]string
	broadcast  chan []byte
	register   chan *client
	unregister chan *websocket.Conn
	done       chan struct{} // closed when Run exits
	logger     *logger.Logger
}

func NewHubService(logger *logger.Logger) *HubService {
	return &HubService{
		clients:    make(map[*websocket.Conn]string),
		broadcast:  make(chan []byte, broadcastBuffer),
		register:   make(chan *client),
		unregister: make(chan *websocket.Conn),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run processes registrations and broadcasts until ctx is cancelled,
// then closes every remaining connection.
func (h *HubService) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c.conn] = c.id
			total := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("Viewer %s connected. Total: %d", c.id, total)

		case conn := <-h.unregister:
			h.mu.Lock()
			if id, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
				h.logger.Info("Viewer %s disconnected. Total: %d", id, len(h.clients))
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.Lock()
			for conn, id := range h.clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					h.logger.Error("Error sending to viewer %s: %v", id, err)
					delete(h.clients, conn)
					conn.Close()
				}
			}
			h.mu.Unlock()
		}
	}
}

// Register adds a viewer connection and returns its assigned ID. A
// viewer arriving while the hub is shutting down is not registered and
// never blocks its handler.
func (h *HubService) Register(conn *websocket.Conn) string {
	id := uuid.NewString()
	select {
	case h.register <- &client{id: id, conn: conn}:
	case <-h.done:
	}
	return id
}

// Unregister removes a viewer connection.
func (h *HubService) Unregister(conn *websocket.Conn) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// Broadcast queues a message for all viewers. Non-blocking: when the
// hub cannot keep up the message is dropped.
func (h *HubService) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	default:
		h.logger.Warning("Broadcast queue full - dropping message")
	}
}

// ClientCount returns the number of connected viewers.
func (h *HubService) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *HubService) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn, id := range h.clients {
		conn.Close()
		h.logger.Info("Closed viewer connection %s", id)
	}
	h.clients = make(map[*websocket.Conn]string)
}
