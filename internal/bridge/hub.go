package bridge

import (
	"sync"

	"github.com/tidworth/sicp/internal/logging"
	"go.uber.org/zap"
)

// Hub maintains the set of active WebSocket clients and broadcasts state
// messages to them
type Hub struct {
	// Registered clients
	clients map[*WSClient]bool

	// Marshaled state messages to broadcast to clients
	broadcast chan []byte

	// Register requests from clients
	register chan *WSClient

	// Unregister requests from clients
	unregister chan *WSClient

	// Shutdown channel to stop the hub
	shutdown chan struct{}

	// Done channel to signal shutdown completion
	done chan struct{}

	// Mutex for thread-safe operations
	mu sync.RWMutex
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*WSClient]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *WSClient),
		unregister: make(chan *WSClient),
		shutdown:   make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.shutdown:
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			logging.Info("WebSocket hub shut down, all clients disconnected")
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			logging.Info("WebSocket client connected", zap.Int("total", total))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				logging.Info("WebSocket client disconnected", zap.Int("total", len(h.clients)))
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Client's send buffer is full, close it
					close(client.send)
					delete(h.clients, client)
					logging.Warn("WebSocket client buffer full, disconnecting")
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast queues a marshaled state message for every connected client.
// Drops the message when the broadcast queue itself is saturated rather
// than blocking the poller.
func (h *Hub) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	default:
		logging.Warn("Broadcast channel full, dropping state message")
	}
}

// RegisterClient registers a new WebSocket client with the hub
func (h *Hub) RegisterClient(client *WSClient) {
	h.register <- client
}

// GetClientCount returns the number of connected WebSocket clients
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close gracefully shuts down the hub and all connected clients
func (h *Hub) Close() error {
	close(h.shutdown)
	<-h.done
	return nil
}
