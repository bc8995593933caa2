package bridge

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/tidworth/sicp/internal/logging"
	"go.uber.org/zap"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Send pings to peer with this period to keep connection alive
	pingPeriod = 54 * time.Second
)

// WSClient represents a single WebSocket subscriber
type WSClient struct {
	// The WebSocket connection
	conn *websocket.Conn

	// The hub this client belongs to
	hub *Hub

	// Buffered channel of outbound messages
	send chan []byte
}

// NewWSClient creates a new WebSocket subscriber
func NewWSClient(hub *Hub, conn *websocket.Conn) *WSClient {
	return &WSClient{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 256),
	}
}

// writePump sends messages and pings to the WebSocket connection.
// This is the only goroutine needed since the stream is unidirectional
// (server -> client); disconnections surface as write errors.
func (c *WSClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.conn.Close(); err != nil {
			logging.Debug("WebSocket close error", zap.Error(err))
		}
		// The hub may already be gone during shutdown
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
	}()

	for {
		select {
		case message, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logging.Debug("WebSocket write deadline error", zap.Error(err))
				return
			}
			if !ok {
				// The hub closed the channel
				if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					logging.Debug("WebSocket close message error", zap.Error(err))
				}
				return
			}

			// Write the message as JSON text
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logging.Debug("WebSocket write error", zap.Error(err))
				return
			}

		case <-ticker.C:
			// Send periodic ping to keep connection alive and detect disconnections
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logging.Debug("WebSocket write deadline error", zap.Error(err))
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logging.Debug("WebSocket ping error", zap.Error(err))
				return
			}
		}
	}
}

// Start begins the write pump for this client
func (c *WSClient) Start() {
	go c.writePump()
}
