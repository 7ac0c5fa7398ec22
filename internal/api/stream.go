package api

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/vivmac33/marketprism/internal/contracts"
	"github.com/vivmac33/marketprism/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub fans freshly synthesized composites out to connected
// websocket clients. Slow clients are dropped rather than
// allowed to block the broadcast path.
type Hub struct {
	logger *logger.Logger

	mu      sync.RWMutex
	clients map[*client]bool
}

type client struct {
	conn *websocket.Conn
	send chan *contracts.CompositeResult
}

// NewHub creates a new broadcast hub.
func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		logger:  log.Component("stream"),
		clients: make(map[*client]bool),
	}
}

// ServeWS upgrades an HTTP request to a websocket connection and
// registers it for composite broadcasts.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("Websocket upgrade failed")
		return
	}

	c := &client{
		conn: conn,
		send: make(chan *contracts.CompositeResult, 16),
	}

	h.mu.Lock()
	h.clients[c] = true
	count := len(h.clients)
	h.mu.Unlock()

	h.logger.WithField("clients", count).Info("Websocket client connected")

	go h.writeLoop(c)
	go h.readLoop(c)
}

// Broadcast delivers a composite to every connected client.
// Implements composer.Broadcaster.
func (h *Hub) Broadcast(result *contracts.CompositeResult) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		select {
		case c.send <- result:
		default:
			// Buffer full, client is too slow.
			go h.remove(c)
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) writeLoop(c *client) {
	defer c.conn.Close()

	for result := range c.send {
		if err := c.conn.WriteJSON(result); err != nil {
			h.remove(c)
			return
		}
	}
}

// readLoop drains incoming frames so ping/pong and close
// handshakes are processed.
func (h *Hub) readLoop(c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			h.remove(c)
			return
		}
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c)
	close(c.send)
	count := len(h.clients)
	h.mu.Unlock()

	c.conn.Close()
	h.logger.WithField("clients", count).Info("Websocket client disconnected")
}
