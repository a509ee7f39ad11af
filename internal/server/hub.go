package server

import (
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Hub keeps the websocket clients of this process keyed by connection id.
// It only moves bytes: which connections receive an event is decided by the
// presence registry.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	metrics *Metrics
	logger  logrus.FieldLogger
}

func NewHub(metrics *Metrics, logger logrus.FieldLogger) *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		metrics: metrics,
		logger:  logger,
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c.id] = c
	count := len(h.clients)
	h.mu.Unlock()

	h.metrics.SetClients(count)
	h.logger.
		WithField("connection_id", c.id).
		WithField("user_id", c.userID).
		WithField("connections", count).
		Debug("client registered")
}

// Unregister removes the client and closes its send buffer. Unknown clients
// are ignored.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	current, ok := h.clients[c.id]
	ok = ok && current == c
	if ok {
		delete(h.clients, c.id)
		close(c.send)
	}
	count := len(h.clients)
	h.mu.Unlock()

	if !ok {
		return
	}
	h.metrics.SetClients(count)
	h.logger.
		WithField("connection_id", c.id).
		WithField("user_id", c.userID).
		WithField("connections", count).
		Debug("client unregistered")
}

// Send enqueues payload on the client's buffer without blocking. A client
// that does not keep up is disconnected. It reports whether the payload was
// queued.
func (h *Hub) Send(connectionID string, payload []byte) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	c, ok := h.clients[connectionID]
	if !ok {
		return false
	}

	select {
	case c.send <- payload:
		return true
	default:
		h.metrics.SlowClient()
		h.logger.
			WithField("connection_id", c.id).
			WithField("user_id", c.userID).
			Warning("send buffer is full, dropping client")
		c.kick()
		return false
	}
}

// CloseUserSessions disconnects every client of userID. Their read loops
// unregister them.
func (h *Hub) CloseUserSessions(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	closed := 0
	for _, c := range h.clients {
		if c.userID == userID {
			c.kick()
			closed++
		}
	}
	return closed
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client. Their read loops unregister them.
func (h *Hub) Close() {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		c.kick()
	}
}
