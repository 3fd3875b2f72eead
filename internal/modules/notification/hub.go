package notification

import (
	"sync"

	"github.com/gorilla/websocket"
)

type client struct {
	conn     *websocket.Conn
	branchID *int64
}

// Hub tracks live dashboard connections. A client subscribed with a branch
// receives that branch's events; a client with no branch (admins) receives
// everything.
type Hub struct {
	mu      sync.RWMutex
	clients map[int64]*client
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[int64]*client),
	}
}

func (h *Hub) Register(userID int64, branchID *int64, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if old, exists := h.clients[userID]; exists && old.conn != nil {
		_ = old.conn.Close()
	}

	h.clients[userID] = &client{conn: conn, branchID: branchID}
}

func (h *Hub) Unregister(userID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c, exists := h.clients[userID]; exists {
		if c.conn != nil {
			_ = c.conn.Close()
		}
		delete(h.clients, userID)
	}
}

func (h *Hub) SendToUser(userID int64, message interface{}) bool {
	h.mu.RLock()
	c, exists := h.clients[userID]
	h.mu.RUnlock()

	if !exists || c.conn == nil {
		return false
	}

	if err := c.conn.WriteJSON(message); err != nil {
		h.Unregister(userID)
		return false
	}
	return true
}

// BroadcastBranch delivers to everyone watching the branch plus the
// unscoped admin connections.
func (h *Hub) BroadcastBranch(branchID int64, message interface{}) {
	h.mu.RLock()
	targets := make([]int64, 0, len(h.clients))
	for userID, c := range h.clients {
		if c.branchID == nil || *c.branchID == branchID {
			targets = append(targets, userID)
		}
	}
	h.mu.RUnlock()

	for _, userID := range targets {
		h.SendToUser(userID, message)
	}
}

func (h *Hub) OnlineCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for userID, c := range h.clients {
		if c.conn != nil {
			_ = c.conn.Close()
		}
		delete(h.clients, userID)
	}
}
