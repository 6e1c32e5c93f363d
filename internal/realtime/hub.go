package realtime

import (
	"sync"
)

// Client is one websocket connection. The network conn itself is owned by the
// ws handler. Send queues message and must not block; it reports false when
// the message was dropped.
type Client interface {
	Send(message []byte) bool
	Close()
}

// Hub keeps track of the open connections of every lookup session.
type Hub struct {
	mu                 sync.RWMutex
	sessionIDToClients map[string]map[Client]struct{}
}

var hubInstance *Hub
var once sync.Once

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{
		sessionIDToClients: make(map[string]map[Client]struct{}),
	}
}

// GetHub returns a singleton hub instance.
func GetHub() *Hub {
	once.Do(func() {
		hubInstance = NewHub()
	})
	return hubInstance
}

// Register adds a client under a session ID.
func (h *Hub) Register(sessionID string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.sessionIDToClients[sessionID]; !ok {
		h.sessionIDToClients[sessionID] = make(map[Client]struct{})
	}
	h.sessionIDToClients[sessionID][client] = struct{}{}
}

// Unregister removes a client; if the session has no more clients, cleans up map.
func (h *Hub) Unregister(sessionID string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.sessionIDToClients[sessionID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.sessionIDToClients, sessionID)
		}
	}
}

// Sessions returns the number of sessions with at least one client.
func (h *Hub) Sessions() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessionIDToClients)
}

// Clients returns the number of connections open for sessionID.
func (h *Hub) Clients(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessionIDToClients[sessionID])
}
