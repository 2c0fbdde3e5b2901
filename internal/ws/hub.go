// Package ws pushes change notifications to open pages. The browser holds
// one socket per page and re-renders the task list whenever a "changed"
// event arrives, so every session sees writes from every other session.
package ws

import (
	"sync"
)

var changedEvent = []byte(`{"type":"changed"}`)

type Hub struct {
	mu      sync.Mutex
	clients map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

// NotifyChanged tells every connected page that the task list changed.
func (h *Hub) NotifyChanged() {
	h.broadcast(changedEvent)
}

func (h *Hub) broadcast(msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			// Slow client: drop it rather than block everyone else.
			delete(h.clients, c)
			close(c.send)
		}
	}
}

func (h *Hub) add(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) clientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
