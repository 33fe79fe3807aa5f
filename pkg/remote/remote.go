// Package remote broadcasts the viewer's live orientation over
// WebSocket. Companion tools subscribe and receive a JSON state message
// whenever the view changes; nothing is ever persisted.
package remote

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// State is one view snapshot pushed to subscribers.
type State struct {
	RotX  float64 `json:"rotX"`
	RotY  float64 `json:"rotY"`
	Scale float64 `json:"scale"`
}

// Hub tracks subscribed WebSocket clients and fans view states out to
// them. Broadcast may be called from the event loop while clients join
// on HTTP-server goroutines, so the client set is mutex-guarded.
type Hub struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]bool
	last    State
	haveAny bool
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]bool),
	}
}

// Broadcast sends s to every connected client. Clients that fail to
// accept the write are dropped.
func (h *Hub) Broadcast(s State) {
	data, err := json.Marshal(s)
	if err != nil {
		log.Printf("remote: marshal state: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = s
	h.haveAny = true
	for c := range h.clients {
		if err := c.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("remote: write error: %v", err)
			c.Close()
			delete(h.clients, c)
		}
	}
}

// ServeHTTP upgrades the request to a WebSocket subscription. The
// current state, if any, is sent immediately so late subscribers start
// in sync.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("remote: upgrade error: %v", err)
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	s, have := h.last, h.haveAny
	h.mu.Unlock()

	if have {
		data, _ := json.Marshal(s)
		conn.WriteMessage(websocket.TextMessage, data)
	}

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
		conn.Close()
	}()

	// Drain client messages until the connection drops.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// ListenAndServe serves the hub at /ws on addr. It blocks.
func (h *Hub) ListenAndServe(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", h)
	log.Printf("remote: listening on %s", addr)
	return http.ListenAndServe(addr, mux)
}
