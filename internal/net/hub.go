package net

import (
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub is run by the HOST. It upgrades incoming viewers to WebSocket,
// keeps the set of live connections, and broadcasts messages to them.
type Hub struct {
	mu       sync.Mutex
	conns    map[*websocket.Conn]bool
	upgrader websocket.Upgrader

	// OnMessage is invoked for every message a viewer sends. The sender
	// connection is passed so the handler can relay to everyone else.
	OnMessage func(msg Message, sender *websocket.Conn)
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		conns: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			// LAN sessions are joined by link or mDNS, not from browsers.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// ListenAndServe serves the WebSocket endpoint at /ws until the
// listener fails.
func (h *Hub) ListenAndServe(port int) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.ServeWS)
	log.Printf("[NET] host listening on port %d", port)
	return http.ListenAndServe(fmt.Sprintf(":%d", port), mux)
}

// ServeWS upgrades one HTTP request and pumps its messages until the
// viewer disconnects.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[NET] upgrade failed: %v", err)
		return
	}
	h.add(conn)
	defer h.remove(conn)
	defer conn.Close()

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			log.Printf("[NET] viewer %s disconnected: %v", conn.RemoteAddr(), err)
			return
		}
		if h.OnMessage != nil {
			h.OnMessage(msg, conn)
		}
	}
}

// Broadcast sends msg to every connected viewer except exclude. Pass a
// nil exclude to reach everyone.
func (h *Hub) Broadcast(msg Message, exclude *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		if conn == exclude {
			continue
		}
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("[NET] send to %s failed: %v", conn.RemoteAddr(), err)
		}
	}
}

// Count returns the number of connected viewers.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

func (h *Hub) add(conn *websocket.Conn) {
	h.mu.Lock()
	h.conns[conn] = true
	h.mu.Unlock()
	log.Printf("[NET] viewer connected from %s", conn.RemoteAddr())
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
	log.Printf("[NET] viewer removed: %s", conn.RemoteAddr())
}
