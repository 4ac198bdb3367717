package live

import (
	"sync"

	"github.com/gorilla/websocket"
)

// subscriber serializes writes to one connection; gorilla/websocket
// does not allow concurrent writers.
type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *subscriber) send(msg any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(msg)
}

// Hub tracks websocket subscribers per event and pushes slot-state
// changes to them after each committed mutation.
type Hub struct {
	mutex sync.RWMutex
	subs  map[int64]map[*websocket.Conn]*subscriber
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[int64]map[*websocket.Conn]*subscriber),
	}
}

func (h *Hub) Subscribe(eventID int64, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if h.subs[eventID] == nil {
		h.subs[eventID] = make(map[*websocket.Conn]*subscriber)
	}
	h.subs[eventID][conn] = &subscriber{conn: conn}
}

func (h *Hub) Unsubscribe(eventID int64, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if conns, ok := h.subs[eventID]; ok {
		_ = conn.Close()
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.subs, eventID)
		}
	}
}

func (h *Hub) BroadcastToEvent(eventID int64, msg any) {
	h.mutex.RLock()
	targets := make([]*subscriber, 0, len(h.subs[eventID]))
	for _, sub := range h.subs[eventID] {
		targets = append(targets, sub)
	}
	h.mutex.RUnlock()

	for _, sub := range targets {
		if err := sub.send(msg); err != nil {
			h.Unsubscribe(eventID, sub.conn)
		}
	}
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for eventID, conns := range h.subs {
		for conn := range conns {
			_ = conn.Close()
		}
		delete(h.subs, eventID)
	}
}
