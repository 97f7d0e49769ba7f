package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/jordanlanch/salespipe/pkg/logger"
)

// Envelope is the wire frame for every realtime event.
type Envelope struct {
	Event     string      `json:"event"`
	Payload   interface{} `json:"payload"`
	EmittedAt time.Time   `json:"emitted_at"`
}

// Hub tracks connected websocket clients and their room memberships,
// and fans events out to them. Run must be started in its own
// goroutine before clients connect.
type Hub struct {
	log logger.Logger

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	mu    sync.RWMutex
	rooms map[string]map[*Client]bool

	clients map[*Client]bool
}

// NewHub creates a new hub
func NewHub(log logger.Logger) *Hub {
	return &Hub{
		log:        log,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		rooms:      make(map[string]map[*Client]bool),
		clients:    make(map[*Client]bool),
	}
}

// Run processes register, unregister and broadcast requests until the
// process exits.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.log.Info("websocket client connected", "user_id", client.userID)
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				h.leaveAll(client)
				close(client.send)
				h.log.Info("websocket client disconnected", "user_id", client.userID)
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow consumer, drop the connection.
					delete(h.clients, client)
					h.leaveAll(client)
					close(client.send)
				}
			}
		}
	}
}

// Emit broadcasts an event to every connected client.
func (h *Hub) Emit(event string, payload interface{}) {
	frame, err := json.Marshal(Envelope{
		Event:     event,
		Payload:   payload,
		EmittedAt: time.Now().UTC(),
	})
	if err != nil {
		h.log.Error("failed to marshal realtime event", "event", event, "error", err)
		return
	}

	select {
	case h.broadcast <- frame:
	default:
		h.log.Warn("realtime broadcast queue full, dropping event", "event", event)
	}
}

// EmitToRoom sends an event only to clients that joined the given room.
func (h *Hub) EmitToRoom(room, event string, payload interface{}) {
	frame, err := json.Marshal(Envelope{
		Event:     event,
		Payload:   payload,
		EmittedAt: time.Now().UTC(),
	})
	if err != nil {
		h.log.Error("failed to marshal realtime event", "event", event, "error", err)
		return
	}

	h.mu.RLock()
	members := make([]*Client, 0, len(h.rooms[room]))
	for client := range h.rooms[room] {
		members = append(members, client)
	}
	h.mu.RUnlock()

	for _, client := range members {
		select {
		case client.send <- frame:
		default:
		}
	}
}

// join adds a client to a room.
func (h *Hub) join(c *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*Client]bool)
	}
	h.rooms[room][c] = true
}

// leave removes a client from a room.
func (h *Hub) leave(c *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if members, ok := h.rooms[room]; ok {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
}

func (h *Hub) leaveAll(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for room, members := range h.rooms {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
}

// RoomSize reports how many clients joined a room.
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}
