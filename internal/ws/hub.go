package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/delivra/api/internal/events"
)

// StaffRoom receives every order event.
const StaffRoom = "staff"

// OrderRoom returns the room a customer tracking order code joins.
func OrderRoom(code string) string {
	return "order:" + code
}

// Event represents a WebSocket message to be broadcast
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type roomEvent struct {
	Room  string
	Event Event
}

// Hub maintains the set of active clients and broadcasts messages to them
type Hub struct {
	// Registered clients by room name
	rooms map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan *roomEvent

	// done is closed when Run returns.
	done chan struct{}

	mu sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *roomEvent, 256),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's main loop and returns when ctx is cancelled.
// All remaining clients are disconnected on return.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.mu.Lock()
			if h.rooms[client.room] == nil {
				h.rooms[client.room] = make(map[*Client]bool)
			}
			h.rooms[client.room][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			h.remove(client)
			h.mu.Unlock()

		case event := <-h.broadcast:
			message, err := json.Marshal(event.Event)
			if err != nil {
				continue
			}

			h.mu.Lock()
			for client := range h.rooms[event.Room] {
				select {
				case client.send <- message:
				default:
					// Slow consumer; drop it.
					h.remove(client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// remove must be called with h.mu held.
func (h *Hub) remove(client *Client) {
	clients, ok := h.rooms[client.room]
	if !ok {
		return
	}
	if _, exists := clients[client]; !exists {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.rooms, client.room)
	}
}

// join adds client to its room. It reports false once the hub has stopped.
func (h *Hub) join(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// leave removes client from its room. It is a no-op once the hub has stopped.
func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for room, clients := range h.rooms {
		for client := range clients {
			close(client.send)
		}
		delete(h.rooms, room)
	}
}

// BroadcastToRoom queues an event for every client in room.
func (h *Hub) BroadcastToRoom(ctx context.Context, room string, event Event) error {
	select {
	case h.broadcast <- &roomEvent{Room: room, Event: event}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Notify implements events.Notifier. Staff see every event; the customer
// room for the order sees only that order.
func (h *Hub) Notify(ctx context.Context, e events.OrderEvent) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	event := Event{Type: e.Type, Payload: payload}
	if err := h.BroadcastToRoom(ctx, StaffRoom, event); err != nil {
		return err
	}
	return h.BroadcastToRoom(ctx, OrderRoom(e.Code), event)
}
