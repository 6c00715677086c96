package socket

import (
	"encoding/json"
	"log"
	"sync"

	"alumnilink_server/services"
)

// Hub tracks connected clients by user and bridges the edge-event bus to
// them. The first session of a user opens one bus subscription, fanned out
// to every session through SendToUser; the last unregister cancels it. A
// client's send channel is never closed, so a forwarder mid-delivery can
// never hit a closed channel; writers use non-blocking sends and pumps shut
// down through Client.done instead.
type Hub struct {
	mu        sync.RWMutex
	bus       *services.EdgeEventBus
	userConns map[string]map[*Client]bool
	cancels   map[string]func()
}

// Message is the envelope sent to clients.
type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

func NewHub(bus *services.EdgeEventBus) *Hub {
	return &Hub{
		bus:       bus,
		userConns: make(map[string]map[*Client]bool),
		cancels:   make(map[string]func()),
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	if h.userConns[c.UserID] == nil {
		h.userConns[c.UserID] = make(map[*Client]bool)
		events, cancel := h.bus.Subscribe(c.UserID)
		h.cancels[c.UserID] = cancel
		go h.forward(c.UserID, events)
	}
	h.userConns[c.UserID][c] = true
	h.mu.Unlock()
	log.Printf("✅ Socket connected for user %s", c.UserID)
}

func (h *Hub) unregister(c *Client) {
	var cancel func()
	h.mu.Lock()
	if conns := h.userConns[c.UserID]; conns[c] {
		delete(conns, c)
		if len(conns) == 0 {
			delete(h.userConns, c.UserID)
			cancel = h.cancels[c.UserID]
			delete(h.cancels, c.UserID)
		}
	}
	h.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	log.Printf("Socket disconnected for user %s", c.UserID)
}

// forward drains one user's bus subscription into SendToUser. It exits when
// the last unregister for the user cancels the subscription; events still
// buffered at that point fan out to an empty registry and are dropped.
func (h *Hub) forward(userID string, events <-chan services.EdgeEvent) {
	for event := range events {
		h.SendToUser(userID, &Message{Event: "edgeUpdate", Data: event})
	}
}

// SendToUser delivers a message to every open connection of userID. Slow
// connections are dropped rather than allowed to block the sender.
func (h *Hub) SendToUser(userID string, msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	h.mu.RLock()
	clients := make([]*Client, 0, len(h.userConns[userID]))
	for client := range h.userConns[userID] {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		select {
		case client.send <- data:
		default:
			h.unregister(client)
		}
	}
}
