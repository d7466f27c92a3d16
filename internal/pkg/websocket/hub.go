package websocket

import (
	"context"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// EventCollectionChanged is sent after a collection has been written
const EventCollectionChanged = "collection_changed"

// Event is a notification pushed to every connected page
type Event struct {
	Type      string    `json:"type"`
	Key       string    `json:"key"`
	Timestamp time.Time `json:"timestamp"`
}

// Hub maintains the set of active clients and broadcasts events to them
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Events waiting to be broadcast
	broadcast chan *Event

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Closed when Run returns
	done chan struct{}

	// Mutex for concurrent access to clients map
	mu sync.RWMutex

	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan *Event, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		done:       make(chan struct{}),
		logger:     logger.With().Str("component", "websocket").Logger(),
	}
}

// Run handles client registrations and broadcasts until ctx is done,
// then disconnects every client
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case event := <-h.broadcast:
			h.broadcastEvent(event)

		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			return
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true
	h.logger.Info().
		Str("addr", client.conn.RemoteAddr().String()).
		Int("clientCount", len(h.clients)).
		Msg("Client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)

		h.logger.Info().
			Str("addr", client.conn.RemoteAddr().String()).
			Int("clientCount", len(h.clients)).
			Msg("Client unregistered")
	}
}

// broadcastEvent sends the event to every client. Clients whose send buffer
// is full are dropped.
func (h *Hub) broadcastEvent(event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().Err(err).Str("key", event.Key).Msg("Failed to marshal event for broadcast")
		return
	}

	var slow []*Client
	h.mu.RLock()
	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			slow = append(slow, client)
		}
	}
	count := len(h.clients)
	h.mu.RUnlock()

	for _, client := range slow {
		h.unregisterClient(client)
	}

	h.logger.Debug().
		Str("key", event.Key).
		Int("clientCount", count).
		Msg("Event broadcasted")
}

// Publish queues an event without blocking; events are dropped when the queue is full
func (h *Hub) Publish(event *Event) {
	select {
	case h.broadcast <- event:
	default:
		h.logger.Warn().Str("key", event.Key).Msg("Broadcast queue full, event dropped")
	}
}

// CollectionChanged publishes a collection_changed event for key.
// It has the signature of a kvstore change listener.
func (h *Hub) CollectionChanged(key string) {
	h.Publish(&Event{Type: EventCollectionChanged, Key: key, Timestamp: time.Now().UTC()})
}

// ClientsCount returns the number of connected clients
func (h *Hub) ClientsCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
