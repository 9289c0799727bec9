package notify

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"asset-management-backend/internal/logger"
)

// MessageRefresh tells clients to refetch the listed collections
const MessageRefresh = "REFRESH"

// RefreshMessage is the only message the hub sends
type RefreshMessage struct {
	Type        string    `json:"type"`
	Collections []string  `json:"collections"`
	At          time.Time `json:"at"`
}

// Hub maintains the set of connected clients and fans refresh messages out to them
type Hub struct {
	clients map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}

	allowedOrigins []string

	// Guards clients for ClientCount
	mu sync.RWMutex
}

// NewHub creates a new Hub. Browser connections are accepted from allowedOrigins;
// "*" accepts any origin.
func NewHub(allowedOrigins []string) *Hub {
	return &Hub{
		clients:        make(map[*Client]struct{}),
		register:       make(chan *Client),
		unregister:     make(chan *Client),
		broadcast:      make(chan []byte, 64),
		done:           make(chan struct{}),
		allowedOrigins: allowedOrigins,
	}
}

// Run starts the hub's main loop and returns when ctx is done
func (h *Hub) Run(ctx context.Context) {
	log := logger.New().WithField("component", "notify")
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = struct{}{}
			h.mu.Unlock()
			log.WithField("client_id", client.id).Debug("Client connected")

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				log.WithField("client_id", client.id).Debug("Client disconnected")
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow consumer; it reconnects and refetches
					delete(h.clients, client)
					close(client.send)
					log.WithField("client_id", client.id).Warn("Dropping slow client")
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish queues a refresh notification for every connected client. It never blocks:
// when the queue is full the notification is dropped. A nil hub publishes nothing.
func (h *Hub) Publish(collections ...string) {
	if h == nil || len(collections) == 0 {
		return
	}
	message, err := json.Marshal(RefreshMessage{
		Type:        MessageRefresh,
		Collections: collections,
		At:          time.Now().UTC(),
	})
	if err != nil {
		logger.New().WithError(err).Error("Failed to encode refresh message")
		return
	}

	select {
	case h.broadcast <- message:
	default:
		logger.New().WithField("collections", collections).Warn("Refresh queue full, notification dropped")
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) originAllowed(origin string) bool {
	if origin == "" {
		return true
	}
	for _, allowed := range h.allowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}
