package websocket

import (
	"sync"

	"github.com/rs/zerolog/log"
)

type UnicastMessage struct {
	UserID  string
	Message []byte
}

// Hub tracks live connections per user and fans messages out to them. The
// client set is owned by the Run goroutine.
type Hub struct {
	clients map[*Client]bool

	unicast    chan UnicastMessage
	register   chan *Client
	unregister chan *Client

	stop     chan struct{}
	stopOnce sync.Once
}

func NewHub() *Hub {
	return &Hub{
		unicast:    make(chan UnicastMessage),
		register:   make(chan *Client),
		unregister: make(chan *Client),

		clients: make(map[*Client]bool),
		stop:    make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			log.Debug().Str("user_id", client.userID).Int("clients", len(h.clients)).Msg("websocket client registered")
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				log.Debug().Str("user_id", client.userID).Msg("websocket client unregistered")
			}
		case msg := <-h.unicast:
			for client := range h.clients {
				if client.userID != msg.UserID {
					continue
				}
				select {
				case client.send <- msg.Message:
				default:
					// slow consumer
					close(client.send)
					delete(h.clients, client)
				}
			}
		case <-h.stop:
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			return
		}
	}
}

// SendToUser delivers message to every live connection of userID. It is a
// no-op once the hub is stopped.
func (h *Hub) SendToUser(userID string, message []byte) {
	select {
	case h.unicast <- UnicastMessage{UserID: userID, Message: message}:
	case <-h.stop:
	}
}

func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.stop)
	})
}

func (h *Hub) add(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.stop:
		return false
	}
}

func (h *Hub) remove(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.stop:
	}
}
