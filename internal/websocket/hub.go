package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/gorilla/websocket"
)

type Client struct {
	Hub    *Hub
	Conn   *websocket.Conn
	Send   chan []byte
	Topic  string
	UserID int64
}

// Notification is pushed to every client subscribed to Topic.
type Notification struct {
	Topic   string    `json:"topic"`
	Event   string    `json:"event"`
	Payload any       `json:"payload"`
	SentAt  time.Time `json:"sent_at"`
}

const (
	EventTicketResponse   = "ticket.response"
	EventTicketClosed     = "ticket.closed"
	EventDonationReceived = "donation.received"
)

var topicPattern = regexp.MustCompile(`^(ticket|tribute):[0-9]+$`)

func Topic(kind string, id int64) string {
	return fmt.Sprintf("%s:%d", kind, id)
}

func ValidTopic(topic string) bool {
	return topicPattern.MatchString(topic)
}

type Hub struct {
	Clients    map[string]map[*Client]bool
	Register   chan *Client
	Unregister chan *Client
	Broadcast  chan Notification

	done chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[string]map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Broadcast:  make(chan Notification, 256),
		done:       make(chan struct{}),
	}
}

// Publish queues a notification. It never blocks the caller; when the queue
// is full the notification is dropped.
func (h *Hub) Publish(topic, event string, payload any) {
	n := Notification{Topic: topic, Event: event, Payload: payload, SentAt: time.Now().UTC()}
	select {
	case h.Broadcast <- n:
	default:
		slog.Warn("websocket broadcast queue full, dropping notification", "topic", topic, "event", event)
	}
}

// Done is closed once Run has returned.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// Subscribe registers client. It reports false, without blocking, when the
// hub has stopped.
func (h *Hub) Subscribe(client *Client) bool {
	select {
	case h.Register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Unsubscribe removes client; a no-op once the hub has stopped.
func (h *Hub) Unsubscribe(client *Client) {
	select {
	case h.Unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for topic, clients := range h.Clients {
				for client := range clients {
					close(client.Send)
				}
				delete(h.Clients, topic)
			}
			return

		case client := <-h.Register:
			if h.Clients[client.Topic] == nil {
				h.Clients[client.Topic] = make(map[*Client]bool)
			}
			h.Clients[client.Topic][client] = true
			slog.Debug("websocket client registered", "topic", client.Topic, "user_id", client.UserID)

		case client := <-h.Unregister:
			h.remove(client)

		case n := <-h.Broadcast:
			clients := h.Clients[n.Topic]
			if len(clients) == 0 {
				continue
			}
			jsonData, err := json.Marshal(n)
			if err != nil {
				slog.Error("failed to marshal notification", "topic", n.Topic, "error", err)
				continue
			}
			for client := range clients {
				select {
				case client.Send <- jsonData:
				default:
					slog.Warn("websocket client too slow, dropping", "topic", n.Topic, "user_id", client.UserID)
					h.remove(client)
				}
			}
		}
	}
}

func (h *Hub) remove(client *Client) {
	clients, ok := h.Clients[client.Topic]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.Send)
	if len(clients) == 0 {
		delete(h.Clients, client.Topic)
	}
	slog.Debug("websocket client unregistered", "topic", client.Topic, "user_id", client.UserID)
}
