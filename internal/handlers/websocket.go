package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"tribute-portal/internal/backend"
	"tribute-portal/internal/middleware"
	"tribute-portal/internal/models"
	ws "tribute-portal/internal/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	Backend *backend.Client
	Hub     *ws.Hub
}

func NewWebSocketHandler(b *backend.Client, hub *ws.Hub) *WebSocketHandler {
	return &WebSocketHandler{Backend: b, Hub: hub}
}

// ServeWs subscribes the caller to one topic, e.g. ticket:12 or tribute:7.
func (h *WebSocketHandler) ServeWs(c *gin.Context) {
	topic := c.Param("topic")
	if !ws.ValidTopic(topic) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid topic"})
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if kind, id, _ := strings.Cut(topic, ":"); kind == "ticket" && !h.canWatchTicket(c, userID, id) {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Warn("failed to upgrade to websocket", "error", err)
		return
	}

	client := &ws.Client{
		Hub:    h.Hub,
		Conn:   conn,
		Send:   make(chan []byte, 256),
		Topic:  topic,
		UserID: userID,
	}

	if !h.Hub.Subscribe(client) {
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))
		conn.Close()
		return
	}

	go h.writePump(client)
	go h.readPump(client)
}

// canWatchTicket lets ticket updates reach only the ticket's owner and
// admins. The upstream is asked with the caller's own token.
func (h *WebSocketHandler) canWatchTicket(c *gin.Context, userID int64, rawID string) bool {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid topic"})
		return false
	}
	t, err := h.Backend.Ticket(upstreamCtx(c), id)
	if err != nil {
		respondError(c, "Could not fetch ticket", err)
		return false
	}
	if t.UserID != userID && middleware.Role(c) != models.RoleAdmin {
		slog.Warn("ticket subscription denied", "ticket_id", id, "user_id", userID)
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your ticket"})
		return false
	}
	return true
}

func (h *WebSocketHandler) writePump(client *ws.Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.Send:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump only watches for the peer going away; clients never send.
func (h *WebSocketHandler) readPump(client *ws.Client) {
	defer func() {
		client.Hub.Unsubscribe(client)
		client.Conn.Close()
	}()

	client.Conn.SetReadLimit(512)
	client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	client.Conn.SetPongHandler(func(string) error {
		return client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Warn("websocket read error", "topic", client.Topic, "error", err)
			}
			break
		}
	}
}
