package chatws

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"time"

	"github.com/Durgaprasad-Developer/KaamSethu/internal/models"
	"github.com/Durgaprasad-Developer/KaamSethu/internal/services"
	"github.com/gofiber/contrib/websocket"
)

type Hub struct {
	clients    map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Message
}

type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	userID string
	send   chan []byte
}

type sender interface {
	Send(ctx context.Context, senderID int64, input services.SendMessageInput) (*models.Message, error)
}

type Message struct {
	Type       string `json:"type"`
	SenderID   string `json:"sender_id"`
	ReceiverID string `json:"receiver_id,omitempty"`
	JobID      string `json:"job_id,omitempty"`
	Content    string `json:"content"`
	Timestamp  string `json:"timestamp"`
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message, 64),
	}
}

func NewClient(hub *Hub, conn *websocket.Conn, userID string) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		userID: userID,
		send:   make(chan []byte, 32),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			set, ok := h.clients[client.userID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.userID] = set
			}
			set[client] = struct{}{}
		case client := <-h.unregister:
			set, ok := h.clients[client.userID]
			if !ok {
				continue
			}
			if _, exists := set[client]; exists {
				delete(set, client)
				close(client.send)
			}
			if len(set) == 0 {
				delete(h.clients, client.userID)
			}
		case message := <-h.broadcast:
			h.deliver(message)
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Broadcast pushes a stored message to both sides of the conversation. Used
// by the HTTP send path so REST-sent messages still reach live sockets.
func (h *Hub) Broadcast(message *models.Message) {
	h.broadcast <- wireMessage(message)
}

func (h *Hub) deliver(message *Message) {
	encoded, err := json.Marshal(message)
	if err != nil {
		log.Printf("chat hub encode message: %v", err)
		return
	}

	h.sendToUser(message.SenderID, encoded)
	if message.ReceiverID != "" && message.ReceiverID != message.SenderID {
		h.sendToUser(message.ReceiverID, encoded)
	}
}

func (h *Hub) sendToUser(userID string, payload []byte) {
	set, ok := h.clients[userID]
	if !ok {
		return
	}

	for client := range set {
		select {
		case client.send <- payload:
		default:
			delete(set, client)
			close(client.send)
		}
	}
	if len(set) == 0 {
		delete(h.clients, userID)
	}
}

func wireMessage(message *models.Message) *Message {
	wire := &Message{
		Type:       "message",
		SenderID:   strconv.FormatInt(message.SenderID, 10),
		ReceiverID: strconv.FormatInt(message.ReceiverID, 10),
		Content:    message.Content,
		Timestamp:  message.CreatedAt.UTC().Format(time.RFC3339),
	}
	if message.JobID != nil {
		wire.JobID = strconv.FormatInt(*message.JobID, 10)
	}
	return wire
}

func (c *Client) ReadPump(service sender) {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	actorID, err := strconv.ParseInt(c.userID, 10, 64)
	if err != nil {
		writeError(c, "invalid user")
		return
	}

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var incoming struct {
			Type       string `json:"type"`
			ReceiverID string `json:"receiver_id"`
			JobID      string `json:"job_id"`
			Content    string `json:"content"`
		}
		if err := json.Unmarshal(payload, &incoming); err != nil {
			writeError(c, "invalid message payload")
			continue
		}
		if incoming.Type != "message" {
			writeError(c, "unsupported message type")
			continue
		}

		receiverID, err := strconv.ParseInt(incoming.ReceiverID, 10, 64)
		if err != nil || receiverID <= 0 {
			writeError(c, "invalid receiver id")
			continue
		}
		var jobID *int64
		if incoming.JobID != "" {
			parsed, err := strconv.ParseInt(incoming.JobID, 10, 64)
			if err != nil || parsed <= 0 {
				writeError(c, "invalid job id")
				continue
			}
			jobID = &parsed
		}

		message, err := service.Send(context.Background(), actorID, services.SendMessageInput{
			ReceiverID: receiverID,
			JobID:      jobID,
			Content:    incoming.Content,
		})
		if err != nil {
			writeError(c, "failed to send message")
			continue
		}

		c.hub.broadcast <- wireMessage(message)
	}
}

func (c *Client) WritePump() {
	defer func() {
		_ = c.conn.Close()
	}()

	for payload := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}

func writeError(client *Client, message string) {
	payload, err := json.Marshal(Message{
		Type:      "error",
		Content:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	select {
	case client.send <- payload:
	default:
		client.hub.Unregister(client)
	}
}
