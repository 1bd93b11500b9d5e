package handlers

import (
	"context"
	"errors"
	"strings"

	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/Durgaprasad-Developer/KaamSethu/internal/models"
	"github.com/Durgaprasad-Developer/KaamSethu/internal/services"
	chatws "github.com/Durgaprasad-Developer/KaamSethu/internal/websocket"
	"github.com/Durgaprasad-Developer/KaamSethu/pkg/utils"
)

type messageService interface {
	Send(ctx context.Context, senderID int64, input services.SendMessageInput) (*models.Message, error)
	History(ctx context.Context, userID, otherUserID int64, limit int) ([]models.Message, error)
	MarkConversationRead(ctx context.Context, userID, otherUserID int64) error
}

type MessageHandler struct {
	service   messageService
	hub       *chatws.Hub
	jwtSecret string
}

func NewMessageHandler(service *services.MessageService, hub *chatws.Hub, jwtSecret string) *MessageHandler {
	return &MessageHandler{service: service, hub: hub, jwtSecret: jwtSecret}
}

type sendMessageRequest struct {
	ReceiverID int64  `json:"receiver_id"`
	JobID      *int64 `json:"job_id"`
	Content    string `json:"content"`
}

func (h *MessageHandler) SendMessage(c *fiber.Ctx) error {
	userID, err := parseActorUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req sendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.ReceiverID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "receiver_id is required"})
	}

	message, err := h.service.Send(c.Context(), userID, services.SendMessageInput{
		ReceiverID: req.ReceiverID,
		JobID:      req.JobID,
		Content:    req.Content,
	})
	if err != nil {
		return mapServiceError(c, err)
	}

	h.hub.Broadcast(message)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": message})
}

func (h *MessageHandler) GetConversation(c *fiber.Ctx) error {
	userID, err := parseActorUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	otherUserID, err := parseIDParam(c, "userId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	limit := parsePositiveInt(c.Query("limit"), maxPageLimit)

	messages, err := h.service.History(c.Context(), userID, otherUserID, limit)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"messages": messages})
}

func (h *MessageHandler) MarkConversationRead(c *fiber.Ctx) error {
	userID, err := parseActorUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	otherUserID, err := parseIDParam(c, "userId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	if err := h.service.MarkConversationRead(c.Context(), userID, otherUserID); err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Conversation marked as read"})
}

func (h *MessageHandler) WebSocketAuth(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return c.Status(fiber.StatusUpgradeRequired).JSON(fiber.Map{"error": "WebSocket upgrade required"})
	}

	claims, err := h.parseWSClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
	}

	c.Locals("user_id", claims.UserID)
	c.Locals("role", claims.Role)
	return c.Next()
}

func (h *MessageHandler) HandleWebSocket(conn *websocket.Conn) {
	userID, _ := conn.Locals("user_id").(string)
	client := chatws.NewClient(h.hub, conn, userID)

	h.hub.Register(client)
	go client.WritePump()
	client.ReadPump(h.service)
}

func (h *MessageHandler) parseWSClaims(c *fiber.Ctx) (*utils.Claims, error) {
	tokenString := strings.TrimSpace(c.Query("token"))
	if tokenString == "" {
		authHeader := strings.TrimSpace(c.Get("Authorization"))
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}
	}

	if tokenString == "" {
		return nil, errors.New("missing token")
	}

	return utils.ValidateToken(tokenString, h.jwtSecret)
}
