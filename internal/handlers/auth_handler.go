package handlers

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Durgaprasad-Developer/KaamSethu/internal/models"
	"github.com/Durgaprasad-Developer/KaamSethu/internal/services"
)

type authService interface {
	RequestOTP(ctx context.Context, phone string) error
	VerifyOTP(ctx context.Context, phone, code, userType string) (*models.User, string, error)
	Me(ctx context.Context, userID int64) (*services.Account, error)
}

type AuthHandler struct {
	service authService
}

func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

type requestOTPRequest struct {
	Phone string `json:"phone"`
}

type verifyOTPRequest struct {
	Phone    string `json:"phone"`
	Code     string `json:"code"`
	UserType string `json:"user_type"`
}

func (h *AuthHandler) RequestOTP(c *fiber.Ctx) error {
	var req requestOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := h.service.RequestOTP(c.Context(), strings.TrimSpace(req.Phone)); err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "OTP sent"})
}

func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req verifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	user, token, err := h.service.VerifyOTP(
		c.Context(),
		strings.TrimSpace(req.Phone),
		strings.TrimSpace(req.Code),
		strings.TrimSpace(req.UserType),
	)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"user": user, "token": token})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, err := parseActorUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	account, err := h.service.Me(c.Context(), userID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(account)
}
