package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/Durgaprasad-Developer/KaamSethu/internal/models"
	"github.com/Durgaprasad-Developer/KaamSethu/internal/services"
)

type verificationService interface {
	Get(ctx context.Context, userID int64) (*models.Verification, error)
	Update(ctx context.Context, userID int64, input services.UpdateVerificationInput) (*models.Verification, error)
}

type VerificationHandler struct {
	service verificationService
}

func NewVerificationHandler(service *services.VerificationService) *VerificationHandler {
	return &VerificationHandler{service: service}
}

type updateVerificationRequest struct {
	AadhaarVerified *bool   `json:"aadhaar_verified"`
	UPIVerified     *bool   `json:"upi_verified"`
	NGOVerified     *bool   `json:"ngo_verified"`
	UPIID           *string `json:"upi_id"`
}

func (h *VerificationHandler) GetMyVerification(c *fiber.Ctx) error {
	userID, err := parseActorUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	verification, err := h.service.Get(c.Context(), userID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"verification": verification})
}

func (h *VerificationHandler) UpdateMyVerification(c *fiber.Ctx) error {
	userID, err := parseActorUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req updateVerificationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	verification, err := h.service.Update(c.Context(), userID, services.UpdateVerificationInput{
		AadhaarVerified: req.AadhaarVerified,
		UPIVerified:     req.UPIVerified,
		NGOVerified:     req.NGOVerified,
		UPIID:           req.UPIID,
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"verification": verification})
}
