package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/Durgaprasad-Developer/KaamSethu/internal/models"
	"github.com/Durgaprasad-Developer/KaamSethu/internal/services"
)

type walletService interface {
	CreatePayment(ctx context.Context, employerUserID int64, input services.CreatePaymentInput) (*models.Payment, error)
	ReleasePayment(ctx context.Context, employerUserID, paymentID int64) (*models.Payment, error)
	RefundPayment(ctx context.Context, employerUserID, paymentID int64) (*models.Payment, error)
	Withdraw(ctx context.Context, userID int64, amount int) (*models.Wallet, error)
	GetWallet(ctx context.Context, userID int64) (*models.Wallet, error)
	ListTransactions(ctx context.Context, userID int64, limit int) ([]models.WalletTransaction, error)
	GetPayment(ctx context.Context, userID, paymentID int64) (*models.Payment, error)
}

type WalletHandler struct {
	service walletService
}

func NewWalletHandler(service *services.WalletService) *WalletHandler {
	return &WalletHandler{service: service}
}

type createPaymentRequest struct {
	JobID         int64   `json:"job_id"`
	Amount        int     `json:"amount"`
	PaymentMethod *string `json:"payment_method"`
	Notes         *string `json:"notes"`
}

func (h *WalletHandler) GetMyWallet(c *fiber.Ctx) error {
	userID, err := parseActorUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	wallet, err := h.service.GetWallet(c.Context(), userID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"wallet": wallet})
}

func (h *WalletHandler) ListTransactions(c *fiber.Ctx) error {
	userID, err := parseActorUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	limit := parsePositiveInt(c.Query("limit"), defaultPageLimit)
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	transactions, err := h.service.ListTransactions(c.Context(), userID, limit)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"transactions": transactions})
}

type withdrawRequest struct {
	Amount int `json:"amount"`
}

func (h *WalletHandler) Withdraw(c *fiber.Ctx) error {
	userID, err := parseActorUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req withdrawRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	wallet, err := h.service.Withdraw(c.Context(), userID, req.Amount)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"wallet": wallet})
}

func (h *WalletHandler) CreatePayment(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != "employer" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseActorUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req createPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.JobID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "job_id is required"})
	}

	payment, err := h.service.CreatePayment(c.Context(), userID, services.CreatePaymentInput{
		JobID:         req.JobID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"payment": payment})
}

func (h *WalletHandler) ReleasePayment(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != "employer" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseActorUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	paymentID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payment id"})
	}

	payment, err := h.service.ReleasePayment(c.Context(), userID, paymentID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"payment": payment})
}

func (h *WalletHandler) RefundPayment(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != "employer" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseActorUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	paymentID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payment id"})
	}

	payment, err := h.service.RefundPayment(c.Context(), userID, paymentID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"payment": payment})
}

func (h *WalletHandler) GetPayment(c *fiber.Ctx) error {
	userID, err := parseActorUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	paymentID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payment id"})
	}

	payment, err := h.service.GetPayment(c.Context(), userID, paymentID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"payment": payment})
}
