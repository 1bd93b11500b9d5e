package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/Durgaprasad-Developer/KaamSethu/internal/models"
	"github.com/Durgaprasad-Developer/KaamSethu/internal/services"
)

type reviewService interface {
	CreateReview(ctx context.Context, reviewerID int64, input services.CreateReviewInput) (*models.Review, error)
	ListForUser(ctx context.Context, revieweeID int64) ([]models.Review, error)
	Summary(ctx context.Context, revieweeID int64) (models.RatingSummary, error)
}

type ReviewHandler struct {
	service reviewService
}

func NewReviewHandler(service *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

type createReviewRequest struct {
	JobID      int64    `json:"job_id"`
	RevieweeID int64    `json:"reviewee_id"`
	Rating     int      `json:"rating"`
	Comment    *string  `json:"comment"`
	Badges     []string `json:"badges"`
}

func (h *ReviewHandler) CreateReview(c *fiber.Ctx) error {
	userID, err := parseActorUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req createReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.JobID <= 0 || req.RevieweeID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "job_id and reviewee_id are required"})
	}

	review, err := h.service.CreateReview(c.Context(), userID, services.CreateReviewInput{
		JobID:      req.JobID,
		RevieweeID: req.RevieweeID,
		Rating:     req.Rating,
		Comment:    req.Comment,
		Badges:     req.Badges,
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"review": review})
}

func (h *ReviewHandler) ListForUser(c *fiber.Ctx) error {
	revieweeID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	reviews, err := h.service.ListForUser(c.Context(), revieweeID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"reviews": reviews})
}

func (h *ReviewHandler) RatingSummary(c *fiber.Ctx) error {
	revieweeID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	summary, err := h.service.Summary(c.Context(), revieweeID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"rating": summary})
}
