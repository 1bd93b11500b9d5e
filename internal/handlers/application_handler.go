package handlers

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Durgaprasad-Developer/KaamSethu/internal/models"
	"github.com/Durgaprasad-Developer/KaamSethu/internal/services"
)

type applicationService interface {
	Apply(ctx context.Context, workerUserID int64, input services.ApplyInput) (*models.Application, error)
	Respond(ctx context.Context, employerUserID, applicationID int64, accept bool) (*models.Application, error)
	Withdraw(ctx context.Context, workerUserID, applicationID int64) (*models.Application, error)
	ListForWorker(ctx context.Context, workerUserID int64) ([]models.Application, error)
	ListForJob(ctx context.Context, employerUserID, jobID int64) ([]models.Application, error)
}

type ApplicationHandler struct {
	service applicationService
}

func NewApplicationHandler(service *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

type applyRequest struct {
	JobID        int64   `json:"job_id"`
	Message      *string `json:"message"`
	ProposedRate *int    `json:"proposed_rate"`
}

type respondRequest struct {
	Action string `json:"action"`
}

func (h *ApplicationHandler) Apply(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != "worker" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseActorUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req applyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.JobID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "job_id is required"})
	}

	application, err := h.service.Apply(c.Context(), userID, services.ApplyInput{
		JobID:        req.JobID,
		Message:      req.Message,
		ProposedRate: req.ProposedRate,
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"application": application})
}

func (h *ApplicationHandler) Respond(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != "employer" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseActorUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	applicationID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid application id"})
	}

	var req respondRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	action := strings.TrimSpace(req.Action)
	if action != "accept" && action != "reject" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "action must be accept or reject"})
	}

	application, err := h.service.Respond(c.Context(), userID, applicationID, action == "accept")
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"application": application})
}

func (h *ApplicationHandler) Withdraw(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != "worker" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseActorUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	applicationID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid application id"})
	}

	application, err := h.service.Withdraw(c.Context(), userID, applicationID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"application": application})
}

func (h *ApplicationHandler) ListMine(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != "worker" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseActorUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	applications, err := h.service.ListForWorker(c.Context(), userID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"applications": applications})
}

func (h *ApplicationHandler) ListForJob(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != "employer" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseActorUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	jobID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid job id"})
	}

	applications, err := h.service.ListForJob(c.Context(), userID, jobID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"applications": applications})
}
