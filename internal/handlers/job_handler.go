package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Durgaprasad-Developer/KaamSethu/internal/models"
	"github.com/Durgaprasad-Developer/KaamSethu/internal/repository"
	"github.com/Durgaprasad-Developer/KaamSethu/internal/services"
)

type jobService interface {
	PostJob(ctx context.Context, employerUserID int64, input repository.CreateJobInput) (*models.Job, error)
	GetJob(ctx context.Context, jobID int64) (*models.Job, error)
	SearchOpenJobs(ctx context.Context, skill string, limit int) ([]models.Job, error)
	ListForEmployer(ctx context.Context, employerUserID int64) ([]models.Job, error)
	UpdateStatus(ctx context.Context, employerUserID, jobID int64, nextStatus string) (*models.Job, error)
}

type JobHandler struct {
	service jobService
}

func NewJobHandler(service *services.JobService) *JobHandler {
	return &JobHandler{service: service}
}

type postJobRequest struct {
	Title       string   `json:"title"`
	Skill       string   `json:"skill"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Budget      int      `json:"budget"`
	BudgetType  string   `json:"budget_type"`
	StartDate   *string  `json:"start_date"`
	Duration    *string  `json:"duration"`
	Urgent      bool     `json:"urgent"`
}

type updateJobStatusRequest struct {
	Status string `json:"status"`
}

func (h *JobHandler) PostJob(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != "employer" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseActorUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req postJobRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	var startDate *time.Time
	if req.StartDate != nil && strings.TrimSpace(*req.StartDate) != "" {
		parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(*req.StartDate))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "start_date must be a valid RFC3339 timestamp"})
		}
		startDate = &parsed
	}

	job, err := h.service.PostJob(c.Context(), userID, repository.CreateJobInput{
		Title:       strings.TrimSpace(req.Title),
		Skill:       strings.TrimSpace(req.Skill),
		Description: strings.TrimSpace(req.Description),
		Location:    strings.TrimSpace(req.Location),
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Budget:      req.Budget,
		BudgetType:  strings.TrimSpace(req.BudgetType),
		StartDate:   startDate,
		Duration:    req.Duration,
		Urgent:      req.Urgent,
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"job": job})
}

func (h *JobHandler) GetJob(c *fiber.Ctx) error {
	jobID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid job id"})
	}

	job, err := h.service.GetJob(c.Context(), jobID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"job": job})
}

func (h *JobHandler) SearchJobs(c *fiber.Ctx) error {
	limit := parsePositiveInt(c.Query("limit"), defaultSearchLimit)
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	jobs, err := h.service.SearchOpenJobs(c.Context(), c.Query("skill"), limit)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"jobs": jobs, "count": len(jobs)})
}

func (h *JobHandler) ListMyJobs(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != "employer" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseActorUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	jobs, err := h.service.ListForEmployer(c.Context(), userID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"jobs": jobs})
}

func (h *JobHandler) UpdateStatus(c *fiber.Ctx) error {
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

	var req updateJobStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	status := strings.TrimSpace(req.Status)
	if status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "status is required"})
	}

	job, err := h.service.UpdateStatus(c.Context(), userID, jobID, status)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"job": job})
}
