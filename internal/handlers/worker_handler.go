package handlers

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Durgaprasad-Developer/KaamSethu/internal/models"
	"github.com/Durgaprasad-Developer/KaamSethu/internal/repository"
	"github.com/Durgaprasad-Developer/KaamSethu/internal/services"
)

type workerProfileService interface {
	CreateProfile(ctx context.Context, input repository.CreateWorkerInput) (*models.Worker, error)
	GetProfile(ctx context.Context, userID int64) (*models.Worker, error)
	GetByID(ctx context.Context, workerID int64) (*models.Worker, error)
	UpdateProfile(ctx context.Context, userID int64, input repository.UpdateWorkerInput) (*models.Worker, error)
	SetActive(ctx context.Context, userID int64, active bool) error
}

type workerMatcher interface {
	Match(ctx context.Context, query services.MatchQuery, poolLimit int) ([]models.RankedWorker, error)
}

type WorkerHandler struct {
	service workerProfileService
	matcher workerMatcher
}

func NewWorkerHandler(service *services.WorkerService, matcher *services.MatchingService) *WorkerHandler {
	return &WorkerHandler{service: service, matcher: matcher}
}

type createWorkerRequest struct {
	Name       string    `json:"name"`
	Skill      string    `json:"skill"`
	Experience *string   `json:"experience"`
	Location   string    `json:"location"`
	Latitude   *float64  `json:"latitude"`
	Longitude  *float64  `json:"longitude"`
	Languages  *[]string `json:"languages"`
	Bio        *string   `json:"bio"`
	HourlyRate *int      `json:"hourly_rate"`
	DailyRate  *int      `json:"daily_rate"`
}

type updateWorkerRequest struct {
	Name         *string   `json:"name"`
	Skill        *string   `json:"skill"`
	Experience   *string   `json:"experience"`
	Location     *string   `json:"location"`
	Latitude     *float64  `json:"latitude"`
	Longitude    *float64  `json:"longitude"`
	Languages    *[]string `json:"languages"`
	Bio          *string   `json:"bio"`
	ProfilePhoto *string   `json:"profile_photo"`
	HourlyRate   *int      `json:"hourly_rate"`
	DailyRate    *int      `json:"daily_rate"`
	Availability *string   `json:"availability"`
}

type setActiveRequest struct {
	IsActive bool `json:"is_active"`
}

func (h *WorkerHandler) CreateProfile(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != "worker" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseActorUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req createWorkerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Skill) == "" || strings.TrimSpace(req.Location) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name, skill and location are required"})
	}

	var languages []string
	if req.Languages != nil {
		languages = *req.Languages
	}

	worker, err := h.service.CreateProfile(c.Context(), repository.CreateWorkerInput{
		UserID:     userID,
		Name:       strings.TrimSpace(req.Name),
		Skill:      strings.TrimSpace(req.Skill),
		Experience: req.Experience,
		Location:   strings.TrimSpace(req.Location),
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		Languages:  languages,
		Bio:        req.Bio,
		HourlyRate: req.HourlyRate,
		DailyRate:  req.DailyRate,
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"worker": worker})
}

func (h *WorkerHandler) GetMyProfile(c *fiber.Ctx) error {
	userID, err := parseActorUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	worker, err := h.service.GetProfile(c.Context(), userID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"worker": worker})
}

func (h *WorkerHandler) GetWorker(c *fiber.Ctx) error {
	workerID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid worker id"})
	}

	worker, err := h.service.GetByID(c.Context(), workerID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"worker": worker})
}

func (h *WorkerHandler) UpdateMyProfile(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != "worker" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseActorUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req updateWorkerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	worker, err := h.service.UpdateProfile(c.Context(), userID, repository.UpdateWorkerInput{
		Name:         req.Name,
		Skill:        req.Skill,
		Experience:   req.Experience,
		Location:     req.Location,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Languages:    req.Languages,
		Bio:          req.Bio,
		ProfilePhoto: req.ProfilePhoto,
		HourlyRate:   req.HourlyRate,
		DailyRate:    req.DailyRate,
		Availability: req.Availability,
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"worker": worker})
}

func (h *WorkerHandler) SetActive(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != "worker" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseActorUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req setActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := h.service.SetActive(c.Context(), userID, req.IsActive); err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"is_active": req.IsActive})
}

// SearchWorkers runs the matching pipeline for an employer: skill is
// required, location, budget and coordinates narrow the result.
func (h *WorkerHandler) SearchWorkers(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != "employer" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	budget, err := parseOptionalInt(c.Query("budget"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "budget must be a valid non-negative integer"})
	}
	lat, err := parseOptionalFloat(c.Query("lat"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "lat must be a valid number"})
	}
	lng, err := parseOptionalFloat(c.Query("lng"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "lng must be a valid number"})
	}
	limit := parsePositiveInt(c.Query("limit"), defaultSearchLimit)
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	workers, err := h.matcher.Match(c.Context(), services.MatchQuery{
		Skill:        strings.TrimSpace(c.Query("skill")),
		Location:     strings.TrimSpace(c.Query("location")),
		Budget:       budget,
		RequesterLat: lat,
		RequesterLng: lng,
	}, limit)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"workers": workers, "count": len(workers)})
}
