package handlers

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Durgaprasad-Developer/KaamSethu/internal/models"
	"github.com/Durgaprasad-Developer/KaamSethu/internal/repository"
	"github.com/Durgaprasad-Developer/KaamSethu/internal/services"
)

type employerProfileService interface {
	CreateProfile(ctx context.Context, input repository.CreateEmployerInput) (*models.Employer, error)
	GetProfile(ctx context.Context, userID int64) (*models.Employer, error)
	GetByID(ctx context.Context, employerID int64) (*models.Employer, error)
}

type EmployerHandler struct {
	service employerProfileService
}

func NewEmployerHandler(service *services.EmployerService) *EmployerHandler {
	return &EmployerHandler{service: service}
}

type createEmployerRequest struct {
	Name        string   `json:"name"`
	CompanyName *string  `json:"company_name"`
	Location    string   `json:"location"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

func (h *EmployerHandler) CreateProfile(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != "employer" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseActorUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req createEmployerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Location) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name and location are required"})
	}

	employer, err := h.service.CreateProfile(c.Context(), repository.CreateEmployerInput{
		UserID:      userID,
		Name:        strings.TrimSpace(req.Name),
		CompanyName: req.CompanyName,
		Location:    strings.TrimSpace(req.Location),
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"employer": employer})
}

func (h *EmployerHandler) GetMyProfile(c *fiber.Ctx) error {
	userID, err := parseActorUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	employer, err := h.service.GetProfile(c.Context(), userID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"employer": employer})
}

func (h *EmployerHandler) GetEmployer(c *fiber.Ctx) error {
	employerID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid employer id"})
	}

	employer, err := h.service.GetByID(c.Context(), employerID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"employer": employer})
}
