package handlers

import (
	"errors"
	"fmt"
	"log"

	"sparks/internal/models"
	"sparks/internal/repositories"
	"sparks/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProfileHandler handles HTTP requests for public profiles.
type ProfileHandler struct {
	service  *services.ProfileService
	validate *validator.Validate
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(service *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the profile routes with the Fiber app.
func (h *ProfileHandler) RegisterRoutes(router fiber.Router) {
	profileRoutes := router.Group("/profiles")
	profileRoutes.Get("/me", h.HandleGetMyProfile)
	profileRoutes.Post("/", h.HandleCreateProfile)
	profileRoutes.Patch("/me", h.HandleUpdateProfile)
}

// HandleGetMyProfile returns the caller's profile, or 404 when onboarding
// has not completed yet.
func (h *ProfileHandler) HandleGetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	profile, err := h.service.Get(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Profile not found",
			})
		}
		log.Printf("Error getting profile for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve profile",
			"error":   err.Error(),
		})
	}
	return c.JSON(profile)
}

// ProfileRequest represents the request body for creating or updating a
// profile.
type ProfileRequest struct {
	Username string        `json:"username" validate:"required,min=3,max=20"`
	Avatar   models.Avatar `json:"avatar" validate:"required,oneof=Sparkles Zap Heart Star Smile Sun Moon Cloud Coffee Flame Gem Crown"`
}

// HandleCreateProfile creates the caller's profile (onboarding completion).
func (h *ProfileHandler) HandleCreateProfile(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req, errResp := h.parseProfileRequest(c)
	if errResp != nil {
		return errResp
	}

	profile, err := h.service.Create(userID, req.Username, req.Avatar)
	if err != nil {
		return h.profileError(c, userID, err)
	}
	return c.Status(fiber.StatusCreated).JSON(profile)
}

// HandleUpdateProfile updates the caller's username and/or avatar.
func (h *ProfileHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req, errResp := h.parseProfileRequest(c)
	if errResp != nil {
		return errResp
	}

	profile, err := h.service.Update(userID, req.Username, req.Avatar)
	if err != nil {
		return h.profileError(c, userID, err)
	}
	return c.JSON(profile)
}

func (h *ProfileHandler) parseProfileRequest(c *fiber.Ctx) (*ProfileRequest, error) {
	var req ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing profile request body: %v", err)
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}
	return &req, nil
}

func (h *ProfileHandler) profileError(c *fiber.Ctx, userID string, err error) error {
	if errors.Is(err, services.ErrUsernameTaken) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Username conflict",
			"error":   err.Error(),
		})
	}
	if errors.Is(err, repositories.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Profile not found",
			"error":   err.Error(),
		})
	}
	log.Printf("Error saving profile for user %s: %v", userID, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Could not save profile",
		"error":   err.Error(),
	})
}
