package handlers

import (
	"errors"
	"log"
	"time"

	"sparks/internal/repositories"
	"sparks/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// SparkHandler handles HTTP requests for sparks and bookmarks.
type SparkHandler struct {
	service  *services.SparkService
	validate *validator.Validate
	now      func() time.Time
}

// NewSparkHandler creates a new SparkHandler.
func NewSparkHandler(service *services.SparkService) *SparkHandler {
	return &SparkHandler{
		service:  service,
		validate: validator.New(),
		now:      time.Now,
	}
}

// RegisterRoutes registers the spark routes with the Fiber app.
func (h *SparkHandler) RegisterRoutes(router fiber.Router) {
	sparkRoutes := router.Group("/sparks")
	sparkRoutes.Get("/today", h.HandleTodayFeed)
	sparkRoutes.Get("/mine", h.HandleMySparks)
	sparkRoutes.Post("/", h.HandleSubmitDaily)
	sparkRoutes.Post("/:id/save", h.HandleSave)
	sparkRoutes.Delete("/:id/save", h.HandleUnsave)
}

// HandleTodayFeed returns today's sparks merged with the caller's saved set.
func (h *SparkHandler) HandleTodayFeed(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	feed, err := h.service.Feed(userID, h.now())
	if err != nil {
		log.Printf("Error assembling feed for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve today's sparks",
			"error":   err.Error(),
		})
	}
	return c.JSON(feed)
}

// HandleMySparks returns the caller's sparks across all days.
func (h *SparkHandler) HandleMySparks(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	sparks, err := h.service.SparksByUser(userID)
	if err != nil {
		log.Printf("Error getting sparks for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve sparks",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"sparks": sparks,
		"count":  len(sparks),
	})
}

// SubmitSparkRequest represents the request body for a daily submission.
type SubmitSparkRequest struct {
	Content string `json:"content" validate:"required,max=280"`
}

// HandleSubmitDaily posts or revises the caller's spark for today.
func (h *SparkHandler) HandleSubmitDaily(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var req SubmitSparkRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing spark request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	spark, err := h.service.SubmitDaily(userID, req.Content, h.now())
	if err != nil {
		if errors.Is(err, services.ErrEmptyContent) || errors.Is(err, services.ErrContentTooLong) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid spark content",
				"error":   err.Error(),
			})
		}
		log.Printf("Error submitting spark for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not submit spark",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(spark)
}

// HandleSave bookmarks a spark for the caller.
func (h *SparkHandler) HandleSave(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	sparkID := c.Params("id")

	if err := h.service.Save(userID, sparkID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Spark not found",
				"error":   err.Error(),
			})
		}
		log.Printf("Error saving spark %s for user %s: %v", sparkID, userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not save spark",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "Spark saved"})
}

// HandleUnsave removes a bookmark.
func (h *SparkHandler) HandleUnsave(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	sparkID := c.Params("id")

	if err := h.service.Unsave(userID, sparkID); err != nil {
		log.Printf("Error unsaving spark %s for user %s: %v", sparkID, userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not unsave spark",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "Spark unsaved"})
}
