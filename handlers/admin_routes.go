package handlers

import (
	"fmt"
	"path/filepath"
	"time"

	"badge-rally-system/middleware"
	"badge-rally-system/models"
	"badge-rally-system/services"
	"badge-rally-system/utils"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App, events *services.EventService, artwork *services.ArtworkService) {
	admin := app.Group("/admin", middleware.AdminAuthMiddleware())

	// Upload replacement artwork for a catalog badge → R2, returns CDN URL
	admin.Post("/badges/:id/artwork", func(c *fiber.Ctx) error {
		badgeID := c.Params("id")
		if _, ok := models.LookupBadge(badgeID); !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "unknown badge",
			})
		}

		fileHeader, err := c.FormFile("artwork")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "missing artwork file",
				"cause": err.Error(),
			})
		}

		key := fmt.Sprintf("badges/%s%s", models.NormalizeBadgeCode(badgeID), filepath.Ext(fileHeader.Filename))
		url, err := utils.UploadArtwork(fileHeader, key)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "artwork upload failed",
				"cause": err.Error(),
			})
		}

		if err := artwork.SetArtwork(models.NormalizeBadgeCode(badgeID), url); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to record artwork",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"success": true, "url": url})
	})

	// Schedule a limited-time incentive event
	admin.Post("/events", func(c *fiber.Ctx) error {
		type Req struct {
			Code        string    `json:"code"`
			Title       string    `json:"title"`
			Description string    `json:"description"`
			StartsAt    time.Time `json:"startsAt"`
			EndsAt      time.Time `json:"endsAt"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}
		if req.Code == "" || req.Title == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "code and title are required",
			})
		}
		if !req.EndsAt.After(req.StartsAt) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "endsAt must be after startsAt",
			})
		}

		event, err := events.ScheduleEvent(req.Code, req.Title, req.Description, req.StartsAt, req.EndsAt)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to schedule event",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"success": true, "event": event})
	})
}
