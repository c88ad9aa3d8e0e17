package handlers

import (
	"errors"

	"badge-rally-system/middleware"
	"badge-rally-system/models"
	"badge-rally-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupBadgeRoutes(app *fiber.App, sessions *services.SessionService, claims *services.ClaimService, achievements *services.AchievementService, events *services.EventService) {
	// 🔓 Public routes: static catalog and active incentive events
	app.Get("/catalog", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"badges": models.BadgeCatalog})
	})

	app.Get("/events", func(c *fiber.Ctx) error {
		active, err := events.ActiveEvents()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load events",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"events": active})
	})

	// 🔐 Secured routes carry the device-session gate per route; the
	// admin surface and unmatched paths are not behind it.
	session := middleware.SessionMiddleware(sessions)

	app.Post("/badges/claim", session, func(c *fiber.Ctx) error {
		deviceID := c.Locals("device_id").(string)

		type Req struct {
			BadgeID string `json:"badgeId"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}
		if req.BadgeID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "missing badgeId",
			})
		}

		result, err := claims.ClaimBadge(deviceID, req.BadgeID)
		if err != nil {
			if errors.Is(err, services.ErrUnknownBadge) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "unknown badge",
					"cause": err.Error(),
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "claim failed",
				"cause": err.Error(),
			})
		}

		response := fiber.Map{
			"success":      true,
			"isNew":        result.IsNew,
			"totalClaimed": result.TotalClaimed,
		}
		if result.Badge != nil {
			response["badge"] = result.Badge
		}
		return c.JSON(response)
	})

	app.Get("/badges", session, func(c *fiber.Ctx) error {
		deviceID := c.Locals("device_id").(string)

		profile, err := claims.GetProfile(deviceID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "profile load failed",
				"cause": err.Error(),
			})
		}
		return c.JSON(profile)
	})

	app.Delete("/badges", session, func(c *fiber.Ctx) error {
		deviceID := c.Locals("device_id").(string)

		if err := claims.ResetClaims(deviceID); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "reset failed",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"success": true})
	})

	app.Post("/battle-reward", session, func(c *fiber.Ctx) error {
		deviceID := c.Locals("device_id").(string)

		type Req struct {
			EXP int64 `json:"exp"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}
		if req.EXP <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid EXP amount",
			})
		}

		granted, total, err := claims.AddBattleEXP(deviceID, req.EXP)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to update EXP",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"success":   true,
			"gainedExp": granted,
			"totalExp":  total,
		})
	})

	app.Post("/avatar", session, func(c *fiber.Ctx) error {
		deviceID := c.Locals("device_id").(string)

		type Req struct {
			AvatarID int `json:"avatarId"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}
		if req.AvatarID < 1 || req.AvatarID > 4 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid avatar id",
			})
		}

		if err := claims.SetAvatar(deviceID, req.AvatarID); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to update avatar",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"success": true})
	})

	app.Get("/avatar", session, func(c *fiber.Ctx) error {
		deviceID := c.Locals("device_id").(string)

		avatarID, err := claims.GetAvatar(deviceID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load avatar",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"avatarId": avatarID})
	})

	app.Get("/achievements", session, func(c *fiber.Ctx) error {
		deviceID := c.Locals("device_id").(string)

		list, err := achievements.ListForUser(deviceID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load achievements",
				"cause": err.Error(),
			})
		}
		if list == nil {
			list = []models.Achievement{}
		}
		return c.JSON(fiber.Map{"achievements": list})
	})
}
