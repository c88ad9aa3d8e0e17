package handlers

import (
	"time"

	"badge-rally-system/middleware"
	"badge-rally-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupSessionRoutes(app *fiber.App, sessions *services.SessionService) {
	// "Always register fresh": every POST mints a new, unrelated device
	// identity. No dedup across calls; this is the no-login model.
	app.Post("/session", func(c *fiber.Ctx) error {
		deviceID, token, err := sessions.Issue()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to issue session",
				"cause": err.Error(),
			})
		}

		c.Cookie(&fiber.Cookie{
			Name:     middleware.SessionCookieName,
			Value:    token,
			Path:     "/",
			MaxAge:   int(services.SessionTTL / time.Second),
			HTTPOnly: true,
			SameSite: "Lax",
		})

		return c.JSON(fiber.Map{
			"success":     true,
			"userId":      deviceID,
			"accessToken": token,
		})
	})

	app.Get("/session", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Session endpoint ready"})
	})
}
