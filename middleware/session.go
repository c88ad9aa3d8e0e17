package middleware

import (
	"log"
	"strings"

	"badge-rally-system/services"

	"github.com/gofiber/fiber/v2"
)

// SessionCookieName is where the signed device credential lives on the
// client. HTTP-only, one-year max-age, set by the session handler.
const SessionCookieName = "auth_token"

// SessionMiddleware gates every state-changing route. It verifies the
// presented credential and loads the device identity into c.Locals.
// All failure modes produce the same uniform 401; callers never learn
// whether the token was missing, expired or forged.
func SessionMiddleware(sessions *services.SessionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(SessionCookieName)
		if token == "" {
			// NFC-launched PWAs occasionally strip cookies; accept the
			// same credential as a bearer token.
			auth := c.Get("Authorization")
			token = strings.TrimPrefix(auth, "Bearer ")
			if token == auth {
				token = ""
			}
		}

		deviceID, ok := sessions.Verify(token)
		if !ok {
			log.Printf("🚫 [SESSION] Unauthenticated request to %s", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthorized",
			})
		}

		c.Locals("device_id", deviceID)
		return c.Next()
	}
}
