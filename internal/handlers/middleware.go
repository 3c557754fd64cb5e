package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"github.com/Plauto679/taiico-crm/internal/services"
	"github.com/Plauto679/taiico-crm/internal/utils"
)

// SessionMiddleware guards the protected API group. Requests carry their
// session in the X-Session-ID header.
func SessionMiddleware(authService *services.AuthService) fiber.Handler {
	return func(c fiber.Ctx) error {
		sessionID := c.Get("X-Session-ID")
		if sessionID == "" {
			return c.Status(http.StatusUnauthorized).JSON(
				utils.CreateErrorResponse("UNAUTHORIZED", "Session ID is required"))
		}

		active, err := authService.IsSessionActive(c.Context(), sessionID)
		if err != nil {
			slog.Error("session validation failed", "session_id", sessionID, "error", err)
			return c.Status(http.StatusServiceUnavailable).JSON(
				utils.CreateErrorResponse("CONFIGURATION", "Session store unavailable"))
		}
		if !active {
			return c.Status(http.StatusUnauthorized).JSON(
				utils.CreateErrorResponse("UNAUTHORIZED", "Session expired or invalid"))
		}
		return c.Next()
	}
}
