package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"github.com/Plauto679/taiico-crm/internal/models"
	"github.com/Plauto679/taiico-crm/internal/services"
	"github.com/Plauto679/taiico-crm/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(app *fiber.App) {
	authGr := app.Group("/crm/auth")
	authGr.Post("/login", h.Login)
	authGr.Post("/logout", h.Logout)
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.Bind().Body(&req); err != nil {
		slog.Error("error parsing request", "error", err)
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_REQUEST", "Invalid request body: "+err.Error()))
	}

	session, err := h.authService.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrUnauthorized) {
			return c.Status(http.StatusUnauthorized).JSON(
				utils.CreateErrorResponse("UNAUTHORIZED", "Invalid username or password"))
		}
		if errors.Is(err, models.ErrConfiguration) {
			return c.Status(http.StatusServiceUnavailable).JSON(
				utils.CreateErrorResponse("CONFIGURATION", "Session store unavailable"))
		}
		slog.Error("login failed", "username", req.Username, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			utils.CreateErrorResponse("LOGIN_FAILED", "Failed to log in"))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]any{
		"session_id": session.ID,
		"expires_at": session.ExpiresAt,
	}))
}

func (h *AuthHandler) Logout(c fiber.Ctx) error {
	sessionID := c.Get("X-Session-ID")
	if sessionID == "" {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_REQUEST", "Session ID is required"))
	}
	if err := h.authService.Logout(c.Context(), sessionID); err != nil {
		slog.Error("logout failed", "session_id", sessionID, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			utils.CreateErrorResponse("LOGOUT_FAILED", "Failed to log out"))
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse("logged out"))
}
