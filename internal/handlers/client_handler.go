package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/Plauto679/taiico-crm/internal/models"
	"github.com/Plauto679/taiico-crm/internal/services"
	"github.com/Plauto679/taiico-crm/internal/utils"
)

type ClientHandler struct {
	clientService *services.ClientService
}

func NewClientHandler(clientService *services.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

func (h *ClientHandler) Register(protected fiber.Router) {
	clientGr := protected.Group("/clients")
	clientGr.Get("/", h.List)
	clientGr.Post("/", h.Add)
	clientGr.Post("/update", h.Update)
	clientGr.Post("/delete", h.Delete)
	clientGr.Get("/search", h.SearchEmail)
}

func (h *ClientHandler) List(c fiber.Ctx) error {
	clients, err := h.clientService.ListClients()
	if err != nil {
		slog.Error("failed to list clients", "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			utils.CreateErrorResponse("RETRIEVAL_FAILED", "Failed to list clients"))
	}
	return c.Status(http.StatusOK).JSON(utils.CreateListResponse("clients", clients, len(clients)))
}

func (h *ClientHandler) Add(c fiber.Ctx) error {
	var req models.Client
	if err := c.Bind().Body(&req); err != nil {
		slog.Error("error parsing request", "error", err)
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_REQUEST", "Invalid request body: "+err.Error()))
	}
	if err := h.clientService.AddClient(req); err != nil {
		slog.Error("failed to add client", "client", req.Name, "error", err)
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("CREATE_FAILED", err.Error()))
	}
	return c.Status(http.StatusCreated).JSON(utils.CreateSuccessResponse(req))
}

func (h *ClientHandler) Update(c fiber.Ctx) error {
	var req models.UpdateClientRequest
	if err := c.Bind().Body(&req); err != nil {
		slog.Error("error parsing request", "error", err)
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_REQUEST", "Invalid request body: "+err.Error()))
	}
	if err := h.clientService.UpdateClient(req.OriginalName, req.Client); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.Status(http.StatusNotFound).JSON(
				utils.CreateErrorResponse("NOT_FOUND", err.Error()))
		}
		slog.Error("failed to update client", "client", req.OriginalName, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			utils.CreateErrorResponse("UPDATE_FAILED", "Failed to update client"))
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(req.Client))
}

func (h *ClientHandler) Delete(c fiber.Ctx) error {
	var req models.DeleteClientRequest
	if err := c.Bind().Body(&req); err != nil {
		slog.Error("error parsing request", "error", err)
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_REQUEST", "Invalid request body: "+err.Error()))
	}
	if err := h.clientService.DeleteClient(req.Name); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.Status(http.StatusNotFound).JSON(
				utils.CreateErrorResponse("NOT_FOUND", err.Error()))
		}
		slog.Error("failed to delete client", "client", req.Name, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			utils.CreateErrorResponse("DELETE_FAILED", "Failed to delete client"))
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse("client deleted"))
}

func (h *ClientHandler) SearchEmail(c fiber.Ctx) error {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_REQUEST", "name is required"))
	}

	email, err := h.clientService.SearchEmail(name)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]any{
				"email": nil,
			}))
		}
		slog.Error("client email search failed", "name", name, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			utils.CreateErrorResponse("RETRIEVAL_FAILED", "Failed to search client"))
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]any{
		"email": email,
	}))
}
