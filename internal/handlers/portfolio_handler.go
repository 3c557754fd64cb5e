package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/Plauto679/taiico-crm/internal/services"
	"github.com/Plauto679/taiico-crm/internal/utils"
)

type PortfolioHandler struct {
	portfolioService *services.PortfolioService
}

func NewPortfolioHandler(portfolioService *services.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService}
}

func (h *PortfolioHandler) Register(protected fiber.Router) {
	protected.Get("/portfolio/search", h.Search)
}

func (h *PortfolioHandler) Search(c fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_REQUEST", "query is required"))
	}

	rows, err := h.portfolioService.Search(query)
	if err != nil {
		slog.Error("portfolio search failed", "query", query, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			utils.CreateErrorResponse("RETRIEVAL_FAILED", "Failed to search portfolio"))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateListResponse("results", rows, len(rows)))
}
