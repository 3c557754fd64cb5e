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

type CollectionHandler struct {
	collectionService *services.CollectionService
}

func NewCollectionHandler(collectionService *services.CollectionService) *CollectionHandler {
	return &CollectionHandler{collectionService: collectionService}
}

func (h *CollectionHandler) Register(protected fiber.Router) {
	protected.Get("/collections", h.GetCollections)
}

func (h *CollectionHandler) GetCollections(c fiber.Ctx) error {
	carrier := models.Carrier(strings.ToUpper(c.Query("carrier", string(models.CarrierMetlife))))
	line := models.ProductLine(strings.ToUpper(c.Query("line", string(models.LineLife))))

	rows, err := h.collectionService.Collections(carrier, line)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.Status(http.StatusNotFound).JSON(
				utils.CreateErrorResponse("NOT_FOUND", err.Error()))
		}
		slog.Error("failed to load collections", "carrier", carrier, "line", line, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			utils.CreateErrorResponse("RETRIEVAL_FAILED", "Failed to load collections"))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateListResponse("collections", rows, len(rows)))
}
