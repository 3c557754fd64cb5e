package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/Plauto679/taiico-crm/internal/models"
	"github.com/Plauto679/taiico-crm/internal/services"
	"github.com/Plauto679/taiico-crm/internal/utils"
)

type RenewalHandler struct {
	renewalService *services.RenewalService
	notifyService  *services.NotifyService
}

func NewRenewalHandler(renewalService *services.RenewalService, notifyService *services.NotifyService) *RenewalHandler {
	return &RenewalHandler{
		renewalService: renewalService,
		notifyService:  notifyService,
	}
}

func (h *RenewalHandler) Register(protected fiber.Router) {
	renewalGr := protected.Group("/renewals")
	renewalGr.Get("/upcoming", h.GetUpcoming)
	renewalGr.Put("/status", h.UpdateStatus)
	renewalGr.Post("/notify", h.Notify)
}

func (h *RenewalHandler) GetUpcoming(c fiber.Ctx) error {
	carrier := models.Carrier(strings.ToUpper(c.Query("carrier")))
	if carrier == "ALL" {
		carrier = ""
	}
	line := models.ProductLine(strings.ToUpper(c.Query("line")))
	if line == "ALL" {
		line = ""
	}
	start := c.Query("start")
	end := c.Query("end")
	days, err := strconv.Atoi(c.Query("days", "30"))
	if err != nil || days < 0 {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_REQUEST", "days must be a non-negative integer"))
	}

	records, err := h.renewalService.UpcomingAcross(carrier, line, start, end, days)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.Status(http.StatusNotFound).JSON(
				utils.CreateErrorResponse("NOT_FOUND", err.Error()))
		}
		slog.Error("failed to load upcoming renewals", "carrier", carrier, "line", line, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			utils.CreateErrorResponse("RETRIEVAL_FAILED", "Failed to load upcoming renewals"))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateListResponse("renewals", records, len(records)))
}

func (h *RenewalHandler) UpdateStatus(c fiber.Ctx) error {
	var req models.UpdateRenewalRequest
	if err := c.Bind().Body(&req); err != nil {
		slog.Error("error parsing request", "error", err)
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_REQUEST", "Invalid request body: "+err.Error()))
	}
	if strings.TrimSpace(req.PolicyNumber) == "" {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_REQUEST", "policy_number is required"))
	}
	if req.RenewalStatus == nil && req.CaseFile == nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_REQUEST", "nothing to update"))
	}

	if err := h.renewalService.UpdateRenewal(req); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.Status(http.StatusNotFound).JSON(
				utils.CreateErrorResponse("NOT_FOUND", err.Error()))
		}
		slog.Error("renewal update failed", "policy_number", req.PolicyNumber, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			utils.CreateErrorResponse("UPDATE_FAILED", "Failed to update renewal"))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse("renewal updated"))
}

func (h *RenewalHandler) Notify(c fiber.Ctx) error {
	var req models.NotifyRenewalRequest
	if err := c.Bind().Body(&req); err != nil {
		slog.Error("error parsing request", "error", err)
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_REQUEST", "Invalid request body: "+err.Error()))
	}
	if strings.TrimSpace(req.PolicyNumber) == "" || strings.TrimSpace(req.ClientName) == "" {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_REQUEST", "policy_number and client_name are required"))
	}

	result, err := h.notifyService.SendRenewalNotice(c.Context(), req)
	if err != nil {
		if errors.Is(err, models.ErrInvalid) {
			return c.Status(http.StatusBadRequest).JSON(
				utils.CreateErrorResponse("INVALID_REQUEST", err.Error()))
		}
		if errors.Is(err, models.ErrNotFound) {
			return c.Status(http.StatusNotFound).JSON(
				utils.CreateErrorResponse("NO_ADDRESS", err.Error()))
		}
		if errors.Is(err, models.ErrConfiguration) {
			return c.Status(http.StatusServiceUnavailable).JSON(
				utils.CreateErrorResponse("CONFIGURATION", "Outbound mail is not configured"))
		}
		slog.Error("renewal notice failed", "policy_number", req.PolicyNumber, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			utils.CreateErrorResponse("SEND_FAILED", "Failed to send renewal notice"))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(result))
}
