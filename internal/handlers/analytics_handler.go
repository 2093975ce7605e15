package handlers

import (
	"errors"

	"github.com/bolokisan/fieldforce-backend/internal/authctx"
	"github.com/bolokisan/fieldforce-backend/internal/dto"
	"github.com/bolokisan/fieldforce-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
}

func NewAnalyticsHandler(analyticsService *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// TeamStats aggregates activity counts over managerId's subtree, defaulting
// to the requester's own subtree.
func (h *AnalyticsHandler) TeamStats(c *fiber.Ctx) error {
	requesterID, err := authctx.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	managerID := requesterID
	if raw := c.Query("managerId"); raw != "" {
		managerID, err = uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid managerId",
			})
		}
	}

	stats, err := h.analyticsService.TeamStats(managerID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Manager not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to compute team stats",
		})
	}

	return c.JSON(stats)
}
