package handlers

import (
	"errors"

	"github.com/bolokisan/fieldforce-backend/internal/dto"
	"github.com/bolokisan/fieldforce-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type YouTubeHandler struct {
	youtubeService *services.YouTubeService
}

func NewYouTubeHandler(youtubeService *services.YouTubeService) *YouTubeHandler {
	return &YouTubeHandler{youtubeService: youtubeService}
}

func (h *YouTubeHandler) Videos(c *fiber.Ctx) error {
	resp, err := h.youtubeService.Videos(c.UserContext(), c.Query("q"), c.Query("pageToken"))
	if err != nil {
		if errors.Is(err, services.ErrYouTubeNotConfigured) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch videos",
		})
	}

	return c.JSON(resp)
}
