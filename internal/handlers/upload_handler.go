package handlers

import (
	"errors"
	"io"

	"github.com/bolokisan/fieldforce-backend/internal/authctx"
	"github.com/bolokisan/fieldforce-backend/internal/dto"
	"github.com/bolokisan/fieldforce-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type UploadHandler struct {
	mediaService *services.MediaService
}

func NewUploadHandler(mediaService *services.MediaService) *UploadHandler {
	return &UploadHandler{mediaService: mediaService}
}

// Presign hands out a time-limited PUT URL. The client uploads directly to
// object storage and then attaches the returned key to its record.
func (h *UploadHandler) Presign(c *fiber.Ctx) error {
	userID, err := authctx.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.PresignRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	resp, err := h.mediaService.IssueUploadTarget(c.UserContext(), userID, req.Filename)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create upload URL",
		})
	}

	return c.JSON(resp)
}

// Image streams a stored object through the API so that clients never need
// storage credentials. The wildcard path is the object key.
func (h *UploadHandler) Image(c *fiber.Ctx) error {
	key := c.Params("*")
	if key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Missing image key",
		})
	}

	obj, err := h.mediaService.Open(c.UserContext(), key)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Image not found",
		})
	}
	defer obj.Body.Close()

	data, err := io.ReadAll(obj.Body)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to read image",
		})
	}

	if obj.ContentType != "" {
		c.Set(fiber.HeaderContentType, obj.ContentType)
	}
	c.Set(fiber.HeaderCacheControl, "private, max-age=3600")
	return c.Send(data)
}
