package handlers

import (
	"github.com/bolokisan/fieldforce-backend/internal/dto"
	"github.com/bolokisan/fieldforce-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	hierarchy *services.HierarchyService
}

func NewAdminHandler(hierarchy *services.HierarchyService) *AdminHandler {
	return &AdminHandler{hierarchy: hierarchy}
}

// CleanupOrphans removes users whose manager no longer exists, along with
// their subtrees. RBM-only (route gate).
func (h *AdminHandler) CleanupOrphans(c *fiber.Ctx) error {
	found, deleted, err := h.hierarchy.CleanupOrphans(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to clean up orphaned users",
		})
	}

	return c.JSON(dto.CleanupOrphansResponse{
		Message:      "Orphan cleanup complete",
		OrphansFound: found,
		DeletedCount: deleted,
	})
}
