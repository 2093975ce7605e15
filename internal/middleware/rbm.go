package middleware

import (
	"github.com/bolokisan/fieldforce-backend/internal/authctx"
	"github.com/bolokisan/fieldforce-backend/internal/dto"
	"github.com/bolokisan/fieldforce-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RBMOnly gates a route to active RBM users. The role is re-read from the
// database on every request rather than trusted from the token, since the
// hierarchy can change between requests.
func RBMOnly(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := authctx.GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		if user.Role != models.RoleRBM || !user.Active {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "RBM access required",
			})
		}

		return c.Next()
	}
}
