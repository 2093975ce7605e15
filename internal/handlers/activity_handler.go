package handlers

import (
	"errors"

	"github.com/bolokisan/fieldforce-backend/internal/authctx"
	"github.com/bolokisan/fieldforce-backend/internal/dto"
	"github.com/bolokisan/fieldforce-backend/internal/models"
	"github.com/bolokisan/fieldforce-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ActivityHandler struct {
	activityService *services.ActivityService
	userService     *services.UserService
}

func NewActivityHandler(activityService *services.ActivityService, userService *services.UserService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService, userService: userService}
}

func (h *ActivityHandler) Create(c *fiber.Ctx) error {
	requester, err := h.requester(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	activity, err := h.activityService.Create(requester, &req)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create activity",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"activity": activity})
}

// List serves three shapes of query: own activities (default), one user's
// activities (?userId=), or the whole subtree (?scope=team).
func (h *ActivityHandler) List(c *fiber.Ctx) error {
	requester, err := h.requester(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var targetID *uuid.UUID
	if raw := c.Query("userId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid userId",
			})
		}
		targetID = &id
	}

	activities, err := h.activityService.List(c.UserContext(), requester, c.Query("scope"), targetID)
	if err != nil {
		if errors.Is(err, services.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list activities",
		})
	}

	return c.JSON(dto.ListActivitiesResponse{Activities: activities})
}

func (h *ActivityHandler) Update(c *fiber.Ctx) error {
	activityID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid activity ID",
		})
	}

	var req dto.UpdateActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	activity, err := h.activityService.Update(activityID, &req)
	if err != nil {
		if errors.Is(err, services.ErrActivityNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Activity not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update activity",
		})
	}

	return c.JSON(fiber.Map{"activity": activity})
}

func (h *ActivityHandler) Delete(c *fiber.Ctx) error {
	activityID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid activity ID",
		})
	}

	if err := h.activityService.Delete(activityID); err != nil {
		if errors.Is(err, services.ErrActivityNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Activity not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete activity",
		})
	}

	return c.JSON(dto.MessageResponse{Message: "Activity deleted"})
}

func (h *ActivityHandler) requester(c *fiber.Ctx) (*models.User, error) {
	userID, err := authctx.GetUserID(c)
	if err != nil {
		return nil, err
	}
	return h.userService.Get(userID)
}
