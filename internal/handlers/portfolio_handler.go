package handlers

import (
	"errors"

	"github.com/bolokisan/fieldforce-backend/internal/authctx"
	"github.com/bolokisan/fieldforce-backend/internal/dto"
	"github.com/bolokisan/fieldforce-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type PortfolioHandler struct {
	portfolioService *services.PortfolioService
}

func NewPortfolioHandler(portfolioService *services.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService}
}

func (h *PortfolioHandler) List(c *fiber.Ctx) error {
	portfolios, err := h.portfolioService.List(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list portfolios",
		})
	}
	return c.JSON(dto.ListPortfoliosResponse{Portfolios: portfolios})
}

func (h *PortfolioHandler) Create(c *fiber.Ctx) error {
	creatorID, err := authctx.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreatePortfolioRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	portfolio, err := h.portfolioService.Create(creatorID, &req)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create portfolio",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"portfolio": portfolio})
}

func (h *PortfolioHandler) Update(c *fiber.Ctx) error {
	portfolioID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid portfolio ID",
		})
	}

	var req dto.UpdatePortfolioRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	portfolio, err := h.portfolioService.Update(c.UserContext(), portfolioID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPortfolioNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Portfolio not found",
			})
		case errors.Is(err, services.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update portfolio",
		})
	}

	return c.JSON(fiber.Map{"portfolio": portfolio})
}

func (h *PortfolioHandler) Delete(c *fiber.Ctx) error {
	portfolioID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid portfolio ID",
		})
	}

	if err := h.portfolioService.Delete(c.UserContext(), portfolioID); err != nil {
		if errors.Is(err, services.ErrPortfolioNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Portfolio not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete portfolio",
		})
	}

	return c.JSON(dto.MessageResponse{Message: "Portfolio deleted"})
}
