// FILE: internal/controller/contact_controller.go
package controller

import (
	"errors"

	"portfolio-be/internal/dto"
	"portfolio-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IContactController interface {
	RegisterRoutes(r fiber.Router)
	Send(ctx *fiber.Ctx) error
}

type contactController struct {
	service service.IContactService
}

func NewContactController(service service.IContactService) IContactController {
	return &contactController{service: service}
}

func (c *contactController) RegisterRoutes(r fiber.Router) {
	r.Post("/contact", c.Send)
}

func (c *contactController) Send(ctx *fiber.Ctx) error {
	// configuration is checked before the body is read
	if err := c.service.CheckReady(); err != nil {
		return notConfigured(ctx)
	}

	var req dto.ContactRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.ContactErrorResponse{
			Error: "Invalid request body",
		})
	}

	receipt, err := c.service.Send(ctx.UserContext(), &req, ctx.IP())
	switch {
	case err == nil:
		return ctx.Status(fiber.StatusOK).JSON(dto.ContactSuccessResponse{
			Success: true,
			Message: "Email sent successfully",
			Result:  receipt,
		})
	case errors.Is(err, service.ErrServiceNotConfigured):
		return notConfigured(ctx)
	case errors.Is(err, service.ErrMissingFields):
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.ContactErrorResponse{
			Error: "All fields are required",
		})
	case errors.Is(err, service.ErrTooManyRequests):
		return ctx.Status(fiber.StatusTooManyRequests).JSON(dto.ContactErrorResponse{
			Error:   "Too many requests",
			Details: "Please wait a while before sending another message",
		})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(dto.ContactErrorResponse{
			Error:   "Failed to send email",
			Details: err.Error(),
		})
	}
}

func notConfigured(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusInternalServerError).JSON(dto.ContactErrorResponse{
		Error:   "Email service not configured",
		Details: "Missing required environment variables",
	})
}
