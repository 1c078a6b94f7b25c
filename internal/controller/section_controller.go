package controller

import (
	"portfolio-be/internal/dto"
	"portfolio-be/internal/pkg/serverutils"
	"portfolio-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISectionController interface {
	RegisterRoutes(r fiber.Router)
	Active(ctx *fiber.Ctx) error
}

type sectionController struct {
	service service.ISectionService
}

func NewSectionController(service service.ISectionService) ISectionController {
	return &sectionController{service: service}
}

func (c *sectionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/sections")
	h.Post("/active", c.Active)
}

func (c *sectionController) Active(ctx *fiber.Ctx) error {
	var req dto.ActiveSectionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Active section computed", c.service.Active(&req)))
}
