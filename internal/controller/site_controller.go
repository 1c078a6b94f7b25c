package controller

import (
	"time"

	"portfolio-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISiteController interface {
	RegisterRoutes(app fiber.Router, api fiber.Router)
}

type siteController struct {
	service service.ISiteService
}

func NewSiteController(service service.ISiteService) ISiteController {
	return &siteController{service: service}
}

// RegisterRoutes mounts the crawler files at the site root and the health
// check under the api group.
func (c *siteController) RegisterRoutes(app fiber.Router, api fiber.Router) {
	app.Get("/robots.txt", c.Robots)
	app.Get("/sitemap.xml", c.Sitemap)
	api.Get("/health", c.Health)
}

func (c *siteController) Robots(ctx *fiber.Ctx) error {
	ctx.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return ctx.SendString(c.service.RobotsTxt())
}

func (c *siteController) Sitemap(ctx *fiber.Ctx) error {
	out, err := c.service.SitemapXML(time.Now())
	if err != nil {
		return err
	}
	ctx.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	return ctx.Send(out)
}

func (c *siteController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"status": "ok"})
}
