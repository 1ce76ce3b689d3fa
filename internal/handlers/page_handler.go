package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/cv-analyzer/internal/models"
)

func HandleIndex(c *fiber.Ctx) error {
	return c.Render("index", fiber.Map{
		"Title": "CV Analyzer",
	})
}

func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(models.HealthResponse{
		Status: "healthy",
		Time:   time.Now().Format(time.RFC3339),
	})
}
