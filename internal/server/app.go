// Package server assembles the Fiber application.
package server

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"alfredoptarigan/cv-analyzer/internal/config"
	"alfredoptarigan/cv-analyzer/internal/handlers"
	"alfredoptarigan/cv-analyzer/internal/services"
	"alfredoptarigan/cv-analyzer/internal/views"
)

// multipartOverhead leaves room for form boundaries and headers on top of two
// maximum size files.
const multipartOverhead = 1 << 20

type Deps struct {
	Storage  services.StorageService
	Intake   *services.UploadIntake
	Analyzer services.AnalyzerService
	Gate     services.RequestGate
}

func NewApp(cfg *config.Config, deps Deps, logger *zap.Logger) *fiber.App {
	if logger == nil {
		logger = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		AppName:               "CV Analyzer",
		ReadTimeout:           30 * time.Second,
		BodyLimit:             bodyLimit(cfg.Storage.MaxFileSize),
		ErrorHandler:          errorHandler(logger),
		Views:                 views.New(),
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	uploadHandler := handlers.NewUploadHandler(deps.Intake, deps.Storage, deps.Analyzer, logger)

	app.Get("/", handlers.HandleIndex)
	app.Post("/upload", handlers.RateLimit(deps.Gate, logger), uploadHandler.HandleUpload)

	api := app.Group("/api/v1")
	api.Get("/health", handlers.HandleHealth)

	return app
}

func bodyLimit(maxFileSize int64) int {
	if maxFileSize <= 0 {
		return fiber.DefaultBodyLimit
	}
	return int(2*maxFileSize + multipartOverhead)
}

func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}

		return c.Status(code).JSON(fiber.Map{
			"error": err.Error(),
			"code":  code,
		})
	}
}
