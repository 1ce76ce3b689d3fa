package handlers

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/cv-analyzer/internal/models"
	"alfredoptarigan/cv-analyzer/internal/services"
)

const failurePrefix = "Error processing your request: "

type UploadHandler struct {
	intake   *services.UploadIntake
	storage  services.StorageService
	analyzer services.AnalyzerService
	logger   *zap.Logger
}

func NewUploadHandler(
	intake *services.UploadIntake,
	storage services.StorageService,
	analyzer services.AnalyzerService,
	logger *zap.Logger,
) *UploadHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UploadHandler{
		intake:   intake,
		storage:  storage,
		analyzer: analyzer,
		logger:   logger,
	}
}

// HandleUpload accepts the jd and cv PDFs, runs the analysis and renders the
// result page. Files stored for the request are deleted before it returns,
// whatever the outcome.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	artifacts := services.NewArtifacts(h.storage, h.logger)
	defer artifacts.Release()

	var form *multipart.Form
	if parsed, err := c.MultipartForm(); err != nil {
		h.logger.Debug("failed to parse multipart form", zap.Error(err))
	} else {
		form = parsed
	}

	pair, err := h.intake.Accept(form, artifacts)
	if err != nil {
		if status := services.StatusCodeOf(err); status < fiber.StatusInternalServerError {
			return c.Status(status).SendString(err.Error())
		}
		return h.renderFailure(c, err)
	}

	resp, err := h.analyzer.Analyze(c.UserContext(), models.AnalyzeRequest{
		JDPath: pair.JobDescription.FilePath,
		CVPath: pair.Resume.FilePath,
	})
	if err != nil {
		return h.renderFailure(c, err)
	}

	return c.Render("result", fiber.Map{
		"Title":  "Analysis Result",
		"Result": resp.Analysis,
	})
}

func (h *UploadHandler) renderFailure(c *fiber.Ctx, err error) error {
	h.logger.Error("analysis failed",
		zap.String("error_kind", string(services.KindOf(err))),
		zap.Error(err),
	)

	return c.Status(services.StatusCodeOf(err)).Render("result", fiber.Map{
		"Title":  "Analysis Failed",
		"Failed": true,
		"Result": failurePrefix + err.Error(),
	})
}
