package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"alfredoptarigan/cv-analyzer/internal/models"
)

// AnalyzerService is the analyze procedure: two PDF paths in, Markdown out.
type AnalyzerService interface {
	Analyze(ctx context.Context, req models.AnalyzeRequest) (*models.AnalyzeResponse, error)
}

type analyzerService struct {
	pdfParser     PDFParserService
	inference     InferenceClient
	promptBuilder *PromptBuilder
	logger        *zap.Logger
}

func NewAnalyzerService(
	pdfParser PDFParserService,
	inference InferenceClient,
	logger *zap.Logger,
) AnalyzerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &analyzerService{
		pdfParser:     pdfParser,
		inference:     inference,
		promptBuilder: NewPromptBuilder(),
		logger:        logger,
	}
}

// Analyze stops at the first failing stage. Nothing is retried and the
// model's answer is returned without post-processing.
func (a *analyzerService) Analyze(ctx context.Context, req models.AnalyzeRequest) (*models.AnalyzeResponse, error) {
	started := time.Now()

	jd, err := a.pdfParser.ExtractText(models.RoleJobDescription, req.JDPath)
	if err != nil {
		return nil, err
	}

	cv, err := a.pdfParser.ExtractText(models.RoleResume, req.CVPath)
	if err != nil {
		return nil, err
	}

	prompt := a.promptBuilder.BuildAlignmentPrompt(jd.Text, cv.Text)

	analysis, err := a.inference.GenerateText(ctx, prompt)
	if err != nil {
		return nil, err
	}

	a.logger.Info("analysis completed",
		zap.String("provider", a.inference.Provider()),
		zap.Int("jd_length", len(jd.Text)),
		zap.Int("cv_length", len(cv.Text)),
		zap.Int("response_length", len(analysis)),
		zap.Duration("elapsed", time.Since(started)),
	)

	return &models.AnalyzeResponse{Analysis: analysis}, nil
}
