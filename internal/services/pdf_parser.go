package services

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"alfredoptarigan/cv-analyzer/internal/models"
)

var errNoText = errors.New("no text content found in PDF")

type PDFParserService interface {
	ExtractText(role models.DocumentRole, filePath string) (*models.ExtractedText, error)
}

type pdfParserService struct {
	logger *zap.Logger
}

func NewPDFParserService(logger *zap.Logger) PDFParserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &pdfParserService{logger: logger}
}

// ExtractText reads the whole file and returns the text of every page. A file
// that parses but carries no text is a failure.
func (p *pdfParserService) ExtractText(role models.DocumentRole, filePath string) (*models.ExtractedText, error) {
	text, err := readPlainText(filePath)
	if err != nil {
		p.logger.Error("pdf extraction failed",
			zap.String("path", filePath),
			zap.String("role", string(role)),
			zap.String("error_kind", string(KindPDFParse)),
			zap.Error(err),
		)
		return nil, newPipelineError(KindPDFParse, filePath, err)
	}

	p.logger.Debug("pdf text extracted",
		zap.String("path", filePath),
		zap.String("role", string(role)),
		zap.Int("text_length", len(text)),
	)

	return &models.ExtractedText{Role: role, Text: text}, nil
}

func readPlainText(filePath string) (text string, err error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", err
	}

	// The parser panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("malformed PDF: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		textBuilder.WriteString(pageText)
		textBuilder.WriteString("\n\n")
	}

	text = textBuilder.String()
	if strings.TrimSpace(text) == "" {
		return "", errNoText
	}

	return text, nil
}
