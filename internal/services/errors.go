package services

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type ErrorKind string

const (
	KindMissingFile     ErrorKind = "missing_file"
	KindInvalidUpload   ErrorKind = "invalid_upload"
	KindPDFParse        ErrorKind = "pdf_parse"
	KindAIAuth          ErrorKind = "ai_auth"
	KindAINetwork       ErrorKind = "ai_network"
	KindAIEmptyResponse ErrorKind = "ai_empty_response"
	KindCleanup         ErrorKind = "cleanup"
)

const (
	MsgMissingFiles    = "Both Job Description and CV PDF files are required."
	MsgAPIKeyMissing   = "Failed to analyze with AI: API key missing."
	MsgEmptyAIResponse = "No valid analysis received from AI."
)

// StatusCode maps a kind to the HTTP status the caller should see.
func (k ErrorKind) StatusCode() int {
	switch k {
	case KindMissingFile, KindInvalidUpload:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// PipelineError is the single error type returned by intake, extraction and
// inference. Path is set when the failure concerns a specific file.
type PipelineError struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *PipelineError) Error() string {
	switch e.Kind {
	case KindMissingFile:
		return MsgMissingFiles
	case KindPDFParse:
		return fmt.Sprintf("Could not parse PDF: %s. Error: %s", e.Path, e.detail())
	case KindAIAuth:
		if e.Err == nil {
			return MsgAPIKeyMissing
		}
		return "Failed to analyze with AI: " + e.detail()
	case KindAINetwork:
		return "Failed to analyze with AI: " + e.detail()
	case KindAIEmptyResponse:
		return MsgEmptyAIResponse
	case KindCleanup:
		return fmt.Sprintf("failed to delete temporary file %s: %s", e.Path, e.detail())
	default:
		return e.detail()
	}
}

func (e *PipelineError) detail() string {
	if e.Err == nil {
		return "Unknown error"
	}
	return e.Err.Error()
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

func newPipelineError(kind ErrorKind, path string, err error) *PipelineError {
	return &PipelineError{Kind: kind, Path: path, Err: err}
}

// KindOf returns the kind of the first PipelineError in err's chain, or an
// empty kind when there is none.
func KindOf(err error) ErrorKind {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}

// StatusCodeOf returns the HTTP status for any error produced by the pipeline.
func StatusCodeOf(err error) int {
	if kind := KindOf(err); kind != "" {
		return kind.StatusCode()
	}
	return fiber.StatusInternalServerError
}
