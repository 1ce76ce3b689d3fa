package services

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"alfredoptarigan/cv-analyzer/internal/models"
)

// UploadedPair is the successful outcome of intake.
type UploadedPair struct {
	JobDescription *models.UploadedDocument
	Resume         *models.UploadedDocument
}

type UploadIntake struct {
	storage     StorageService
	maxFileSize int64
	logger      *zap.Logger
}

func NewUploadIntake(storage StorageService, maxFileSize int64, logger *zap.Logger) *UploadIntake {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UploadIntake{
		storage:     storage,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// Accept validates both file fields before touching the filesystem, then
// stores them. Each stored file is handed to artifacts the moment it exists.
func (u *UploadIntake) Accept(form *multipart.Form, artifacts *Artifacts) (*UploadedPair, error) {
	if form == nil || !hasFile(form, models.RoleJobDescription) || !hasFile(form, models.RoleResume) {
		u.logger.Info("upload rejected",
			zap.String("error_kind", string(KindMissingFile)),
		)
		return nil, newPipelineError(KindMissingFile, "", nil)
	}

	jdHeader, err := u.validate(form, models.RoleJobDescription)
	if err != nil {
		return nil, err
	}
	cvHeader, err := u.validate(form, models.RoleResume)
	if err != nil {
		return nil, err
	}

	jd, err := u.save(jdHeader, models.RoleJobDescription, artifacts)
	if err != nil {
		return nil, err
	}
	cv, err := u.save(cvHeader, models.RoleResume, artifacts)
	if err != nil {
		return nil, err
	}

	return &UploadedPair{JobDescription: jd, Resume: cv}, nil
}

func hasFile(form *multipart.Form, role models.DocumentRole) bool {
	files, ok := form.File[string(role)]
	return ok && len(files) > 0 && files[0] != nil
}

func (u *UploadIntake) validate(form *multipart.Form, role models.DocumentRole) (*multipart.FileHeader, error) {
	files := form.File[string(role)]
	if len(files) > 1 {
		return nil, u.invalid(role, "", fmt.Errorf("only one %s file may be uploaded", role.Label()))
	}

	header := files[0]
	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != ".pdf" {
		return nil, u.invalid(role, header.Filename, fmt.Errorf("%s must be a PDF file, got %q", role.Label(), header.Filename))
	}

	if u.maxFileSize > 0 && header.Size > u.maxFileSize {
		return nil, u.invalid(role, header.Filename, fmt.Errorf("%s file too large. Max size: %d bytes", role.Label(), u.maxFileSize))
	}

	return header, nil
}

func (u *UploadIntake) invalid(role models.DocumentRole, filename string, err error) error {
	u.logger.Info("upload rejected",
		zap.String("role", string(role)),
		zap.String("filename", filename),
		zap.String("error_kind", string(KindInvalidUpload)),
		zap.Error(err),
	)
	return newPipelineError(KindInvalidUpload, filename, err)
}

func (u *UploadIntake) save(header *multipart.FileHeader, role models.DocumentRole, artifacts *Artifacts) (*models.UploadedDocument, error) {
	doc, err := u.storage.SaveFile(header, role)
	if err != nil {
		return nil, fmt.Errorf("failed to save %s file: %w", role.Label(), err)
	}
	artifacts.Track(doc)

	u.logger.Debug("upload stored",
		zap.String("role", string(role)),
		zap.String("path", doc.FilePath),
		zap.Int64("size", doc.Size),
	)
	return doc, nil
}
