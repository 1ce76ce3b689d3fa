package services

import (
	"sync"

	"go.uber.org/zap"

	"alfredoptarigan/cv-analyzer/internal/models"
)

// Artifacts tracks the temporary files created for one request. Every
// tracked file is deleted exactly once by Release, which callers defer as
// soon as the scope is opened.
type Artifacts struct {
	storage StorageService
	logger  *zap.Logger

	mu       sync.Mutex
	docs     []*models.UploadedDocument
	released bool
}

func NewArtifacts(storage StorageService, logger *zap.Logger) *Artifacts {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Artifacts{storage: storage, logger: logger}
}

// Track registers doc for deletion. A document tracked after Release is
// deleted right away.
func (a *Artifacts) Track(doc *models.UploadedDocument) {
	if doc == nil {
		return
	}

	a.mu.Lock()
	if !a.released {
		a.docs = append(a.docs, doc)
		a.mu.Unlock()
		return
	}
	a.mu.Unlock()

	a.remove(doc)
}

// Release deletes every tracked file. Failures are logged and returned for
// inspection; they never replace the request's own outcome. Calling Release
// again is a no-op.
func (a *Artifacts) Release() []error {
	a.mu.Lock()
	if a.released {
		a.mu.Unlock()
		return nil
	}
	a.released = true
	docs := a.docs
	a.docs = nil
	a.mu.Unlock()

	var errs []error
	for _, doc := range docs {
		if err := a.remove(doc); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func (a *Artifacts) remove(doc *models.UploadedDocument) error {
	if err := a.storage.DeleteFile(doc.FilePath); err != nil {
		cleanupErr := newPipelineError(KindCleanup, doc.FilePath, err)
		a.logger.Warn("temporary file cleanup failed",
			zap.String("path", doc.FilePath),
			zap.String("role", string(doc.Role)),
			zap.String("error_kind", string(KindCleanup)),
			zap.Error(err),
		)
		return cleanupErr
	}

	a.logger.Info("deleted temporary file",
		zap.String("path", doc.FilePath),
		zap.String("role", string(doc.Role)),
	)
	return nil
}
