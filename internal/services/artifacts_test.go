package services

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"alfredoptarigan/cv-analyzer/internal/models"
	"alfredoptarigan/cv-analyzer/internal/testutil"
)

type countingStorage struct {
	StorageService
	deletes map[string]int
}

func (c *countingStorage) DeleteFile(path string) error {
	c.deletes[path]++
	return c.StorageService.DeleteFile(path)
}

func TestArtifactsReleaseDeletesEachFileOnce(t *testing.T) {
	dir := t.TempDir()
	storage := &countingStorage{StorageService: NewStorageService(dir), deletes: map[string]int{}}
	artifacts := NewArtifacts(storage, nil)

	jd := &models.UploadedDocument{Role: models.RoleJobDescription, FilePath: testutil.WriteFile(t, dir, "jd.pdf", []byte("jd"))}
	cv := &models.UploadedDocument{Role: models.RoleResume, FilePath: testutil.WriteFile(t, dir, "cv.pdf", []byte("cv"))}
	artifacts.Track(jd)
	artifacts.Track(cv)
	artifacts.Track(nil)

	if errs := artifacts.Release(); len(errs) != 0 {
		t.Fatalf("unexpected cleanup errors: %v", errs)
	}
	if errs := artifacts.Release(); errs != nil {
		t.Fatalf("expected second release to be a no-op, got %v", errs)
	}

	if entries := testutil.Entries(t, dir); len(entries) != 0 {
		t.Fatalf("expected empty dir, got %v", entries)
	}
	for _, doc := range []*models.UploadedDocument{jd, cv} {
		if storage.deletes[doc.FilePath] != 1 {
			t.Fatalf("expected one delete for %s, got %d", doc.FilePath, storage.deletes[doc.FilePath])
		}
	}
}

func TestArtifactsCleanupFailureIsLoggedNotFatal(t *testing.T) {
	dir := t.TempDir()
	core, observed := observer.New(zapcore.InfoLevel)
	artifacts := NewArtifacts(NewStorageService(dir), zap.New(core))

	missing := filepath.Join(dir, "gone.pdf")
	present := testutil.WriteFile(t, dir, "cv.pdf", []byte("cv"))
	artifacts.Track(&models.UploadedDocument{Role: models.RoleJobDescription, FilePath: missing})
	artifacts.Track(&models.UploadedDocument{Role: models.RoleResume, FilePath: present})

	errs := artifacts.Release()
	if len(errs) != 1 {
		t.Fatalf("expected one cleanup error, got %v", errs)
	}
	if KindOf(errs[0]) != KindCleanup {
		t.Fatalf("expected cleanup kind, got %q", KindOf(errs[0]))
	}

	if _, err := os.Stat(present); !os.IsNotExist(err) {
		t.Fatal("expected the remaining file to be deleted despite the earlier failure")
	}

	warnings := observed.FilterMessage("temporary file cleanup failed").All()
	if len(warnings) != 1 {
		t.Fatalf("expected one cleanup warning, got %d", len(warnings))
	}
	if got := warnings[0].ContextMap()["path"]; got != missing {
		t.Fatalf("expected path field %q, got %v", missing, got)
	}
}

func TestArtifactsTrackAfterRelease(t *testing.T) {
	dir := t.TempDir()
	artifacts := NewArtifacts(NewStorageService(dir), nil)
	artifacts.Release()

	late := testutil.WriteFile(t, dir, "late.pdf", []byte("late"))
	artifacts.Track(&models.UploadedDocument{Role: models.RoleResume, FilePath: late})

	if _, err := os.Stat(late); !os.IsNotExist(err) {
		t.Fatal("expected a file tracked after release to be deleted immediately")
	}
}
