package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/YashPatkar/ShortlistAI/internal/errors"
)

func newTestStore(t *testing.T) *ResumeStore {
	t.Helper()

	dir := t.TempDir()
	db, err := Open(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	s, err := NewResumeStore(db, filepath.Join(dir, "uploads"), nil)
	if err != nil {
		t.Fatalf("NewResumeStore() error = %v", err)
	}
	return s
}

func TestGetEmpty(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get(context.Background())
	if err == nil {
		t.Fatal("Get() on empty store expected error")
	}
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		t.Fatalf("Get() error type = %T, want *AppError", err)
	}
	if appErr.Code != apperrors.ErrCodeResumeNotFound {
		t.Errorf("error code = %q, want %q", appErr.Code, apperrors.ErrCodeResumeNotFound)
	}
}

func TestSaveAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	saved, err := s.Save(ctx, "resume.pdf", []byte("%PDF-1.4 fake"), "Go developer with five years of experience.")
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if saved.Filename != "resume.pdf" {
		t.Errorf("Filename = %q, want %q", saved.Filename, "resume.pdf")
	}
	if _, err := os.Stat(saved.FilePath); err != nil {
		t.Errorf("stored file missing: %v", err)
	}

	got, err := s.Get(ctx)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ExtractedText != "Go developer with five years of experience." {
		t.Errorf("ExtractedText = %q", got.ExtractedText)
	}
	if got.UpdatedAt.IsZero() {
		t.Error("UpdatedAt should be set")
	}
}

func TestSaveReplacesPrevious(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.Save(ctx, "old.pdf", []byte("old content"), "old text")
	if err != nil {
		t.Fatalf("first Save() error = %v", err)
	}

	second, err := s.Save(ctx, "new.pdf", []byte("new content"), "new text")
	if err != nil {
		t.Fatalf("second Save() error = %v", err)
	}

	got, err := s.Get(ctx)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Filename != "new.pdf" || got.ExtractedText != "new text" {
		t.Errorf("Get() = %q/%q, want replacement record", got.Filename, got.ExtractedText)
	}

	var count int64
	if err := s.db.Model(&Resume{}).Count(&count).Error; err != nil {
		t.Fatalf("counting rows: %v", err)
	}
	if count != 1 {
		t.Errorf("row count = %d, want 1", count)
	}

	if _, err := os.Stat(first.FilePath); !os.IsNotExist(err) {
		t.Errorf("old file should be removed, stat err = %v", err)
	}
	if _, err := os.Stat(second.FilePath); err != nil {
		t.Errorf("new file missing: %v", err)
	}
}

func TestSaveSanitizesFilename(t *testing.T) {
	s := newTestStore(t)

	saved, err := s.Save(context.Background(), "../../etc/resume.pdf", []byte("content"), "text")
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if saved.Filename != "resume.pdf" {
		t.Errorf("Filename = %q, want path stripped", saved.Filename)
	}
	if filepath.Base(filepath.Dir(saved.FilePath)) != "uploads" {
		t.Errorf("stored path escaped upload dir: %s", saved.FilePath)
	}
}

func TestExists(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	exists, err := s.Exists(ctx)
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if exists {
		t.Error("Exists() = true on empty store")
	}

	if _, err := s.Save(ctx, "resume.pdf", []byte("content"), "text"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	exists, err = s.Exists(ctx)
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if !exists {
		t.Error("Exists() = false after Save()")
	}
}
