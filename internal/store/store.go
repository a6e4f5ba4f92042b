package store

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/YashPatkar/ShortlistAI/internal/errors"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Resume is the single stored resume. The table holds at most one row;
// saving a new resume replaces the previous one.
type Resume struct {
	ID            uint      `gorm:"primaryKey"`
	Filename      string    `gorm:"not null"`
	FilePath      string    `gorm:"not null"`
	ExtractedText string    `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName overrides the default pluralization
func (Resume) TableName() string {
	return "resumes"
}

// Open opens the SQLite database and runs migrations
func Open(databasePath string) (*gorm.DB, error) {
	if dir := filepath.Dir(databasePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.NewIOError(errors.ErrCodeStorageFailed,
				fmt.Sprintf("failed to create database directory: %s", dir), err)
		}
	}

	db, err := gorm.Open(sqlite.Open(databasePath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, errors.NewIOError(errors.ErrCodeStorageFailed,
			fmt.Sprintf("failed to open database: %s", databasePath), err)
	}

	if err := db.AutoMigrate(&Resume{}); err != nil {
		return nil, errors.NewIOError(errors.ErrCodeStorageFailed,
			"failed to migrate resume schema", err)
	}

	return db, nil
}

// ResumeStore persists the resume record and its original file
type ResumeStore struct {
	db        *gorm.DB
	uploadDir string
	logger    *errors.Logger
}

// NewResumeStore creates a store backed by the given database and upload directory
func NewResumeStore(db *gorm.DB, uploadDir string, logger *errors.Logger) (*ResumeStore, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, errors.NewIOError(errors.ErrCodeStorageFailed,
			fmt.Sprintf("failed to create upload directory: %s", uploadDir), err)
	}
	return &ResumeStore{
		db:        db,
		uploadDir: uploadDir,
		logger:    logger,
	}, nil
}

// Save stores the resume file and its extracted text, replacing any
// previously stored resume. The old record and file are removed.
func (s *ResumeStore) Save(ctx context.Context, filename string, content []byte, extractedText string) (*Resume, error) {
	storedName := uuid.NewString() + "_" + filepath.Base(filename)
	storedPath := filepath.Join(s.uploadDir, storedName)

	if err := os.WriteFile(storedPath, content, 0o600); err != nil {
		return nil, errors.NewIOError(errors.ErrCodeStorageFailed,
			fmt.Sprintf("failed to write resume file: %s", storedPath), err)
	}

	var oldPaths []string
	resume := &Resume{
		Filename:      filepath.Base(filename),
		FilePath:      storedPath,
		ExtractedText: extractedText,
		UpdatedAt:     time.Now().UTC(),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []Resume
		if err := tx.Find(&existing).Error; err != nil {
			return err
		}
		for _, old := range existing {
			oldPaths = append(oldPaths, old.FilePath)
		}
		if len(existing) > 0 {
			if err := tx.Where("1 = 1").Delete(&Resume{}).Error; err != nil {
				return err
			}
		}
		return tx.Create(resume).Error
	})
	if err != nil {
		if removeErr := os.Remove(storedPath); removeErr != nil && s.logger != nil {
			s.logger.Warn("Failed to clean up resume file after database error",
				"path", storedPath, "error", removeErr.Error())
		}
		return nil, errors.NewIOError(errors.ErrCodeStorageFailed,
			"failed to save resume record", err)
	}

	// Old files are removed best-effort once the new record is committed
	for _, oldPath := range oldPaths {
		if oldPath == storedPath {
			continue
		}
		if removeErr := os.Remove(oldPath); removeErr != nil && !os.IsNotExist(removeErr) {
			if s.logger != nil {
				s.logger.Warn("Failed to remove previous resume file",
					"path", oldPath, "error", removeErr.Error())
			}
		}
	}

	if s.logger != nil {
		s.logger.Info("Resume saved",
			"filename", resume.Filename,
			"path", storedPath,
			"text_length", len(extractedText))
	}

	return resume, nil
}

// Get returns the stored resume, or a RESUME_NOT_FOUND error when none exists
func (s *ResumeStore) Get(ctx context.Context) (*Resume, error) {
	var resume Resume
	err := s.db.WithContext(ctx).First(&resume).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewValidationError(errors.ErrCodeResumeNotFound,
				"No resume uploaded. Please upload a resume first.", nil)
		}
		return nil, errors.NewIOError(errors.ErrCodeStorageFailed,
			"failed to read resume record", err)
	}
	return &resume, nil
}

// Exists reports whether a resume is currently stored
func (s *ResumeStore) Exists(ctx context.Context) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&Resume{}).Count(&count).Error; err != nil {
		return false, errors.NewIOError(errors.ErrCodeStorageFailed,
			"failed to count resume records", err)
	}
	return count > 0, nil
}
