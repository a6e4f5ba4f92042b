package ingest

import (
	"context"
	"strings"
	"testing"

	apperrors "github.com/YashPatkar/ShortlistAI/internal/errors"
)

func TestExtractPDFTextInvalidDocument(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
	}{
		{"empty bytes", []byte{}},
		{"not a pdf", []byte("plain text, definitely not a PDF")},
		{"truncated header", []byte("%PDF-1.4")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractPDFText(tt.content)
			if err == nil {
				t.Fatal("ExtractPDFText() expected error")
			}
			appErr, ok := err.(*apperrors.AppError)
			if !ok {
				t.Fatalf("error type = %T, want *AppError", err)
			}
			if appErr.Code != apperrors.ErrCodeExtractFailed {
				t.Errorf("error code = %q, want %q", appErr.Code, apperrors.ErrCodeExtractFailed)
			}
		})
	}
}

func TestExtractImageTextEmptyInput(t *testing.T) {
	_, err := ExtractImageText(context.Background(), nil)
	if err == nil {
		t.Fatal("ExtractImageText() expected error for empty input")
	}
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		t.Fatalf("error type = %T, want *AppError", err)
	}
	if appErr.Code != apperrors.ErrCodeInvalidRequest {
		t.Errorf("error code = %q, want %q", appErr.Code, apperrors.ErrCodeInvalidRequest)
	}
}

func TestExtractImageTextMissingBinaryMessage(t *testing.T) {
	if OCRAvailable() {
		t.Skip("tesseract is installed")
	}

	_, err := ExtractImageText(context.Background(), []byte{0x89, 0x50, 0x4e, 0x47})
	if err == nil {
		t.Fatal("ExtractImageText() expected error without tesseract")
	}
	if !strings.Contains(err.Error(), "tesseract-ocr") {
		t.Errorf("error should carry an install hint, got %q", err.Error())
	}
}
