package ingest

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/YashPatkar/ShortlistAI/internal/errors"
)

const tesseractInstallHint = "Tesseract OCR is not installed or not found. " +
	"Please install tesseract-ocr:\n" +
	"- macOS: brew install tesseract\n" +
	"- Linux: sudo apt-get install tesseract-ocr"

// OCRAvailable reports whether the tesseract binary is on the PATH
func OCRAvailable() bool {
	_, err := exec.LookPath("tesseract")
	return err == nil
}

// ExtractImageText runs OCR over image bytes using the tesseract CLI.
// The image is piped over stdin and the recognized text is read from stdout.
func ExtractImageText(ctx context.Context, imageBytes []byte) (string, error) {
	if len(imageBytes) == 0 {
		return "", errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"image is empty", nil)
	}

	if !OCRAvailable() {
		return "", errors.NewIOError(errors.ErrCodeExtractFailed, tesseractInstallHint, nil)
	}

	cmd := exec.CommandContext(ctx, "tesseract", "stdin", "stdout")
	cmd.Stdin = bytes.NewReader(imageBytes)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		return "", errors.NewIOError(errors.ErrCodeExtractFailed,
			fmt.Sprintf("failed to extract text from image: %s", detail), err)
	}

	return strings.TrimSpace(stdout.String()), nil
}
