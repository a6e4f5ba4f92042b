package ingest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/YashPatkar/ShortlistAI/internal/errors"
	"github.com/YashPatkar/ShortlistAI/internal/jd"

	"github.com/ledongthuc/pdf"
)

// ExtractPDFText extracts plain text from PDF bytes, page by page.
// It fails when the document cannot be parsed or yields no text at all.
func ExtractPDFText(content []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", errors.NewIOError(errors.ErrCodeExtractFailed,
			fmt.Sprintf("failed to extract text from PDF: %v", err), err)
	}

	var builder strings.Builder
	numPages := reader.NumPage()
	for pageNum := 1; pageNum <= numPages; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page should not sink the whole document
			continue
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}

	extracted := jd.CleanText(builder.String())
	if extracted == "" {
		return "", errors.NewIOError(errors.ErrCodeExtractFailed,
			"no text could be extracted from the PDF", nil)
	}

	return extracted, nil
}
