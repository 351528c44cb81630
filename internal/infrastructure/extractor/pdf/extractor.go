// Package pdf extracts text from PDF uploads with the pure-Go ledongthuc/pdf
// reader, so no external binary is needed for this path.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/plainbrief/plainbrief/internal/core/domain"
	"github.com/plainbrief/plainbrief/internal/core/scoring"
)

type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Extract(_ context.Context, data []byte, filename string) (domain.ExtractedFile, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return domain.ExtractedFile{}, domain.WrapError(domain.ErrExtraction, "open pdf", err)
	}

	pageCount := reader.NumPage()
	var builder strings.Builder
	var messages []string

	for i := 1; i <= pageCount; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// Image-only pages are common; keep going.
			messages = append(messages, fmt.Sprintf("page %d: no extractable text", i))
			continue
		}
		if builder.Len() > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(strings.TrimSpace(text))
	}

	text := strings.TrimSpace(builder.String())
	return domain.ExtractedFile{
		Text: text,
		Metadata: domain.FileMetadata{
			Filename:  filename,
			FileSize:  len(data),
			WordCount: scoring.WordCount(text),
			PageCount: pageCount,
			Messages:  messages,
		},
	}, nil
}
