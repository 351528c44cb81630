// Package docx extracts text from DOCX uploads by unzipping the OOXML
// container and walking word/document.xml.
package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/plainbrief/plainbrief/internal/core/domain"
	"github.com/plainbrief/plainbrief/internal/core/scoring"
)

type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Extract(_ context.Context, data []byte, filename string) (domain.ExtractedFile, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return domain.ExtractedFile{}, domain.WrapError(domain.ErrExtraction, "open docx container", err)
	}

	var raw []byte
	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return domain.ExtractedFile{}, domain.WrapError(domain.ErrExtraction, "open document.xml", err)
		}
		raw, err = io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return domain.ExtractedFile{}, domain.WrapError(domain.ErrExtraction, "read document.xml", err)
		}
		break
	}
	if raw == nil {
		return domain.ExtractedFile{}, domain.WrapError(domain.ErrExtraction, "locate document.xml",
			errors.New("word/document.xml not found in archive"))
	}

	text, messages, err := documentText(raw)
	if err != nil {
		return domain.ExtractedFile{}, domain.WrapError(domain.ErrExtraction, "parse document.xml", err)
	}

	return domain.ExtractedFile{
		Text: text,
		Metadata: domain.FileMetadata{
			Filename:  filename,
			FileSize:  len(data),
			WordCount: scoring.WordCount(text),
			Messages:  messages,
		},
	}, nil
}

type wordDocument struct {
	Body wordBody `xml:"body"`
}

type wordBody struct {
	Paragraphs []wordParagraph `xml:"p"`
	Tables     []wordTable     `xml:"tbl"`
}

type wordParagraph struct {
	Runs []wordRun `xml:"r"`
}

type wordRun struct {
	Texts  []wordText `xml:"t"`
	Tabs   []struct{} `xml:"tab"`
	Breaks []struct{} `xml:"br"`
}

type wordText struct {
	Content string `xml:",chardata"`
}

type wordTable struct {
	Rows []wordTableRow `xml:"tr"`
}

type wordTableRow struct {
	Cells []wordTableCell `xml:"tc"`
}

type wordTableCell struct {
	Paragraphs []wordParagraph `xml:"p"`
}

func documentText(raw []byte) (string, []string, error) {
	var doc wordDocument
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return "", nil, err
	}

	var builder strings.Builder
	var messages []string

	for _, para := range doc.Body.Paragraphs {
		writeParagraph(&builder, para)
	}
	for _, table := range doc.Body.Tables {
		for _, row := range table.Rows {
			var cells []string
			for _, cell := range row.Cells {
				var cellBuilder strings.Builder
				for _, para := range cell.Paragraphs {
					writeParagraph(&cellBuilder, para)
				}
				cells = append(cells, strings.TrimSpace(cellBuilder.String()))
			}
			builder.WriteString(strings.Join(cells, "\t"))
			builder.WriteString("\n")
		}
		messages = append(messages, "table flattened to tab-separated text")
	}

	return strings.TrimSpace(builder.String()), messages, nil
}

func writeParagraph(builder *strings.Builder, para wordParagraph) {
	for _, run := range para.Runs {
		for range run.Tabs {
			builder.WriteString("\t")
		}
		for range run.Breaks {
			builder.WriteString("\n")
		}
		for _, text := range run.Texts {
			builder.WriteString(text.Content)
		}
	}
	builder.WriteString("\n")
}
