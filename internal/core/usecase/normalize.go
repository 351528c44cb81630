package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/plainbrief/plainbrief/internal/core/domain"
	"github.com/plainbrief/plainbrief/internal/core/ports"
)

// FileFormat is the dispatch key of the normalizer.
type FileFormat string

const (
	FormatPDF     FileFormat = "pdf"
	FormatDOCX    FileFormat = "docx"
	FormatImage   FileFormat = "image"
	FormatUnknown FileFormat = "unknown"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// SizeLimits carries the per-format byte caps; DefaultBytes covers image
// mimetypes outside the explicit table.
type SizeLimits struct {
	PDFBytes     int64
	DOCXBytes    int64
	ImageBytes   int64
	DefaultBytes int64
}

// NormalizeFileUseCase validates an upload, dispatches it to the extractor
// for its format, rejects empty results and merges the metadata.
type NormalizeFileUseCase struct {
	pdf    ports.FileExtractor
	docx   ports.FileExtractor
	image  ports.FileExtractor
	limits SizeLimits
}

func NewNormalizeFileUseCase(pdf, docx, image ports.FileExtractor, limits SizeLimits) *NormalizeFileUseCase {
	return &NormalizeFileUseCase{pdf: pdf, docx: docx, image: image, limits: limits}
}

// DetectFormat applies the dispatch rules: exact PDF mimetype, the DOCX OOXML
// mimetype or a .docx filename suffix, then any image/* prefix.
func DetectFormat(mimetype, filename string) FileFormat {
	switch {
	case mimetype == mimePDF:
		return FormatPDF
	case mimetype == mimeDOCX || strings.HasSuffix(strings.ToLower(filename), ".docx"):
		return FormatDOCX
	case strings.HasPrefix(mimetype, "image/"):
		return FormatImage
	default:
		return FormatUnknown
	}
}

// Validate checks the declared type and the per-format size cap before any
// bytes are parsed.
func (uc *NormalizeFileUseCase) Validate(mimetype, filename string, size int64) error {
	format := DetectFormat(mimetype, filename)
	if format == FormatUnknown {
		return domain.WrapError(domain.ErrUnsupportedMedia, "validate file",
			errors.New("unsupported file type, allowed: PDF, DOCX, JPG, PNG"))
	}

	limit := uc.sizeLimit(format, mimetype)
	if size > limit {
		return domain.WrapError(domain.ErrInvalidInput, "validate file",
			fmt.Errorf("file too large, maximum size: %dMB", limit/(1024*1024)))
	}
	return nil
}

func (uc *NormalizeFileUseCase) sizeLimit(format FileFormat, mimetype string) int64 {
	switch format {
	case FormatPDF:
		return uc.limits.PDFBytes
	case FormatDOCX:
		return uc.limits.DOCXBytes
	case FormatImage:
		switch mimetype {
		case "image/jpeg", "image/jpg", "image/png":
			return uc.limits.ImageBytes
		default:
			// image/* outside the explicit table still gets the default cap.
			return uc.limits.DefaultBytes
		}
	default:
		return uc.limits.DefaultBytes
	}
}

// Extract runs the format's extractor and enforces the non-empty-text rule.
// An empty text layer is reported distinctly from an extractor failure.
func (uc *NormalizeFileUseCase) Extract(ctx context.Context, file domain.UploadedFile) (domain.ExtractedFile, error) {
	format := DetectFormat(file.MimeType, file.Filename)

	var extractor ports.FileExtractor
	switch format {
	case FormatPDF:
		extractor = uc.pdf
	case FormatDOCX:
		extractor = uc.docx
	case FormatImage:
		extractor = uc.image
	default:
		return domain.ExtractedFile{}, domain.WrapError(domain.ErrUnsupportedMedia, "extract file",
			errors.New("unsupported file type, allowed: PDF, DOCX, JPG, PNG"))
	}

	result, err := extractor.Extract(ctx, file.Data, file.Filename)
	if err != nil {
		if domain.IsKind(err, domain.ErrExtraction) {
			return domain.ExtractedFile{}, err
		}
		return domain.ExtractedFile{}, domain.WrapError(domain.ErrExtraction, "extract file", err)
	}

	if strings.TrimSpace(result.Text) == "" {
		return domain.ExtractedFile{}, domain.WrapError(domain.ErrExtraction, "extract file",
			errors.New("no text could be extracted from the file; it may be empty or contain only images"))
	}

	result.Metadata.Filename = file.Filename
	result.Metadata.MimeType = file.MimeType
	result.Metadata.FileSize = len(file.Data)
	return result, nil
}

// Normalize is the full validate-then-extract path.
func (uc *NormalizeFileUseCase) Normalize(ctx context.Context, file domain.UploadedFile) (domain.ExtractedFile, error) {
	if err := uc.Validate(file.MimeType, file.Filename, int64(len(file.Data))); err != nil {
		return domain.ExtractedFile{}, err
	}
	return uc.Extract(ctx, file)
}
