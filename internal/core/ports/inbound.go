package ports

import (
	"context"

	"github.com/plainbrief/plainbrief/internal/core/domain"
)

// BriefResult is the assembled response of a text simplification.
type BriefResult struct {
	Brief      *domain.Brief
	Complexity domain.ComplexityReport
	Reasoning  string
	Jargons    []domain.JargonEntry
	Model      string
	Usage      domain.TokenUsage
	Citations  []string
}

// FileBriefResult adds the extraction metadata of the file path.
type FileBriefResult struct {
	BriefResult
	FileMetadata domain.FileMetadata
}

// BriefCreator is the inbound contract for the simplify orchestration.
type BriefCreator interface {
	SimplifyText(ctx context.Context, text string, audience domain.Audience) (*BriefResult, error)
	SimplifyFile(ctx context.Context, file domain.UploadedFile, audience domain.Audience) (*FileBriefResult, error)
}

// HistoryRecorder is the inbound contract of the worker-side recorder.
type HistoryRecorder interface {
	RecordBrief(ctx context.Context, briefID string) error
}
