package ports

import (
	"context"
	"io"

	"github.com/plainbrief/plainbrief/internal/core/domain"
)

// Simplifier produces the plain-language rendition of a text for an audience.
type Simplifier interface {
	Simplify(ctx context.Context, text string, audience domain.Audience) (domain.Simplification, error)
}

// JargonService is the two-phase glossary collaborator.
type JargonService interface {
	IdentifyTerms(ctx context.Context, text string, audience domain.Audience) ([]string, error)
	ExplainTerm(ctx context.Context, term, text string, audience domain.Audience) (domain.JargonEntry, error)
}

// FileExtractor converts one upload format into plain text plus metadata.
type FileExtractor interface {
	Extract(ctx context.Context, data []byte, filename string) (domain.ExtractedFile, error)
}

// BriefRepository persists simplification results.
type BriefRepository interface {
	Create(ctx context.Context, brief *domain.Brief) error
	GetByID(ctx context.Context, id string) (*domain.Brief, error)
}

// HistoryRepository owns the append-only history log and its eviction.
type HistoryRepository interface {
	Record(ctx context.Context, item *domain.HistoryItem) error
	List(ctx context.Context, limit int) ([]domain.HistoryItem, error)
	TouchView(ctx context.Context, briefID string) error
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
	EvictOldest(ctx context.Context, max int) (int, error)
}

// SavedRepository persists pinned briefs with notes.
type SavedRepository interface {
	List(ctx context.Context) ([]domain.SavedItem, error)
	Save(ctx context.Context, item *domain.SavedItem) error
	Unsave(ctx context.Context, id string) error
	UpdateNotes(ctx context.Context, id, notes string) (*domain.SavedItem, error)
}

// SettingsRepository reads and patches the single settings record.
type SettingsRepository interface {
	Get(ctx context.Context) (domain.Settings, error)
	Patch(ctx context.Context, patch domain.SettingsPatch) (domain.Settings, error)
}

// PostRepository backs the legacy image-post endpoints.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	List(ctx context.Context) ([]domain.Post, error)
}

// ObjectStorage stores uploaded post images.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// EventPublisher announces a successfully created brief.
type EventPublisher interface {
	PublishBriefCreated(ctx context.Context, briefID string) error
}

// EventSubscriber delivers brief-created events to the worker.
type EventSubscriber interface {
	SubscribeBriefCreated(ctx context.Context, handler func(context.Context, string) error) error
}
