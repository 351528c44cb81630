package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/plainbrief/plainbrief/internal/core/domain"
	"github.com/plainbrief/plainbrief/internal/core/ports"
)

// RecordUseCase is the worker-side consumer of brief-created events: it
// appends a history row for the brief and evicts beyond the retention cap.
type RecordUseCase struct {
	briefs   ports.BriefRepository
	history  ports.HistoryRepository
	maxItems int
	logger   *slog.Logger
	onEvict  func(count int)
}

func NewRecordUseCase(briefs ports.BriefRepository, history ports.HistoryRepository, maxItems int, logger *slog.Logger) *RecordUseCase {
	if maxItems <= 0 {
		maxItems = 50
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RecordUseCase{briefs: briefs, history: history, maxItems: maxItems, logger: logger}
}

// OnEvict registers a hook called with the number of evicted rows.
func (uc *RecordUseCase) OnEvict(hook func(count int)) {
	uc.onEvict = hook
}

func (uc *RecordUseCase) RecordBrief(ctx context.Context, briefID string) error {
	brief, err := uc.briefs.GetByID(ctx, briefID)
	if err != nil {
		return fmt.Errorf("load brief %s: %w", briefID, err)
	}

	item := &domain.HistoryItem{
		ID:         uuid.NewString(),
		BriefID:    brief.ID,
		Title:      brief.Title,
		Audience:   brief.Audience,
		ViewCount:  0,
		LastViewed: time.Time{},
		CreatedAt:  brief.CreatedAt,
	}
	if err := uc.history.Record(ctx, item); err != nil {
		return fmt.Errorf("record history item: %w", err)
	}

	evicted, err := uc.history.EvictOldest(ctx, uc.maxItems)
	if err != nil {
		// The row is recorded; eviction retries on the next event.
		uc.logger.Warn("history_eviction_failed", "error", err)
		return nil
	}
	if evicted > 0 {
		uc.logger.Info("history_evicted", "count", evicted, "max_items", uc.maxItems)
		if uc.onEvict != nil {
			uc.onEvict(evicted)
		}
	}
	return nil
}
