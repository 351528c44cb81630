package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/plainbrief/plainbrief/internal/core/domain"
	"github.com/plainbrief/plainbrief/internal/core/ports"
)

// DashboardUseCase serves the history, saved and settings surfaces.
type DashboardUseCase struct {
	briefs   ports.BriefRepository
	history  ports.HistoryRepository
	saved    ports.SavedRepository
	settings ports.SettingsRepository
	logger   *slog.Logger
}

func NewDashboardUseCase(
	briefs ports.BriefRepository,
	history ports.HistoryRepository,
	saved ports.SavedRepository,
	settings ports.SettingsRepository,
	logger *slog.Logger,
) *DashboardUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardUseCase{
		briefs:   briefs,
		history:  history,
		saved:    saved,
		settings: settings,
		logger:   logger,
	}
}

// GetBrief returns one persisted brief and bumps its view counter. A missing
// history row is not an error: the brief may predate recording or have been
// evicted.
func (uc *DashboardUseCase) GetBrief(ctx context.Context, id string) (*domain.Brief, error) {
	brief, err := uc.briefs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.history.TouchView(ctx, id); err != nil && !domain.IsKind(err, domain.ErrNotFound) {
		uc.logger.Warn("history_touch_failed", "brief_id", id, "error", err)
	}
	return brief, nil
}

func (uc *DashboardUseCase) ListHistory(ctx context.Context, limit int) ([]domain.HistoryItem, error) {
	return uc.history.List(ctx, limit)
}

func (uc *DashboardUseCase) DeleteHistoryItem(ctx context.Context, id string) error {
	if id == "" {
		return domain.WrapError(domain.ErrInvalidInput, "delete history item", errors.New("id is required"))
	}
	return uc.history.Delete(ctx, id)
}

func (uc *DashboardUseCase) ClearHistory(ctx context.Context) error {
	return uc.history.Clear(ctx)
}

func (uc *DashboardUseCase) ListSaved(ctx context.Context) ([]domain.SavedItem, error) {
	return uc.saved.List(ctx)
}

// SaveBrief pins a brief. The title is resolved from the stored brief so the
// client cannot save a label that disagrees with the record.
func (uc *DashboardUseCase) SaveBrief(ctx context.Context, briefID, notes string) (*domain.SavedItem, error) {
	brief, err := uc.briefs.GetByID(ctx, briefID)
	if err != nil {
		return nil, err
	}
	item := &domain.SavedItem{
		ID:      uuid.NewString(),
		BriefID: brief.ID,
		Title:   brief.Title,
		Notes:   notes,
		SavedAt: time.Now().UTC(),
	}
	if err := uc.saved.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("save brief: %w", err)
	}
	return item, nil
}

func (uc *DashboardUseCase) UnsaveBrief(ctx context.Context, id string) error {
	if id == "" {
		return domain.WrapError(domain.ErrInvalidInput, "unsave brief", errors.New("id is required"))
	}
	return uc.saved.Unsave(ctx, id)
}

func (uc *DashboardUseCase) UpdateSavedNotes(ctx context.Context, id, notes string) (*domain.SavedItem, error) {
	if id == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "update notes", errors.New("id is required"))
	}
	return uc.saved.UpdateNotes(ctx, id, notes)
}

func (uc *DashboardUseCase) GetSettings(ctx context.Context) (domain.Settings, error) {
	return uc.settings.Get(ctx)
}

func (uc *DashboardUseCase) PatchSettings(ctx context.Context, patch domain.SettingsPatch) (domain.Settings, error) {
	if patch.DefaultAudience != nil {
		normalized := string(domain.NormalizeAudience(*patch.DefaultAudience))
		patch.DefaultAudience = &normalized
	}
	if patch.MaxHistoryItems != nil && *patch.MaxHistoryItems <= 0 {
		return domain.Settings{}, domain.WrapError(domain.ErrInvalidInput, "patch settings",
			errors.New("maxHistoryItems must be positive"))
	}
	return uc.settings.Patch(ctx, patch)
}
