package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/plainbrief/plainbrief/internal/core/domain"
)

type SettingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns the single settings row, falling back to the defaults before
// any PATCH has been applied.
func (r *SettingsRepository) Get(ctx context.Context) (domain.Settings, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT theme, default_audience, auto_save, language, max_history_items
FROM settings
WHERE id = 1
`)

	var s domain.Settings
	err := row.Scan(&s.Theme, &s.DefaultAudience, &s.AutoSave, &s.Language, &s.MaxHistoryItems)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.DefaultSettings(), nil
		}
		return domain.Settings{}, fmt.Errorf("scan settings: %w", err)
	}
	return s, nil
}

func (r *SettingsRepository) Patch(ctx context.Context, patch domain.SettingsPatch) (domain.Settings, error) {
	current, err := r.Get(ctx)
	if err != nil {
		return domain.Settings{}, err
	}

	if patch.Theme != nil {
		current.Theme = *patch.Theme
	}
	if patch.DefaultAudience != nil {
		current.DefaultAudience = *patch.DefaultAudience
	}
	if patch.AutoSave != nil {
		current.AutoSave = *patch.AutoSave
	}
	if patch.Language != nil {
		current.Language = *patch.Language
	}
	if patch.MaxHistoryItems != nil {
		current.MaxHistoryItems = *patch.MaxHistoryItems
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO settings (id, theme, default_audience, auto_save, language, max_history_items)
VALUES (1,$1,$2,$3,$4,$5)
ON CONFLICT (id) DO UPDATE SET
	theme = EXCLUDED.theme,
	default_audience = EXCLUDED.default_audience,
	auto_save = EXCLUDED.auto_save,
	language = EXCLUDED.language,
	max_history_items = EXCLUDED.max_history_items
`, current.Theme, current.DefaultAudience, current.AutoSave, current.Language, current.MaxHistoryItems)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("upsert settings: %w", err)
	}
	return current, nil
}
