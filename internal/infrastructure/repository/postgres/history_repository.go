package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/plainbrief/plainbrief/internal/core/domain"
)

type HistoryRepository struct {
	db *sql.DB
}

func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) Record(ctx context.Context, item *domain.HistoryItem) error {
	var lastViewed any
	if !item.LastViewed.IsZero() {
		lastViewed = item.LastViewed
	}
	_, err := r.db.ExecContext(ctx, `
INSERT INTO history_items (id, brief_id, title, audience, view_count, last_viewed, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)
`, item.ID, item.BriefID, item.Title, string(item.Audience), item.ViewCount, lastViewed, item.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert history item: %w", err)
	}
	return nil
}

func (r *HistoryRepository) List(ctx context.Context, limit int) ([]domain.HistoryItem, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT h.id, h.brief_id, h.title, h.audience, h.view_count, h.last_viewed, h.created_at,
	EXISTS (SELECT 1 FROM saved_items s WHERE s.brief_id = h.brief_id) AS is_saved
FROM history_items h
ORDER BY h.created_at DESC
LIMIT $1
`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	items := make([]domain.HistoryItem, 0)
	for rows.Next() {
		var item domain.HistoryItem
		var audience string
		var lastViewed sql.NullTime
		if err := rows.Scan(&item.ID, &item.BriefID, &item.Title, &audience,
			&item.ViewCount, &lastViewed, &item.CreatedAt, &item.IsSaved); err != nil {
			return nil, fmt.Errorf("scan history item: %w", err)
		}
		item.Audience = domain.Audience(audience)
		if lastViewed.Valid {
			item.LastViewed = lastViewed.Time
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return items, nil
}

func (r *HistoryRepository) TouchView(ctx context.Context, briefID string) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE history_items
SET view_count = view_count + 1, last_viewed = $2
WHERE brief_id = $1
`, briefID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("touch history view: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("touch history view: %w", err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrNotFound, "touch history view",
			fmt.Errorf("no history row for brief: %s", briefID))
	}
	return nil
}

func (r *HistoryRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM history_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete history item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete history item: %w", err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrNotFound, "delete history item",
			fmt.Errorf("history item not found: %s", id))
	}
	return nil
}

func (r *HistoryRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM history_items`); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

// EvictOldest deletes rows beyond the retention cap, oldest first, and
// returns how many were removed.
func (r *HistoryRepository) EvictOldest(ctx context.Context, max int) (int, error) {
	res, err := r.db.ExecContext(ctx, `
DELETE FROM history_items
WHERE id IN (
	SELECT id FROM history_items
	ORDER BY created_at DESC
	OFFSET $1
)
`, max)
	if err != nil {
		return 0, fmt.Errorf("evict history items: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("evict history items: %w", err)
	}
	return int(affected), nil
}
