package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/plainbrief/plainbrief/internal/core/domain"
)

type SavedRepository struct {
	db *sql.DB
}

func NewSavedRepository(db *sql.DB) *SavedRepository {
	return &SavedRepository{db: db}
}

func (r *SavedRepository) List(ctx context.Context) ([]domain.SavedItem, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, brief_id, title, notes, saved_at
FROM saved_items
ORDER BY saved_at DESC
`)
	if err != nil {
		return nil, fmt.Errorf("query saved items: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	items := make([]domain.SavedItem, 0)
	for rows.Next() {
		var item domain.SavedItem
		if err := rows.Scan(&item.ID, &item.BriefID, &item.Title, &item.Notes, &item.SavedAt); err != nil {
			return nil, fmt.Errorf("scan saved item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate saved items: %w", err)
	}
	return items, nil
}

// Save upserts on brief_id so pinning twice refreshes the notes instead of
// duplicating the row.
func (r *SavedRepository) Save(ctx context.Context, item *domain.SavedItem) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO saved_items (id, brief_id, title, notes, saved_at)
VALUES ($1,$2,$3,$4,$5)
ON CONFLICT (brief_id) DO UPDATE SET notes = EXCLUDED.notes, saved_at = EXCLUDED.saved_at
`, item.ID, item.BriefID, item.Title, item.Notes, item.SavedAt)
	if err != nil {
		return fmt.Errorf("save item: %w", err)
	}
	return nil
}

func (r *SavedRepository) Unsave(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM saved_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("unsave item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("unsave item: %w", err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrNotFound, "unsave item",
			fmt.Errorf("saved item not found: %s", id))
	}
	return nil
}

func (r *SavedRepository) UpdateNotes(ctx context.Context, id, notes string) (*domain.SavedItem, error) {
	row := r.db.QueryRowContext(ctx, `
UPDATE saved_items
SET notes = $2
WHERE id = $1
RETURNING id, brief_id, title, notes, saved_at
`, id, notes)

	var item domain.SavedItem
	err := row.Scan(&item.ID, &item.BriefID, &item.Title, &item.Notes, &item.SavedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrNotFound, "update notes",
				fmt.Errorf("saved item not found: %s", id))
		}
		return nil, fmt.Errorf("scan saved item: %w", err)
	}
	return &item, nil
}
