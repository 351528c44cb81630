package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/plainbrief/plainbrief/internal/core/domain"
)

type BriefRepository struct {
	db *sql.DB
}

func NewBriefRepository(db *sql.DB) *BriefRepository {
	return &BriefRepository{db: db}
}

func (r *BriefRepository) Create(ctx context.Context, brief *domain.Brief) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO briefs (
	id, title, original_text, simplified_text, audience, reasoning, source_filename, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
`,
		brief.ID, brief.Title, brief.OriginalText, brief.SimplifiedText, string(brief.Audience),
		brief.Reasoning, brief.SourceFilename, brief.CreatedAt, brief.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert brief: %w", err)
	}
	return nil
}

func (r *BriefRepository) GetByID(ctx context.Context, id string) (*domain.Brief, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, title, original_text, simplified_text, audience, reasoning, source_filename, created_at, updated_at
FROM briefs
WHERE id = $1
`, id)

	var brief domain.Brief
	var audience string

	err := row.Scan(
		&brief.ID, &brief.Title, &brief.OriginalText, &brief.SimplifiedText, &audience,
		&brief.Reasoning, &brief.SourceFilename, &brief.CreatedAt, &brief.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrNotFound, "get brief",
				fmt.Errorf("brief not found: %s", id))
		}
		return nil, fmt.Errorf("scan brief: %w", err)
	}

	brief.Audience = domain.Audience(audience)
	return &brief, nil
}
