package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/plainbrief/plainbrief/internal/core/domain"
	"github.com/plainbrief/plainbrief/internal/core/ports"
)

// JargonUseCase runs the two-phase glossary pipeline: identification, then a
// concurrent per-term explanation fan-out capped at maxTerms. A failing term
// degrades to templated text and never aborts the batch.
type JargonUseCase struct {
	service  ports.JargonService
	maxTerms int
	logger   *slog.Logger
}

func NewJargonUseCase(service ports.JargonService, maxTerms int, logger *slog.Logger) *JargonUseCase {
	if maxTerms <= 0 {
		maxTerms = 10
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &JargonUseCase{service: service, maxTerms: maxTerms, logger: logger}
}

func (uc *JargonUseCase) Extract(ctx context.Context, text string, audience domain.Audience) ([]domain.JargonEntry, error) {
	terms, err := uc.service.IdentifyTerms(ctx, text, audience)
	if err != nil {
		return nil, fmt.Errorf("identify jargon terms: %w", err)
	}
	if len(terms) == 0 {
		return []domain.JargonEntry{}, nil
	}
	if len(terms) > uc.maxTerms {
		terms = terms[:uc.maxTerms]
	}

	// Identification order is preserved; each slot is owned by one goroutine.
	entries := make([]domain.JargonEntry, len(terms))
	var wg sync.WaitGroup
	for i, term := range terms {
		wg.Add(1)
		go func(i int, term string) {
			defer wg.Done()
			entry, err := uc.service.ExplainTerm(ctx, term, text, audience)
			if err != nil {
				uc.logger.Warn("jargon_explanation_failed", "term", term, "error", err)
				entry = fallbackJargonEntry(term)
			}
			entries[i] = entry
		}(i, term)
	}
	wg.Wait()

	return entries, nil
}

func fallbackJargonEntry(term string) domain.JargonEntry {
	return domain.JargonEntry{
		Term:     term,
		Short:    fmt.Sprintf("%s is a technical term used in this context.", term),
		Detailed: fmt.Sprintf("%s is a technical term that requires further explanation. Please refer to technical documentation for more details.", term),
	}
}
