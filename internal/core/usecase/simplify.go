package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/plainbrief/plainbrief/internal/core/domain"
	"github.com/plainbrief/plainbrief/internal/core/ports"
	"github.com/plainbrief/plainbrief/internal/core/scoring"
)

const titleWordLimit = 8

// SimplifyUseCase orchestrates the full brief pipeline: validate, call the
// upstream simplifier, score both texts, build the reasoning line, extract
// jargon, persist and announce the brief.
type SimplifyUseCase struct {
	simplifier ports.Simplifier
	jargon     *JargonUseCase
	normalizer *NormalizeFileUseCase
	scorer     *scoring.Scorer
	briefs     ports.BriefRepository
	events     ports.EventPublisher
	logger     *slog.Logger
	maxChars   int
	now        func() time.Time

	onPublishFailure func()
}

// OnPublishFailure registers a hook called when the brief-created event
// cannot be published.
func (uc *SimplifyUseCase) OnPublishFailure(hook func()) {
	uc.onPublishFailure = hook
}

func NewSimplifyUseCase(
	simplifier ports.Simplifier,
	jargon *JargonUseCase,
	normalizer *NormalizeFileUseCase,
	scorer *scoring.Scorer,
	briefs ports.BriefRepository,
	events ports.EventPublisher,
	maxChars int,
	logger *slog.Logger,
) *SimplifyUseCase {
	if maxChars <= 0 {
		maxChars = 5000
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SimplifyUseCase{
		simplifier: simplifier,
		jargon:     jargon,
		normalizer: normalizer,
		scorer:     scorer,
		briefs:     briefs,
		events:     events,
		logger:     logger,
		maxChars:   maxChars,
		now:        time.Now,
	}
}

// SimplifyText runs the text path. Jargon extraction failures degrade to an
// empty glossary; persistence failures fail the request.
func (uc *SimplifyUseCase) SimplifyText(ctx context.Context, text string, audience domain.Audience) (*ports.BriefResult, error) {
	if err := uc.validateText(text); err != nil {
		return nil, err
	}

	result, err := uc.run(ctx, text, audience, "")
	if err != nil {
		return nil, err
	}

	jargons, err := uc.jargon.Extract(ctx, text, audience)
	if err != nil {
		uc.logger.Warn("jargon_extraction_degraded", "error", err)
		jargons = []domain.JargonEntry{}
	}
	result.Jargons = jargons

	return result, nil
}

// SimplifyFile normalizes the upload first, then runs the same pipeline on
// the extracted text. The file path never runs jargon extraction.
func (uc *SimplifyUseCase) SimplifyFile(ctx context.Context, file domain.UploadedFile, audience domain.Audience) (*ports.FileBriefResult, error) {
	extracted, err := uc.normalizer.Normalize(ctx, file)
	if err != nil {
		return nil, err
	}
	if err := uc.validateText(extracted.Text); err != nil {
		return nil, err
	}

	result, err := uc.run(ctx, extracted.Text, audience, file.Filename)
	if err != nil {
		return nil, err
	}
	result.Jargons = []domain.JargonEntry{}

	return &ports.FileBriefResult{BriefResult: *result, FileMetadata: extracted.Metadata}, nil
}

func (uc *SimplifyUseCase) validateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return domain.WrapError(domain.ErrInvalidInput, "validate text",
			errors.New("text is required"))
	}
	if utf8.RuneCountInString(text) > uc.maxChars {
		return domain.WrapError(domain.ErrInvalidInput, "validate text",
			fmt.Errorf("text exceeds the %d character limit", uc.maxChars))
	}
	return nil
}

func (uc *SimplifyUseCase) run(ctx context.Context, text string, audience domain.Audience, sourceFilename string) (*ports.BriefResult, error) {
	simplification, err := uc.simplifier.Simplify(ctx, text, audience)
	if err != nil {
		return nil, err
	}

	report := uc.scorer.Analyze(text, simplification.Text)
	reasoning := scoring.Reasoning(report)

	now := uc.now().UTC()
	brief := &domain.Brief{
		ID:             uuid.NewString(),
		Title:          makeTitle(text),
		OriginalText:   text,
		SimplifiedText: simplification.Text,
		Audience:       audience,
		Reasoning:      reasoning,
		SourceFilename: sourceFilename,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.briefs.Create(ctx, brief); err != nil {
		return nil, fmt.Errorf("persist brief: %w", err)
	}

	// The brief already exists; a lost event only delays history recording.
	if err := uc.events.PublishBriefCreated(ctx, brief.ID); err != nil {
		uc.logger.Warn("brief_created_publish_failed", "brief_id", brief.ID, "error", err)
		if uc.onPublishFailure != nil {
			uc.onPublishFailure()
		}
	}

	return &ports.BriefResult{
		Brief:      brief,
		Complexity: report,
		Reasoning:  reasoning,
		Model:      simplification.Model,
		Usage:      simplification.Usage,
		Citations:  simplification.Citations,
	}, nil
}

// makeTitle takes the first few words of the original text.
func makeTitle(text string) string {
	words := strings.Fields(text)
	if len(words) > titleWordLimit {
		return strings.Join(words[:titleWordLimit], " ") + "..."
	}
	return strings.Join(words, " ")
}
