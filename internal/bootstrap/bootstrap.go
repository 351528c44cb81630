// Package bootstrap wires configuration, infrastructure and use cases into a
// runnable application graph shared by the api and worker binaries.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/plainbrief/plainbrief/internal/config"
	"github.com/plainbrief/plainbrief/internal/core/scoring"
	"github.com/plainbrief/plainbrief/internal/core/usecase"
	"github.com/plainbrief/plainbrief/internal/export"
	"github.com/plainbrief/plainbrief/internal/infrastructure/extractor/docx"
	"github.com/plainbrief/plainbrief/internal/infrastructure/extractor/ocr"
	"github.com/plainbrief/plainbrief/internal/infrastructure/extractor/pdf"
	"github.com/plainbrief/plainbrief/internal/infrastructure/llm/perplexity"
	"github.com/plainbrief/plainbrief/internal/infrastructure/queue/nats"
	"github.com/plainbrief/plainbrief/internal/infrastructure/repository/postgres"
	"github.com/plainbrief/plainbrief/internal/infrastructure/resilience"
	"github.com/plainbrief/plainbrief/internal/infrastructure/storage/localfs"
)

type App struct {
	Config config.Config
	Logger *slog.Logger

	Queue      *nats.Queue
	Scorer     *scoring.Scorer
	SimplifyUC *usecase.SimplifyUseCase
	Dashboard  *usecase.DashboardUseCase
	Posts      *usecase.PostUseCase
	Recorder   *usecase.RecordUseCase
	Exporter   *export.Service

	closeFn func()
}

func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	briefs := postgres.NewBriefRepository(db)
	history := postgres.NewHistoryRepository(db)
	saved := postgres.NewSavedRepository(db)
	settings := postgres.NewSettingsRepository(db)
	posts := postgres.NewPostRepository(db)

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: resilience.NewExecutor(resilience.DefaultConfig()),
	})
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	llm := perplexity.New(cfg.PerplexityBaseURL, cfg.PerplexityAPIKey, cfg.PerplexityModel, perplexity.Options{
		Timeout: time.Duration(cfg.LLMTimeoutSeconds) * time.Second,
		Prompts: perplexity.PromptsWithOverrides(cfg.Overrides.AudiencePrompts),
	})

	scorer := scoring.New(cfg.Overrides.Vocabulary)
	normalizer := usecase.NewNormalizeFileUseCase(
		pdf.New(),
		docx.New(),
		ocr.New(cfg.TesseractBinary, cfg.TesseractLanguage),
		usecase.SizeLimits{
			PDFBytes:     cfg.PDFMaxBytes,
			DOCXBytes:    cfg.DOCXMaxBytes,
			ImageBytes:   cfg.ImageMaxBytes,
			DefaultBytes: cfg.DefaultMaxBytes,
		},
	)

	simplifyUC := usecase.NewSimplifyUseCase(
		llm,
		usecase.NewJargonUseCase(llm, cfg.MaxJargonTerms, logger),
		normalizer,
		scorer,
		briefs,
		queue,
		cfg.MaxTextChars,
		logger,
	)
	dashboard := usecase.NewDashboardUseCase(briefs, history, saved, settings, logger)
	postUC := usecase.NewPostUseCase(storage, posts)
	recorder := usecase.NewRecordUseCase(briefs, history, cfg.HistoryMaxItems, logger)
	exporter := export.NewService(history, logger)

	return &App{
		Config: cfg,
		Logger: logger,

		Queue:      queue,
		Scorer:     scorer,
		SimplifyUC: simplifyUC,
		Dashboard:  dashboard,
		Posts:      postUC,
		Recorder:   recorder,
		Exporter:   exporter,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
