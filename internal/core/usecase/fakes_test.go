package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/plainbrief/plainbrief/internal/core/domain"
)

var errBriefMissing = errors.New("brief not found")

type fakeSimplifier struct {
	result      domain.Simplification
	err         error
	calls       int
	gotText     string
	gotAudience domain.Audience
}

func (f *fakeSimplifier) Simplify(_ context.Context, text string, audience domain.Audience) (domain.Simplification, error) {
	f.calls++
	f.gotText = text
	f.gotAudience = audience
	if f.err != nil {
		return domain.Simplification{}, f.err
	}
	return f.result, nil
}

type fakeJargonService struct {
	terms       []string
	identifyErr error
	explainErr  map[string]error

	mu        sync.Mutex
	explained []string
}

func (f *fakeJargonService) IdentifyTerms(_ context.Context, _ string, _ domain.Audience) ([]string, error) {
	if f.identifyErr != nil {
		return nil, f.identifyErr
	}
	return f.terms, nil
}

func (f *fakeJargonService) ExplainTerm(_ context.Context, term, _ string, _ domain.Audience) (domain.JargonEntry, error) {
	f.mu.Lock()
	f.explained = append(f.explained, term)
	f.mu.Unlock()
	if err, ok := f.explainErr[term]; ok {
		return domain.JargonEntry{}, err
	}
	return domain.JargonEntry{
		Term:     term,
		Short:    "short " + strings.ToLower(term),
		Detailed: "detailed " + strings.ToLower(term),
	}, nil
}

type fakeBriefRepo struct {
	createErr error
	getErr    error
	briefs    map[string]*domain.Brief
}

func newFakeBriefRepo() *fakeBriefRepo {
	return &fakeBriefRepo{briefs: map[string]*domain.Brief{}}
}

func (f *fakeBriefRepo) Create(_ context.Context, brief *domain.Brief) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.briefs[brief.ID] = brief
	return nil
}

func (f *fakeBriefRepo) GetByID(_ context.Context, id string) (*domain.Brief, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	brief, ok := f.briefs[id]
	if !ok {
		return nil, domain.WrapError(domain.ErrNotFound, "get brief", errBriefMissing)
	}
	return brief, nil
}

type fakePublisher struct {
	err error
	ids []string
}

func (f *fakePublisher) PublishBriefCreated(_ context.Context, briefID string) error {
	f.ids = append(f.ids, briefID)
	return f.err
}

type fakeHistoryRepo struct {
	items      []domain.HistoryItem
	recordErr  error
	evictErr   error
	evicted    int
	touched    []string
	deleted    []string
	cleared    bool
	touchErr   error
	evictCalls int
}

func (f *fakeHistoryRepo) Record(_ context.Context, item *domain.HistoryItem) error {
	if f.recordErr != nil {
		return f.recordErr
	}
	f.items = append(f.items, *item)
	return nil
}

func (f *fakeHistoryRepo) List(_ context.Context, limit int) ([]domain.HistoryItem, error) {
	if limit > 0 && limit < len(f.items) {
		return f.items[:limit], nil
	}
	return f.items, nil
}

func (f *fakeHistoryRepo) TouchView(_ context.Context, briefID string) error {
	if f.touchErr != nil {
		return f.touchErr
	}
	f.touched = append(f.touched, briefID)
	return nil
}

func (f *fakeHistoryRepo) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeHistoryRepo) Clear(_ context.Context) error {
	f.cleared = true
	return nil
}

func (f *fakeHistoryRepo) EvictOldest(_ context.Context, max int) (int, error) {
	f.evictCalls++
	if f.evictErr != nil {
		return 0, f.evictErr
	}
	if len(f.items) > max {
		f.evicted = len(f.items) - max
		f.items = f.items[f.evicted:]
	}
	return f.evicted, nil
}

type fakeExtractor struct {
	result domain.ExtractedFile
	err    error
	calls  int
}

func (f *fakeExtractor) Extract(_ context.Context, data []byte, filename string) (domain.ExtractedFile, error) {
	f.calls++
	if f.err != nil {
		return domain.ExtractedFile{}, f.err
	}
	result := f.result
	if result.Metadata.FileSize == 0 {
		result.Metadata.FileSize = len(data)
	}
	if result.Metadata.Filename == "" {
		result.Metadata.Filename = filename
	}
	return result, nil
}
