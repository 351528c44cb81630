package httpadapter

import (
	"bytes"
	"context"
	"errors"
	"io"
	"time"

	"github.com/plainbrief/plainbrief/internal/core/domain"
)

var errNotFound = errors.New("not found")

type fakeSimplifier struct {
	result  domain.Simplification
	err     error
	calls   int
	gotText string
}

func (f *fakeSimplifier) Simplify(_ context.Context, text string, _ domain.Audience) (domain.Simplification, error) {
	f.calls++
	f.gotText = text
	if f.err != nil {
		return domain.Simplification{}, f.err
	}
	return f.result, nil
}

type fakeJargonService struct {
	terms []string
}

func (f *fakeJargonService) IdentifyTerms(_ context.Context, _ string, _ domain.Audience) ([]string, error) {
	return f.terms, nil
}

func (f *fakeJargonService) ExplainTerm(_ context.Context, term, _ string, _ domain.Audience) (domain.JargonEntry, error) {
	return domain.JargonEntry{Term: term, Short: "s", Detailed: "d"}, nil
}

type fakeBriefRepo struct {
	briefs map[string]*domain.Brief
}

func newFakeBriefRepo() *fakeBriefRepo {
	return &fakeBriefRepo{briefs: map[string]*domain.Brief{}}
}

func (f *fakeBriefRepo) Create(_ context.Context, brief *domain.Brief) error {
	f.briefs[brief.ID] = brief
	return nil
}

func (f *fakeBriefRepo) GetByID(_ context.Context, id string) (*domain.Brief, error) {
	brief, ok := f.briefs[id]
	if !ok {
		return nil, domain.WrapError(domain.ErrNotFound, "get brief", errNotFound)
	}
	return brief, nil
}

type fakePublisher struct {
	ids []string
}

func (f *fakePublisher) PublishBriefCreated(_ context.Context, briefID string) error {
	f.ids = append(f.ids, briefID)
	return nil
}

type fakeHistoryRepo struct {
	items   []domain.HistoryItem
	cleared bool
	deleted []string
}

func (f *fakeHistoryRepo) Record(_ context.Context, item *domain.HistoryItem) error {
	f.items = append(f.items, *item)
	return nil
}

func (f *fakeHistoryRepo) List(_ context.Context, limit int) ([]domain.HistoryItem, error) {
	if limit > 0 && limit < len(f.items) {
		return f.items[:limit], nil
	}
	return f.items, nil
}

func (f *fakeHistoryRepo) TouchView(_ context.Context, _ string) error { return nil }

func (f *fakeHistoryRepo) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeHistoryRepo) Clear(_ context.Context) error {
	f.cleared = true
	return nil
}

func (f *fakeHistoryRepo) EvictOldest(_ context.Context, _ int) (int, error) { return 0, nil }

type fakeSavedRepo struct {
	items []domain.SavedItem
}

func (f *fakeSavedRepo) List(_ context.Context) ([]domain.SavedItem, error) { return f.items, nil }

func (f *fakeSavedRepo) Save(_ context.Context, item *domain.SavedItem) error {
	f.items = append(f.items, *item)
	return nil
}

func (f *fakeSavedRepo) Unsave(_ context.Context, _ string) error { return nil }

func (f *fakeSavedRepo) UpdateNotes(_ context.Context, id, notes string) (*domain.SavedItem, error) {
	return &domain.SavedItem{ID: id, Notes: notes, SavedAt: time.Now()}, nil
}

type fakeSettingsRepo struct {
	current domain.Settings
}

func (f *fakeSettingsRepo) Get(_ context.Context) (domain.Settings, error) { return f.current, nil }

func (f *fakeSettingsRepo) Patch(_ context.Context, patch domain.SettingsPatch) (domain.Settings, error) {
	if patch.Theme != nil {
		f.current.Theme = *patch.Theme
	}
	if patch.DefaultAudience != nil {
		f.current.DefaultAudience = *patch.DefaultAudience
	}
	if patch.AutoSave != nil {
		f.current.AutoSave = *patch.AutoSave
	}
	if patch.Language != nil {
		f.current.Language = *patch.Language
	}
	if patch.MaxHistoryItems != nil {
		f.current.MaxHistoryItems = *patch.MaxHistoryItems
	}
	return f.current, nil
}

type fakePostRepo struct {
	posts []domain.Post
}

func (f *fakePostRepo) Create(_ context.Context, post *domain.Post) error {
	f.posts = append(f.posts, *post)
	return nil
}

func (f *fakePostRepo) List(_ context.Context) ([]domain.Post, error) { return f.posts, nil }

type fakeStorage struct {
	keys    []string
	objects map[string][]byte
}

func (f *fakeStorage) Save(_ context.Context, key string, data io.Reader) error {
	raw, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	if f.objects == nil {
		f.objects = make(map[string][]byte)
	}
	f.keys = append(f.keys, key)
	f.objects[key] = raw
	return nil
}

func (f *fakeStorage) Open(_ context.Context, key string) (io.ReadCloser, error) {
	raw, ok := f.objects[key]
	if !ok {
		return nil, errNotFound
	}
	return io.NopCloser(bytes.NewReader(raw)), nil
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
	result.Metadata.Filename = filename
	result.Metadata.FileSize = len(data)
	return result, nil
}
