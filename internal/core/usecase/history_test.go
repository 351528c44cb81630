package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/plainbrief/plainbrief/internal/core/domain"
)

type fakeSavedRepo struct {
	items     []domain.SavedItem
	saveErr   error
	unsaved   []string
	updatedID string
}

func (f *fakeSavedRepo) List(_ context.Context) ([]domain.SavedItem, error) { return f.items, nil }

func (f *fakeSavedRepo) Save(_ context.Context, item *domain.SavedItem) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.items = append(f.items, *item)
	return nil
}

func (f *fakeSavedRepo) Unsave(_ context.Context, id string) error {
	f.unsaved = append(f.unsaved, id)
	return nil
}

func (f *fakeSavedRepo) UpdateNotes(_ context.Context, id, notes string) (*domain.SavedItem, error) {
	f.updatedID = id
	return &domain.SavedItem{ID: id, Notes: notes}, nil
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

func newDashboardFixture(briefs *fakeBriefRepo, history *fakeHistoryRepo, saved *fakeSavedRepo, settings *fakeSettingsRepo) *DashboardUseCase {
	return NewDashboardUseCase(briefs, history, saved, settings, nil)
}

func TestGetBriefTouchesViewCounter(t *testing.T) {
	briefs := newFakeBriefRepo()
	seedBrief(briefs, "b-1", "title")
	history := &fakeHistoryRepo{}
	uc := newDashboardFixture(briefs, history, &fakeSavedRepo{}, &fakeSettingsRepo{})

	brief, err := uc.GetBrief(context.Background(), "b-1")
	if err != nil {
		t.Fatalf("GetBrief() error = %v", err)
	}
	if brief.ID != "b-1" {
		t.Fatalf("brief = %+v", brief)
	}
	if len(history.touched) != 1 || history.touched[0] != "b-1" {
		t.Fatalf("touched = %v", history.touched)
	}
}

func TestGetBriefMissingHistoryRowIsNotAnError(t *testing.T) {
	briefs := newFakeBriefRepo()
	seedBrief(briefs, "b-1", "title")
	history := &fakeHistoryRepo{touchErr: domain.WrapError(domain.ErrNotFound, "touch", errors.New("no row"))}
	uc := newDashboardFixture(briefs, history, &fakeSavedRepo{}, &fakeSettingsRepo{})

	if _, err := uc.GetBrief(context.Background(), "b-1"); err != nil {
		t.Fatalf("GetBrief() error = %v", err)
	}
}

func TestGetBriefUnknownIDPropagatesNotFound(t *testing.T) {
	uc := newDashboardFixture(newFakeBriefRepo(), &fakeHistoryRepo{}, &fakeSavedRepo{}, &fakeSettingsRepo{})
	_, err := uc.GetBrief(context.Background(), "ghost")
	if !domain.IsKind(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSaveBriefResolvesTitleFromStoredBrief(t *testing.T) {
	briefs := newFakeBriefRepo()
	seedBrief(briefs, "b-1", "The real title")
	saved := &fakeSavedRepo{}
	uc := newDashboardFixture(briefs, &fakeHistoryRepo{}, saved, &fakeSettingsRepo{})

	item, err := uc.SaveBrief(context.Background(), "b-1", "read later")
	if err != nil {
		t.Fatalf("SaveBrief() error = %v", err)
	}
	if item.Title != "The real title" || item.Notes != "read later" {
		t.Fatalf("item = %+v", item)
	}
	if item.ID == "" || item.SavedAt.IsZero() {
		t.Fatalf("identity not assigned: %+v", item)
	}
	if len(saved.items) != 1 {
		t.Fatalf("not persisted")
	}
}

func TestSaveBriefUnknownBriefFails(t *testing.T) {
	uc := newDashboardFixture(newFakeBriefRepo(), &fakeHistoryRepo{}, &fakeSavedRepo{}, &fakeSettingsRepo{})
	if _, err := uc.SaveBrief(context.Background(), "ghost", ""); !domain.IsKind(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPatchSettingsNormalizesAudienceAndValidatesCap(t *testing.T) {
	settings := &fakeSettingsRepo{current: domain.DefaultSettings()}
	uc := newDashboardFixture(newFakeBriefRepo(), &fakeHistoryRepo{}, &fakeSavedRepo{}, settings)

	bogus := "CEO"
	updated, err := uc.PatchSettings(context.Background(), domain.SettingsPatch{DefaultAudience: &bogus})
	if err != nil {
		t.Fatalf("PatchSettings() error = %v", err)
	}
	if updated.DefaultAudience != string(domain.AudienceManager) {
		t.Fatalf("unknown audience must normalize to Manager, got %q", updated.DefaultAudience)
	}

	zero := 0
	if _, err := uc.PatchSettings(context.Background(), domain.SettingsPatch{MaxHistoryItems: &zero}); !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input for zero cap, got %v", err)
	}
}

func TestPatchSettingsLeavesUnsetFieldsAlone(t *testing.T) {
	settings := &fakeSettingsRepo{current: domain.DefaultSettings()}
	uc := newDashboardFixture(newFakeBriefRepo(), &fakeHistoryRepo{}, &fakeSavedRepo{}, settings)

	dark := "dark"
	updated, err := uc.PatchSettings(context.Background(), domain.SettingsPatch{Theme: &dark})
	if err != nil {
		t.Fatalf("PatchSettings() error = %v", err)
	}
	if updated.Theme != "dark" {
		t.Fatalf("theme = %q", updated.Theme)
	}
	if !updated.AutoSave || updated.Language != "en" || updated.MaxHistoryItems != 50 {
		t.Fatalf("unrelated fields changed: %+v", updated)
	}
}

func TestDeleteAndClearHistoryValidateInput(t *testing.T) {
	history := &fakeHistoryRepo{}
	uc := newDashboardFixture(newFakeBriefRepo(), history, &fakeSavedRepo{}, &fakeSettingsRepo{})

	if err := uc.DeleteHistoryItem(context.Background(), ""); !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("empty id: got %v", err)
	}
	if err := uc.DeleteHistoryItem(context.Background(), "h-1"); err != nil {
		t.Fatalf("DeleteHistoryItem() error = %v", err)
	}
	if err := uc.ClearHistory(context.Background()); err != nil {
		t.Fatalf("ClearHistory() error = %v", err)
	}
	if len(history.deleted) != 1 || !history.cleared {
		t.Fatalf("repo state = %+v", history)
	}
}
