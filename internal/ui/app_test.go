package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tobna/ai-deadlines/internal/conference"
	"github.com/tobna/ai-deadlines/internal/countdown"
	"github.com/tobna/ai-deadlines/internal/filter"
)

type stubFeeds struct {
	upcoming    []conference.Record
	archive     []conference.Record
	upcomingErr error
	archiveErr  error
	archiveHits int
}

func (s *stubFeeds) Upcoming(context.Context) ([]conference.Record, error) {
	return s.upcoming, s.upcomingErr
}

func (s *stubFeeds) Archive(context.Context) ([]conference.Record, error) {
	s.archiveHits++
	return s.archive, s.archiveErr
}

func newTestModel(t *testing.T, feeds Feeds) Model {
	t.Helper()
	m := NewModel(feeds, nil, countdown.NewRegistry(time.Second, nil), DarkTheme())
	m.now = func() time.Time { return testNow }
	t.Cleanup(m.registry.Close)
	return m
}

func loaded(t *testing.T, m Model, records []conference.Record) Model {
	t.Helper()
	next, _ := m.Update(UpcomingLoadedMsg{Records: records})
	return next.(Model)
}

func key(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func press(t *testing.T, m Model, r rune) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(key(r))
	return next.(Model), cmd
}

func sampleRecords() []conference.Record {
	return []conference.Record{
		{ID: "neurips", Title: "NeurIPS", Deadline: futureDeadline(60 * 24 * time.Hour), Tags: []string{"ML"}},
		{ID: "acl", Title: "ACL", Deadline: futureDeadline(5 * 24 * time.Hour), Tags: []string{"NLP"}},
		{ID: "cvpr", Title: "CVPR", Deadline: futureDeadline(200 * 24 * time.Hour), Tags: []string{"CV"}, IsApproximateDeadline: true},
	}
}

func TestUpcomingLoadFailureShowsModal(t *testing.T) {
	m := newTestModel(t, &stubFeeds{upcomingErr: errors.New("boom")})

	next, _ := m.Update(UpcomingLoadedMsg{Err: errors.New("boom")})
	m = next.(Model)

	if m.notice == "" || !m.fatal {
		t.Fatalf("expected fatal notice, got notice=%q fatal=%v", m.notice, m.fatal)
	}
	view := m.View()
	if !strings.Contains(view, "Could not load upcoming conferences") {
		t.Errorf("view missing error notice:\n%s", view)
	}
}

func TestLoadedSortsAndStartsTickers(t *testing.T) {
	m := newTestModel(t, &stubFeeds{})
	m = loaded(t, m, sampleRecords())

	if len(m.visible) != 3 {
		t.Fatalf("visible = %d, want 3", len(m.visible))
	}
	// Soonest future deadline first.
	if m.visible[0].ID != "acl" {
		t.Errorf("first visible = %s, want acl", m.visible[0].ID)
	}
	// The approximate record gets no ticker.
	if got := m.registry.Active(); got != 2 {
		t.Errorf("active tickers = %d, want 2", got)
	}
	if m.registry.Running("cvpr") {
		t.Error("approximate record should not have a ticker")
	}
}

func TestRefreshDrainsOldTickers(t *testing.T) {
	m := newTestModel(t, &stubFeeds{})
	m = loaded(t, m, sampleRecords())

	m.filters.NameFilter = "no such conference"
	m.refresh()

	if got := m.registry.Active(); got != 0 {
		t.Errorf("tickers after filtering everything out = %d, want 0", got)
	}
	if len(m.visible) != 0 {
		t.Errorf("visible = %d, want 0", len(m.visible))
	}
	view := m.View()
	if !strings.Contains(view, "No conferences match") {
		t.Errorf("view missing empty state:\n%s", view)
	}
}

func TestTagSelectionKeys(t *testing.T) {
	m := newTestModel(t, &stubFeeds{})
	m = loaded(t, m, sampleRecords())

	// Tags derive from the pre-tag-filter set, sorted: CV, ML, NLP.
	if len(m.tags) != 3 || m.tags[0] != "CV" {
		t.Fatalf("tags = %v", m.tags)
	}

	m, _ = press(t, m, 't')
	if m.focus != focusTags {
		t.Fatalf("focus = %v, want tags", m.focus)
	}

	// Move to ML and select it.
	m, _ = press(t, m, 'l')
	m, _ = press(t, m, 'l')
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)

	if m.filters.AllSelected() || !m.filters.TagSelected("ML") {
		t.Fatalf("selection = %v, want {ML}", m.filters.SelectedTags)
	}
	if len(m.visible) != 1 || m.visible[0].ID != "neurips" {
		t.Errorf("visible = %v, want only neurips", m.visible)
	}
	// Tag derivation ignores the tag selection itself.
	if len(m.tags) != 3 {
		t.Errorf("tags after selection = %v, want all three", m.tags)
	}

	// Toggling it off restores the sentinel.
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	if !m.filters.AllSelected() {
		t.Errorf("selection = %v, want sentinel restored", m.filters.SelectedTags)
	}
}

func TestArchiveLoadsOncePerSession(t *testing.T) {
	feeds := &stubFeeds{archive: []conference.Record{
		{ID: "old", Title: "Old Conf", Deadline: futureDeadline(-400 * 24 * time.Hour)},
	}}
	m := newTestModel(t, feeds)
	m = loaded(t, m, sampleRecords())

	m, cmd := press(t, m, 'p')
	if cmd == nil {
		t.Fatal("expected archive load command")
	}
	if m.archived != archiveLoading {
		t.Fatalf("archived = %v, want loading", m.archived)
	}

	next, _ := m.Update(ArchiveLoadedMsg{Records: feeds.archive})
	m = next.(Model)
	if m.archived != archiveLoaded {
		t.Fatalf("archived = %v, want loaded", m.archived)
	}
	if len(m.visible) != 4 {
		t.Errorf("visible with past = %d, want 4", len(m.visible))
	}
	// Past deadlines sort after all future ones.
	if m.visible[len(m.visible)-1].ID != "old" {
		t.Errorf("last visible = %s, want old", m.visible[len(m.visible)-1].ID)
	}

	// Toggling past off and on again must not refetch.
	m, _ = press(t, m, 'p')
	m, cmd = press(t, m, 'p')
	if cmd != nil {
		t.Error("expected no second archive load command")
	}
	if feeds.archiveHits != 0 {
		// The command was never executed in this test; hits only count
		// real fetches.
		t.Errorf("archiveHits = %d", feeds.archiveHits)
	}
}

func TestArchiveFailureDegradesToEmpty(t *testing.T) {
	m := newTestModel(t, &stubFeeds{})
	m = loaded(t, m, sampleRecords())
	m.filters.ShowPast = true
	m.archived = archiveLoading

	next, _ := m.Update(ArchiveLoadedMsg{Err: errors.New("boom")})
	m = next.(Model)

	if m.archived != archiveLoaded {
		t.Fatalf("archived = %v, want loaded sentinel even on failure", m.archived)
	}
	if len(m.archive) != 0 {
		t.Errorf("archive = %d records, want empty", len(m.archive))
	}
	if m.fatal {
		t.Error("archive failure must not be fatal")
	}
	if m.notice == "" {
		t.Error("expected a notice for the failed archive load")
	}
	// A key dismisses the notice and the app keeps running.
	m, _ = press(t, m, 'x')
	if m.notice != "" {
		t.Errorf("notice not dismissed: %q", m.notice)
	}
}

func TestApproxToggleKey(t *testing.T) {
	m := newTestModel(t, &stubFeeds{})
	m = loaded(t, m, sampleRecords())

	m, _ = press(t, m, 'a')
	if m.filters.ShowApproxFuture {
		t.Fatal("expected approx toggle off")
	}
	for _, rec := range m.visible {
		if rec.ID == "cvpr" {
			t.Error("future approximate record still visible with approx off")
		}
	}

	m, _ = press(t, m, 'a')
	if len(m.visible) != 3 {
		t.Errorf("visible = %d after re-enable, want 3", len(m.visible))
	}
}

func TestRatingCycleKey(t *testing.T) {
	records := []conference.Record{
		{ID: "a", Title: "A Conf", Rating: "A*", Deadline: futureDeadline(24 * time.Hour)},
		{ID: "b", Title: "B Conf", Rating: "B", Deadline: futureDeadline(48 * time.Hour)},
	}
	m := newTestModel(t, &stubFeeds{})
	m = loaded(t, m, records)

	// Cycle "" -> D -> C -> B.
	for range 3 {
		m, _ = press(t, m, 'r')
	}
	if m.filters.MinRating != "B" {
		t.Fatalf("MinRating = %q, want B", m.filters.MinRating)
	}
	if len(m.visible) != 2 {
		t.Errorf("visible at B = %d, want 2", len(m.visible))
	}

	// -> A excludes the B-rated conference.
	m, _ = press(t, m, 'r')
	if len(m.visible) != 1 || m.visible[0].ID != "a" {
		t.Errorf("visible at A = %v, want only a", m.visible)
	}
}

func TestNameFilterInput(t *testing.T) {
	m := newTestModel(t, &stubFeeds{})
	m = loaded(t, m, sampleRecords())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlF})
	m = next.(Model)
	if m.focus != focusName {
		t.Fatalf("focus = %v, want name input", m.focus)
	}

	for _, r := range "acl" {
		m, _ = press(t, m, r)
	}
	if m.filters.NameFilter != "acl" {
		t.Fatalf("NameFilter = %q, want acl", m.filters.NameFilter)
	}
	if len(m.visible) != 1 || m.visible[0].ID != "acl" {
		t.Errorf("visible = %v, want only acl", m.visible)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	if m.focus != focusCards {
		t.Errorf("focus after esc = %v, want cards", m.focus)
	}
}

func TestThemeToggle(t *testing.T) {
	m := newTestModel(t, &stubFeeds{})
	m = loaded(t, m, sampleRecords())

	m, _ = press(t, m, 'T')
	if m.theme.Name != "light" {
		t.Fatalf("theme = %q, want light", m.theme.Name)
	}
	m, _ = press(t, m, 'T')
	if m.theme.Name != "dark" {
		t.Errorf("theme = %q, want dark", m.theme.Name)
	}
}

func TestQuitDrainsTickers(t *testing.T) {
	m := newTestModel(t, &stubFeeds{})
	m = loaded(t, m, sampleRecords())
	if m.registry.Active() == 0 {
		t.Fatal("expected running tickers before quit")
	}

	_, cmd := press(t, m, 'q')
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if m.registry.Active() != 0 {
		t.Errorf("tickers after quit = %d, want 0", m.registry.Active())
	}
}

func TestDefaultFiltersShowEverything(t *testing.T) {
	m := newTestModel(t, &stubFeeds{})
	m = loaded(t, m, sampleRecords())

	if got := len(m.visible); got != len(sampleRecords()) {
		t.Errorf("visible = %d, want %d", got, len(sampleRecords()))
	}
	if !m.filters.AllSelected() || m.filters.ShowPast || !m.filters.ShowApproxFuture {
		t.Errorf("unexpected default filter state: %+v", m.filters)
	}
	if m.filters.MinH5 != nil || m.filters.MinRating != "" || m.filters.NameFilter != "" {
		t.Errorf("unexpected default thresholds: %+v", m.filters)
	}
	// Ensure defaults line up with the constructor's contract.
	if want := filter.NewState(); want.ShowApproxFuture != m.filters.ShowApproxFuture {
		t.Error("defaults drifted from filter.NewState")
	}
}
