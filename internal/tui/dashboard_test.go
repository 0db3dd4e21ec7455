// internal/tui/dashboard_test.go
package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mwiater/bleuboard/internal/analytics"
	"github.com/mwiater/bleuboard/internal/records"
)

type fakeSource struct {
	records []records.ModelRecord
	err     error
	calls   int
}

func (f *fakeSource) ListRecords(ctx context.Context) ([]records.ModelRecord, error) {
	f.calls++
	return f.records, f.err
}

func sampleRecords() []records.ModelRecord {
	return []records.ModelRecord{
		{ID: "1", Language: "English", ModelVersion: records.V1, BleuScore: 7},
		{ID: "2", Language: "English", ModelVersion: records.V2, BleuScore: 9},
		{ID: "3", Language: "Hindi", ModelVersion: records.V1, BleuScore: 5},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loadedModel(t *testing.T) (*model, *fakeSource) {
	t.Helper()
	src := &fakeSource{records: sampleRecords()}
	m := newModel(context.Background(), src, Options{})
	updated, _ := m.Update(recordsLoadedMsg{records: src.records, at: time.Now()})
	return updated.(*model), src
}

func TestInitLoadsRecords(t *testing.T) {
	src := &fakeSource{records: sampleRecords()}
	m := newModel(context.Background(), src, Options{})
	if !m.isLoading {
		t.Fatal("expected model to start loading")
	}
	msg := loadRecordsCmd(m.ctx, src)()
	loaded, ok := msg.(recordsLoadedMsg)
	if !ok {
		t.Fatalf("expected recordsLoadedMsg, got %T", msg)
	}
	updated, _ := m.Update(loaded)
	m = updated.(*model)
	if m.isLoading || m.summary.Total != 3 || len(m.results) != 3 {
		t.Fatalf("unexpected state after load: loading=%v total=%d results=%d", m.isLoading, m.summary.Total, len(m.results))
	}
}

func TestLoadErrorIsRendered(t *testing.T) {
	src := &fakeSource{err: errors.New("database locked")}
	m := newModel(context.Background(), src, Options{})
	msg := loadRecordsCmd(m.ctx, src)()
	updated, _ := m.Update(msg)
	m = updated.(*model)
	if m.err == nil || m.isLoading {
		t.Fatalf("expected error state, got err=%v loading=%v", m.err, m.isLoading)
	}
	if !strings.Contains(m.View(), "database locked") {
		t.Fatal("expected error in view")
	}
}

func TestQuitKeys(t *testing.T) {
	m, _ := loadedModel(t)
	if _, cmd := m.Update(key("q")); cmd == nil {
		t.Fatal("expected quit command for q")
	}
	if _, cmd := m.Update(key("ctrl+c")); cmd == nil {
		t.Fatal("expected quit command for ctrl+c")
	}
}

func TestTabCyclesVersionFilter(t *testing.T) {
	m, _ := loadedModel(t)

	want := []analytics.VersionFilter{analytics.FilterFor(records.V1), analytics.FilterFor(records.V2), analytics.FilterAll}
	for _, w := range want {
		updated, _ := m.Update(key("tab"))
		m = updated.(*model)
		if m.view.Filter != w {
			t.Fatalf("expected filter %s, got %s", w, m.view.Filter)
		}
	}

	updated, _ := m.Update(key("tab"))
	m = updated.(*model)
	if len(m.summary.Filtered) != 2 {
		t.Fatalf("expected 2 V1 records, got %d", len(m.summary.Filtered))
	}
	if m.summary.TopPerformer == nil || m.summary.TopPerformer.BleuScore != 9 {
		t.Fatalf("expected global top performer, got %+v", m.summary.TopPerformer)
	}
}

func TestChartToggle(t *testing.T) {
	m, _ := loadedModel(t)
	updated, _ := m.Update(key("c"))
	m = updated.(*model)
	if m.view.Chart != analytics.ChartLine {
		t.Fatalf("expected line chart, got %s", m.view.Chart)
	}
	if !strings.Contains(m.View(), "●") {
		t.Fatal("expected dot plot in line mode")
	}
	updated, _ = m.Update(key("c"))
	m = updated.(*model)
	if m.view.Chart != analytics.ChartBar {
		t.Fatalf("expected bar chart, got %s", m.view.Chart)
	}
}

func TestSearchMode(t *testing.T) {
	m, _ := loadedModel(t)

	updated, _ := m.Update(key("/"))
	m = updated.(*model)
	if !m.searching {
		t.Fatal("expected search mode")
	}

	updated, _ = m.Update(key("q"))
	m = updated.(*model)
	if !m.searching {
		t.Fatal("q must be typed into the search box while searching")
	}
	if m.view.Query != "q" || len(m.results) != 0 {
		t.Fatalf("expected query q with no results, got %q (%d)", m.view.Query, len(m.results))
	}

	m.search.SetValue("")
	updated, _ = m.Update(key("HIN"))
	m = updated.(*model)
	if m.view.Query != "HIN" || len(m.results) != 1 || m.results[0].Language != "Hindi" {
		t.Fatalf("unexpected search results for %q: %+v", m.view.Query, m.results)
	}

	updated, _ = m.Update(key("enter"))
	m = updated.(*model)
	if m.searching {
		t.Fatal("expected search mode to end")
	}
	if m.view.Query != "HIN" {
		t.Fatal("expected query kept after leaving search")
	}

	updated, _ = m.Update(key("esc"))
	m = updated.(*model)
	if m.view.Query != "" || len(m.results) != 3 {
		t.Fatalf("expected esc to clear search, got %q (%d)", m.view.Query, len(m.results))
	}
}

func TestReloadRefetches(t *testing.T) {
	m, src := loadedModel(t)
	updated, cmd := m.Update(key("r"))
	m = updated.(*model)
	if !m.isLoading || cmd == nil {
		t.Fatalf("expected reload to start loading, loading=%v", m.isLoading)
	}
	if msg := loadRecordsCmd(m.ctx, src)(); msg == nil {
		t.Fatal("expected load message")
	}
	if src.calls == 0 {
		t.Fatal("expected source to be queried")
	}
}

func TestViewRendersCards(t *testing.T) {
	m, _ := loadedModel(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(*model)

	view := m.View()
	for _, want := range []string{"Total Languages", "Average BLEU Score", "Top Performer", "V2 Improvement", "Hindi", "50.0%"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected view to contain %q", want)
		}
	}
}

func TestViewEmptyCollection(t *testing.T) {
	src := &fakeSource{}
	m := newModel(context.Background(), src, Options{})
	updated, _ := m.Update(recordsLoadedMsg{})
	m = updated.(*model)
	view := m.View()
	if !strings.Contains(view, "No data available") || !strings.Contains(view, "N/A") {
		t.Fatal("expected empty-state rendering")
	}
}

func TestTierBadgeUsesScore(t *testing.T) {
	if got := TierBadge(8.456); !strings.Contains(got, "8.46") {
		t.Fatalf("expected formatted score, got %q", got)
	}
}
