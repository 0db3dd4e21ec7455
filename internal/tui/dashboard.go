// internal/tui/dashboard.go
// Package tui provides the interactive terminal dashboard.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mwiater/bleuboard/internal/analytics"
	"github.com/mwiater/bleuboard/internal/logging"
	"github.com/mwiater/bleuboard/internal/records"
	"github.com/mwiater/bleuboard/internal/util"
)

const (
	labelWidth   = 16
	chartWidth   = 30
	maxBleuScore = 10
)

// Source supplies the record snapshot rendered by the dashboard.
type Source interface {
	ListRecords(ctx context.Context) ([]records.ModelRecord, error)
}

// Options configures the dashboard.
type Options struct {
	Title string
	View  analytics.ViewState
}

// model is the Bubble Tea model behind the dashboard.
type model struct {
	ctx       context.Context
	source    Source
	title     string
	view      analytics.ViewState
	snapshot  []records.ModelRecord
	summary   analytics.Summary
	results   []records.ModelRecord
	search    textinput.Model
	searching bool
	spinner   spinner.Model
	isLoading bool
	loadedAt  time.Time
	err       error
	width     int
	height    int
}

// recordsLoadedMsg carries a fresh snapshot from the source.
type recordsLoadedMsg struct {
	records []records.ModelRecord
	at      time.Time
}

// recordsLoadErr is sent when the source fails.
type recordsLoadErr struct{ error }

func newModel(ctx context.Context, source Source, opts Options) *model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	ti := textinput.New()
	ti.Placeholder = "Search languages..."
	ti.Prompt = "Search: "
	ti.CharLimit = 64

	view := opts.View
	if view.Chart == "" {
		view.Chart = analytics.ChartBar
	}
	if view.Filter == "" {
		view.Filter = analytics.FilterAll
	}
	ti.SetValue(view.Query)

	title := opts.Title
	if title == "" {
		title = "Language Model Analytics"
	}

	m := &model{
		ctx:       ctx,
		source:    source,
		title:     title,
		view:      view,
		search:    ti,
		spinner:   s,
		isLoading: true,
	}
	m.recompute()
	return m
}

// loadRecordsCmd fetches the current snapshot from source.
func loadRecordsCmd(ctx context.Context, source Source) tea.Cmd {
	return func() tea.Msg {
		recs, err := source.ListRecords(ctx)
		if err != nil {
			return recordsLoadErr{error: err}
		}
		return recordsLoadedMsg{records: recs, at: time.Now()}
	}
}

// Init starts the spinner and the first load.
func (m *model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadRecordsCmd(m.ctx, m.source))
}

// recompute re-derives the summary and search results from the snapshot.
func (m *model) recompute() {
	m.summary, m.results = m.view.Apply(m.snapshot)
}

// Update handles keys, window size and load results.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.view.Filter = m.view.Filter.Next()
			m.recompute()
			return m, nil
		case "c":
			m.view.Chart = m.view.Chart.Toggle()
			return m, nil
		case "/":
			m.searching = true
			return m, m.search.Focus()
		case "esc":
			m.search.SetValue("")
			m.view.Query = ""
			m.recompute()
			return m, nil
		case "r":
			if m.isLoading {
				return m, nil
			}
			m.isLoading = true
			m.err = nil
			return m, tea.Batch(m.spinner.Tick, loadRecordsCmd(m.ctx, m.source))
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.search.Width = max(msg.Width-12, 10)
		return m, nil

	case recordsLoadedMsg:
		m.isLoading = false
		m.err = nil
		m.snapshot = msg.records
		m.loadedAt = msg.at
		m.recompute()
		logging.LogEvent("[DASHBOARD] loaded %d records filter=%s", len(msg.records), m.view.Filter)
		return m, nil

	case recordsLoadErr:
		m.isLoading = false
		m.err = msg.error
		logging.LogEvent("[DASHBOARD] load failed: %v", msg.error)
		return m, nil
	}

	if m.isLoading {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.view.Query = m.search.Value()
	m.recompute()
	return m, cmd
}

// View renders the dashboard.
func (m *model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.title))
	b.WriteString(filterBadge(m.view.Filter))
	b.WriteString(chartBadge(m.view.Chart))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}
	if m.isLoading {
		fmt.Fprintf(&b, "  %s Loading language models...\n", m.spinner.View())
		b.WriteString(m.helpView())
		return b.String()
	}

	b.WriteString(m.cardsView())
	b.WriteString("\n")
	b.WriteString(sectionStyle.Render(fmt.Sprintf("BLEU Score Comparison (%d languages)", len(m.summary.Filtered))))
	b.WriteString("\n")
	b.WriteString(rankedChart(m.summary.BarSeries, m.view.Chart))
	b.WriteString(sectionStyle.Render("Version Comparison"))
	b.WriteString("\n")
	b.WriteString(versionView(m.summary))
	b.WriteString(sectionStyle.Render("Languages"))
	b.WriteString("\n")
	b.WriteString(m.search.View())
	b.WriteString("\n")
	b.WriteString(resultsView(m.results))
	b.WriteString(m.helpView())
	return b.String()
}

func (m *model) cardsView() string {
	s := m.summary

	total := cardStyle.Render(fmt.Sprintf("%s\n%s\n%s",
		cardTitle.Render("Total Languages"),
		cardValue.Render(fmt.Sprintf("%d", s.Total)),
		mutedStyle.Render(fmt.Sprintf("V1: %d  V2: %d", s.CountFor(records.V1), s.CountFor(records.V2))),
	))

	overall := "N/A"
	if s.OverallAverage != 0 {
		overall = fmt.Sprintf("%.2f", s.OverallAverage)
	}
	average := cardStyle.Render(fmt.Sprintf("%s\n%s\n%s",
		cardTitle.Render("Average BLEU Score"),
		cardValue.Render(overall),
		fmt.Sprintf("V1 %.2f  V2 %.2f %s", s.AverageFor(records.V1), s.AverageFor(records.V2), trendArrow(s.Improved)),
	))

	topBody := cardValue.Render("N/A") + "\n" + mutedStyle.Render("No data available")
	if top := s.TopPerformer; top != nil {
		topBody = cardValue.Render(util.TruncateRunes(top.Language, 20)) + "\n" + TierBadge(top.BleuScore) + " " + VersionBadge(top.ModelVersion)
	}
	topCard := cardStyle.Render(cardTitle.Render("Top Performer") + "\n" + topBody)

	improvementBody := cardValue.Render("N/A") + "\n"
	if s.ImprovementPercent != 0 {
		style := upStyle
		if s.ImprovementPercent < 0 {
			style = downStyle
		}
		improvementBody = style.Bold(true).Render(fmt.Sprintf("%.1f%%", s.ImprovementPercent)) + "\n" +
			style.Render(util.Bar(s.ImprovementBarWidth(), 100, 20))
	}
	improvement := cardStyle.Render(cardTitle.Render("V2 Improvement") + "\n" + improvementBody)

	return lipgloss.JoinHorizontal(lipgloss.Top, total, average, topCard, improvement)
}

// rankedChart draws the ranked series as horizontal bars or as a dot plot.
func rankedChart(points []analytics.SeriesPoint, chart analytics.ChartType) string {
	if len(points) == 0 {
		return mutedStyle.Render("  No data available") + "\n"
	}
	var b strings.Builder
	for _, p := range points {
		var plot string
		if chart == analytics.ChartLine {
			plot = dotPlot(p.Value)
		} else {
			plot = lipgloss.NewStyle().Foreground(versionColors[p.Version]).Render(util.Bar(p.Value, maxBleuScore, chartWidth))
		}
		fmt.Fprintf(&b, "  %s %s %.2f\n", util.PadRunes(p.Label, labelWidth), plot, p.Value)
	}
	return b.String()
}

func dotPlot(value float64) string {
	pos := len([]rune(util.Bar(value, maxBleuScore, chartWidth)))
	if pos == 0 {
		return "●" + strings.Repeat(" ", chartWidth-1)
	}
	return mutedStyle.Render(strings.Repeat("·", pos-1)) + "●" + strings.Repeat(" ", chartWidth-pos)
}

func versionView(s analytics.Summary) string {
	var b strings.Builder
	for _, stat := range s.VersionComparison {
		fmt.Fprintf(&b, "  %s avg %.2f %s  %d models (%.1f%%)\n",
			VersionBadge(stat.Label),
			stat.Average,
			util.PadRunes(util.Bar(stat.Average, maxBleuScore, 20), 20),
			stat.Count,
			s.PercentFor(stat.Label),
		)
	}
	return b.String()
}

func resultsView(results []records.ModelRecord) string {
	if len(results) == 0 {
		return mutedStyle.Render("  No languages match") + "\n"
	}
	var b strings.Builder
	for _, r := range results {
		fmt.Fprintf(&b, "  %s %s %s\n", util.PadRunes(r.Language, labelWidth), VersionBadge(r.ModelVersion), TierBadge(r.BleuScore))
	}
	return b.String()
}

func (m *model) helpView() string {
	help := "tab: version • c: chart • /: search • esc: clear search • r: reload • q: quit"
	if m.searching {
		help = "enter/esc: done searching • ctrl+c: quit"
	}
	if !m.loadedAt.IsZero() {
		help += " • loaded " + m.loadedAt.Format("15:04:05")
	}
	return "\n" + mutedStyle.Render(help)
}

// Run starts the dashboard and blocks until the user quits.
func Run(ctx context.Context, source Source, opts Options) error {
	m := newModel(ctx, source, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}
