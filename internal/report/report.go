// internal/report/report.go
// Package report renders the analytics summary as a standalone HTML dashboard.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/mwiater/bleuboard/internal/analytics"
	"github.com/mwiater/bleuboard/internal/records"
)

// DefaultPath is where the dashboard is written when no path is given.
const DefaultPath = "bleuboardData/reports/dashboard.html"

// Options controls rendering.
type Options struct {
	Title string
	Chart analytics.ChartType
}

type dashboardData struct {
	Title       string
	Chart       analytics.ChartType
	FilterLabel string
	Total       int
	V1Count     int
	V2Count     int
	Overall     string
	V1Average   string
	V2Average   string
	Improved    bool
	Top         *topCard
	Improvement *improvementCard
	FilteredLen int
	ChartJSON   template.JS
}

type topCard struct {
	Language string
	Score    string
	Version  records.Version
	Tier     analytics.Tier
}

type improvementCard struct {
	Percent  string
	Positive bool
	BarWidth string
}

type chartPayload struct {
	Chart             analytics.ChartType           `json:"chart"`
	Bars              []analytics.SeriesPoint       `json:"bars"`
	VersionComparison []analytics.VersionStat       `json:"versionComparison"`
	Distribution      []analytics.DistributionSlice `json:"distribution"`
}

// Render builds the HTML page for summary.
func Render(summary analytics.Summary, opts Options) (string, error) {
	if opts.Title == "" {
		opts.Title = "bleuboard: Language Model Analytics"
	}
	if opts.Chart == "" {
		opts.Chart = analytics.ChartBar
	}

	payload, err := json.Marshal(chartPayload{
		Chart:             opts.Chart,
		Bars:              nonNil(summary.BarSeries),
		VersionComparison: summary.VersionComparison,
		Distribution:      summary.Distribution,
	})
	if err != nil {
		return "", err
	}

	view := dashboardData{
		Title:       opts.Title,
		Chart:       opts.Chart,
		FilterLabel: summary.Filter.Label(),
		Total:       summary.Total,
		V1Count:     summary.CountFor(records.V1),
		V2Count:     summary.CountFor(records.V2),
		Overall:     formatScore(summary.OverallAverage),
		V1Average:   fmt.Sprintf("%.2f", summary.AverageFor(records.V1)),
		V2Average:   fmt.Sprintf("%.2f", summary.AverageFor(records.V2)),
		Improved:    summary.Improved,
		FilteredLen: len(summary.Filtered),
		ChartJSON:   template.JS(payload),
	}
	if top := summary.TopPerformer; top != nil {
		view.Top = &topCard{
			Language: top.Language,
			Score:    fmt.Sprintf("%.2f", top.BleuScore),
			Version:  top.ModelVersion,
			Tier:     analytics.ScoreTier(top.BleuScore),
		}
	}
	if summary.ImprovementPercent != 0 {
		view.Improvement = &improvementCard{
			Percent:  fmt.Sprintf("%.1f%%", summary.ImprovementPercent),
			Positive: summary.ImprovementPercent >= 0,
			BarWidth: fmt.Sprintf("%.1f%%", summary.ImprovementBarWidth()),
		}
	}

	var buf bytes.Buffer
	if err := dashboardTemplate.Execute(&buf, view); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteFile writes html to path, creating parent directories.
func WriteFile(path, html string) error {
	if path == "" {
		path = DefaultPath
	}
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("unable to create directory for %s: %w", path, err)
		}
	}
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return fmt.Errorf("unable to write HTML report %s: %w", path, err)
	}
	return nil
}

func formatScore(v float64) string {
	if v == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", v)
}

func nonNil(points []analytics.SeriesPoint) []analytics.SeriesPoint {
	if points == nil {
		return []analytics.SeriesPoint{}
	}
	return points
}

var dashboardTemplate = template.Must(template.New("dashboard").Parse(dashboardTemplateHTML))

const dashboardTemplateHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ .Title }}</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css">
  <style>
    :root {
      --primary: #334155;
      --secondary: #64748B;
      --success: #10B981;
      --danger: #EF4444;
      --light: #F1F5F9;
      --border: #E2E8F0;
    }
    body { background-color: var(--light); }
    .navbar-dark { background-color: var(--primary) !important; }
    .stat-card { border-left: 4px solid var(--primary); }
    .stat-card.secondary { border-left-color: var(--secondary); }
    .stat-card.success { border-left-color: var(--success); }
    .stat-card.info { border-left-color: #3B82F6; }
    .stat-value { font-size: 2.25rem; font-weight: 700; }
    .trend-up { color: var(--success); }
    .trend-down { color: var(--danger); }
    .improvement-track { background: var(--border); border-radius: 999px; height: 8px; }
    .improvement-bar { border-radius: 999px; height: 8px; }
    .chart-box { position: relative; height: 400px; }
    .chart-box.small { height: 300px; }
  </style>
</head>
<body>
  <nav class="navbar navbar-dark mb-4">
    <div class="container-fluid">
      <span class="navbar-brand mb-0 h1">{{ .Title }}</span>
    </div>
  </nav>
  <main class="container-fluid">
    <div class="row g-4 mb-4">
      <div class="col-md-6 col-lg-3">
        <div class="card stat-card h-100">
          <div class="card-body">
            <h6 class="card-title">Total Languages</h6>
            <div class="stat-value">{{ .Total }}</div>
            <p class="text-muted mb-0">{{ .V1Count }} on V1, {{ .V2Count }} on V2</p>
          </div>
        </div>
      </div>
      <div class="col-md-6 col-lg-3">
        <div class="card stat-card secondary h-100">
          <div class="card-body">
            <h6 class="card-title">Average BLEU Score</h6>
            <div class="stat-value">{{ .Overall }}</div>
            <p class="mb-0">V1: {{ .V1Average }} &middot; V2: {{ .V2Average }}
              {{ if .Improved }}<span class="trend-up">&#9650;</span>{{ else }}<span class="trend-down">&#9660;</span>{{ end }}</p>
          </div>
        </div>
      </div>
      <div class="col-md-6 col-lg-3">
        <div class="card stat-card success h-100">
          <div class="card-body">
            <h6 class="card-title">Top Performer</h6>
            {{ with .Top }}
            <div class="stat-value text-truncate">{{ .Language }}</div>
            <p class="mb-0">BLEU: <span class="trend-up">{{ .Score }}</span> <span class="badge bg-secondary">{{ .Version }}</span> <span class="badge bg-light text-dark">{{ .Tier }}</span></p>
            {{ else }}
            <div class="stat-value">N/A</div>
            <p class="text-muted mb-0">No data available</p>
            {{ end }}
          </div>
        </div>
      </div>
      <div class="col-md-6 col-lg-3">
        <div class="card stat-card info h-100">
          <div class="card-body">
            <h6 class="card-title">V2 Improvement</h6>
            {{ with .Improvement }}
            <div class="stat-value {{ if .Positive }}trend-up{{ else }}trend-down{{ end }}">{{ .Percent }}</div>
            <div class="improvement-track">
              <div class="improvement-bar" style="width: {{ .BarWidth }}; background: {{ if .Positive }}var(--success){{ else }}var(--danger){{ end }};"></div>
            </div>
            {{ else }}
            <div class="stat-value">N/A</div>
            {{ end }}
          </div>
        </div>
      </div>
    </div>

    <div class="card mb-4">
      <div class="card-header">
        <strong>BLEU Score Comparison</strong>
        <span class="badge bg-light text-dark">{{ .FilteredLen }} Languages</span>
        <span class="badge bg-secondary">{{ .FilterLabel }}</span>
      </div>
      <div class="card-body">
        <div class="chart-box">
          <canvas id="rankedChart" aria-label="BLEU score by language" role="img"></canvas>
          <p id="rankedEmpty" class="text-muted text-center d-none">No data available</p>
        </div>
      </div>
    </div>

    <div class="row g-4 mb-4">
      <div class="col-lg-6">
        <div class="card h-100">
          <div class="card-header"><strong>Version Comparison</strong></div>
          <div class="card-body chart-box small">
            <canvas id="versionChart" aria-label="Average BLEU by version" role="img"></canvas>
          </div>
        </div>
      </div>
      <div class="col-lg-6">
        <div class="card h-100">
          <div class="card-header"><strong>Version Distribution</strong></div>
          <div class="card-body chart-box small">
            <canvas id="distributionChart" aria-label="Records per version" role="img"></canvas>
          </div>
        </div>
      </div>
    </div>
  </main>
  <script src="https://cdn.jsdelivr.net/npm/chart.js@4.4.2/dist/chart.umd.min.js"></script>
  <script>
    var dashboard = {{ .ChartJSON }};
  </script>
  <script>
    (function () {
      var palette = { V1: '#334155', V2: '#64748B' };

      function buildRankedChart() {
        var canvas = document.getElementById('rankedChart');
        if (!dashboard.bars.length) {
          canvas.classList.add('d-none');
          document.getElementById('rankedEmpty').classList.remove('d-none');
          return;
        }
        new Chart(canvas, {
          type: dashboard.chart === 'line' ? 'line' : 'bar',
          data: {
            labels: dashboard.bars.map(function (p) { return p.label; }),
            datasets: [{
              label: 'BLEU Score',
              data: dashboard.bars.map(function (p) { return p.value; }),
              backgroundColor: dashboard.bars.map(function (p) { return palette[p.version] || '#3B82F6'; }),
              borderColor: '#334155'
            }]
          },
          options: { maintainAspectRatio: false }
        });
      }

      function buildVersionChart() {
        new Chart(document.getElementById('versionChart'), {
          type: 'bar',
          data: {
            labels: dashboard.versionComparison.map(function (v) { return v.label; }),
            datasets: [
              { label: 'Average BLEU', data: dashboard.versionComparison.map(function (v) { return v.average; }), backgroundColor: '#334155' },
              { label: 'Languages', data: dashboard.versionComparison.map(function (v) { return v.count; }), backgroundColor: '#94A3B8' }
            ]
          },
          options: { maintainAspectRatio: false }
        });
      }

      function buildDistributionChart() {
        new Chart(document.getElementById('distributionChart'), {
          type: 'pie',
          data: {
            labels: dashboard.distribution.map(function (d) { return d.label; }),
            datasets: [{
              data: dashboard.distribution.map(function (d) { return d.value; }),
              backgroundColor: dashboard.distribution.map(function (d) { return palette[d.label]; })
            }]
          },
          options: { maintainAspectRatio: false }
        });
      }

      buildRankedChart();
      buildVersionChart();
      buildDistributionChart();
    })();
  </script>
</body>
</html>
`
