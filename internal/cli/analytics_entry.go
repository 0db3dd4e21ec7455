package bleuboard

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/mwiater/bleuboard/internal/analytics"
	"github.com/mwiater/bleuboard/internal/records"
	"github.com/mwiater/bleuboard/internal/report"
	"github.com/mwiater/bleuboard/internal/store"
	"github.com/mwiater/bleuboard/internal/util"
	"github.com/spf13/cobra"
)

var (
	upText   = color.New(color.FgGreen).SprintFunc()
	downText = color.New(color.FgRed).SprintFunc()
	headText = color.New(color.Bold).SprintFunc()
)

func runAnalytics(cmd *cobra.Command, opts analyticsOptions) error {
	filter, err := analytics.ParseVersionFilter(opts.version)
	if err != nil {
		return err
	}
	chart, err := analytics.ParseChartType(opts.chart)
	if err != nil {
		return err
	}

	var all []records.ModelRecord
	err = withStore(cmd.Context(), func(s *store.Store) error {
		all, err = s.ListRecords(cmd.Context())
		return err
	})
	if err != nil {
		return err
	}

	view := analytics.ViewState{Chart: chart, Filter: filter}
	summary, _ := view.Apply(all)
	out := cmd.OutOrStdout()

	if opts.htmlDef {
		opts.htmlPath = report.DefaultPath
	}
	if opts.htmlPath != "" {
		html, err := report.Render(summary, report.Options{Chart: chart})
		if err != nil {
			return fmt.Errorf("failed generating HTML report: %w", err)
		}
		if err := report.WriteFile(opts.htmlPath, html); err != nil {
			return err
		}
		if !JSONModeEnabled() {
			fmt.Fprintf(out, "Report written to %s\n\n", opts.htmlPath)
		}
	}

	if JSONModeEnabled() {
		return writeJSON(out, summary)
	}
	printSummary(out, summary)
	return nil
}

func printSummary(out io.Writer, s analytics.Summary) {
	fmt.Fprintln(out, headText("Language Model Analytics"))
	fmt.Fprintf(out, "  Total languages:  %d (V1 %d, V2 %d)\n", s.Total, s.CountFor(records.V1), s.CountFor(records.V2))
	if s.Total == 0 {
		fmt.Fprintln(out, "  Average BLEU:     N/A")
	} else {
		fmt.Fprintf(out, "  Average BLEU:     %.2f\n", s.OverallAverage)
	}
	for _, stat := range s.VersionAverages {
		fmt.Fprintf(out, "  %s average:       %.2f (%.1f%% of models)\n", stat.Label, stat.Average, s.PercentFor(stat.Label))
	}

	switch {
	case s.ImprovementPercent == 0:
		fmt.Fprintln(out, "  V2 improvement:   N/A")
	case s.Improved:
		fmt.Fprintf(out, "  V2 improvement:   %s\n", upText(fmt.Sprintf("▲ %.1f%%", s.ImprovementPercent)))
	default:
		fmt.Fprintf(out, "  V2 improvement:   %s\n", downText(fmt.Sprintf("▼ %.1f%%", s.ImprovementPercent)))
	}

	if top := s.TopPerformer; top != nil {
		fmt.Fprintf(out, "  Top performer:    %s (%s, BLEU %.2f, %s)\n", top.Language, top.ModelVersion, top.BleuScore, analytics.ScoreTier(top.BleuScore))
	} else {
		fmt.Fprintln(out, "  Top performer:    N/A")
	}

	fmt.Fprintf(out, "\n%s (%s, %d languages)\n", headText("BLEU Score Comparison"), s.Filter.Label(), len(s.Filtered))
	if len(s.BarSeries) == 0 {
		fmt.Fprintln(out, "  No data available")
		return
	}
	for _, p := range s.BarSeries {
		fmt.Fprintf(out, "  %s %-3s %s %.2f\n", util.PadRunes(p.Label, 16), p.Version, util.PadRunes(util.Bar(p.Value, 10, 30), 30), p.Value)
	}
}
