// internal/cli/analytics.go
package bleuboard

import (
	"github.com/mwiater/bleuboard/internal/report"
	"github.com/spf13/cobra"
)

type analyticsOptions struct {
	version  string
	chart    string
	htmlPath string
	htmlDef  bool
}

var analyticsOpts analyticsOptions

// analyticsCmd implements 'analytics', which prints the dashboard summary
// and optionally writes it as an HTML report.
var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Summarize BLEU scores across model versions",
	Long: `The 'analytics' command prints the dashboard summary: totals, version averages,
the V2 improvement over V1, the top performer and the ranked BLEU series for the
selected version. With --html the same summary is written as a standalone report.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalytics(cmd, analyticsOpts)
	},
}

func init() {
	analyticsCmd.Flags().StringVar(&analyticsOpts.version, "version", "all", "version shown in the ranked series (all, V1, V2)")
	analyticsCmd.Flags().StringVar(&analyticsOpts.chart, "chart", "bar", "chart type for the HTML report (bar, line)")
	analyticsCmd.Flags().StringVar(&analyticsOpts.htmlPath, "html", "", "write an HTML report to this path")
	analyticsCmd.Flags().BoolVar(&analyticsOpts.htmlDef, "html-default", false, "write the HTML report to "+report.DefaultPath)
	analyticsCmd.MarkFlagsMutuallyExclusive("html", "html-default")

	rootCmd.AddCommand(analyticsCmd)
}
