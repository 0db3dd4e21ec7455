// internal/cli/dashboard.go
package bleuboard

import (
	"github.com/mwiater/bleuboard/internal/analytics"
	"github.com/mwiater/bleuboard/internal/store"
	"github.com/mwiater/bleuboard/internal/tui"
	"github.com/spf13/cobra"
)

var dashboardOpts analyticsOptions

// startDashboard is swapped in tests so the full-screen program is not started.
var startDashboard = tui.Run

// dashboardCmd represents the 'dashboard' command.
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the interactive BLEU score dashboard",
	Long:  `The 'dashboard' command opens a full-screen dashboard with stat cards, the ranked BLEU chart and a language search.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := analytics.ParseVersionFilter(dashboardOpts.version)
		if err != nil {
			return err
		}
		chart, err := analytics.ParseChartType(dashboardOpts.chart)
		if err != nil {
			return err
		}
		return withStore(cmd.Context(), func(s *store.Store) error {
			return startDashboard(cmd.Context(), s, tui.Options{
				View: analytics.ViewState{Chart: chart, Filter: filter},
			})
		})
	},
}

func init() {
	dashboardCmd.Flags().StringVar(&dashboardOpts.version, "version", "all", "initial version filter (all, V1, V2)")
	dashboardCmd.Flags().StringVar(&dashboardOpts.chart, "chart", "bar", "initial chart type (bar, line)")
	rootCmd.AddCommand(dashboardCmd)
}
