// internal/cli/show_config.go
package bleuboard

import (
	"github.com/spf13/cobra"
)

var showConfigRaw bool

// showConfigCmd implements 'show config', which prints the merged configuration.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings ensuring that the JSON configs are loaded properly and overriden by flags accordingly.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShowConfig(cmd, showConfigRaw)
	},
}

func init() {
	showConfigCmd.Flags().BoolVar(&showConfigRaw, "raw", false, "pretty-print the configuration struct")
	showCmd.AddCommand(showConfigCmd)
}
