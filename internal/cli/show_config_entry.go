package bleuboard

import (
	"github.com/mwiater/bleuboard/internal/appconfig"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func runShowConfig(cmd *cobra.Command, raw bool) error {
	out := cmd.OutOrStdout()
	cfg := GetConfig()

	if JSONModeEnabled() && cfg != nil {
		return writeJSON(out, cfg)
	}
	if raw && cfg != nil {
		return appconfig.DumpConfig(out, *cfg)
	}

	file := ""
	if cfg != nil {
		file = cfg.ConfigPath
	}
	appconfig.ShowConfig(out, file, cfg, appconfig.Config{
		Debug:    viper.GetBool("debug"),
		JSONMode: viper.GetBool("jsonMode"),
	})
	return nil
}
