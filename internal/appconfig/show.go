package appconfig

import (
	"fmt"
	"io"

	"github.com/mwiater/bleuboard/internal/util"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg *Config, fallback Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	if cfg == nil {
		cfg = &fallback
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Debug:          %v\n", cfg.Debug)
	fmt.Fprintf(out, "  JSON Mode:      %v\n", cfg.JSONMode)
	fmt.Fprintf(out, "  Database:       %s\n", cfg.DatabaseFilePath())
	fmt.Fprintf(out, "  Image Dir:      %s\n", cfg.ImageDirectory())
	if base := cfg.ImageURLBase(); base != "" {
		fmt.Fprintf(out, "  Image Base URL: %s\n", base)
	} else {
		fmt.Fprintln(out, "  Image Base URL: (file URLs)")
	}
	fmt.Fprintf(out, "  Caption Slots:  %d\n", cfg.CaptionCount())
	fmt.Fprintf(out, "  Log File:       %s\n", cfg.LogFilePath())
}

// DumpConfig pretty-prints the raw configuration struct.
func DumpConfig(out io.Writer, cfg Config) error {
	return util.Dump(out, cfg)
}
