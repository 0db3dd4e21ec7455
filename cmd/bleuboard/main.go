// cmd/bleuboard/main.go
package main

import (
	cmd "github.com/mwiater/bleuboard/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// main starts the bleuboard CLI by delegating to the cobra root command.
func main() {
	cmd.SetVersionInfo(version, commit, date)
	cmd.Execute()
}
