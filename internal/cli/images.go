// internal/cli/images.go
package bleuboard

import (
	"fmt"
	"text/tabwriter"

	"github.com/mwiater/bleuboard/internal/records"
	"github.com/spf13/cobra"
)

// imagesCmd represents the 'images' command group.
var imagesCmd = &cobra.Command{
	Use:   "images",
	Short: "Group commands for the sample caption images",
}

// imagesListCmd prints the fixed sample image table captions are written against.
var imagesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the sample images in caption order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		images := records.SampleImages()
		out := cmd.OutOrStdout()
		if JSONModeEnabled() {
			return writeJSON(out, images)
		}
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "SLOT\tID\tURL\tDESCRIPTION")
		for i, img := range images {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i+1, img.ID, img.URL, img.Description)
		}
		return w.Flush()
	},
}

func init() {
	imagesCmd.AddCommand(imagesListCmd)
	rootCmd.AddCommand(imagesCmd)
}
