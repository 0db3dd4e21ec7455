// internal/cli/models.go
package bleuboard

import (
	"github.com/spf13/cobra"
)

type modelsListOptions struct {
	search  string
	version string
}

type modelsWriteOptions struct {
	file  string
	image string
}

var (
	listOpts   modelsListOptions
	createOpts modelsWriteOptions
	updateOpts modelsWriteOptions
	showRaw    bool
)

// modelsCmd represents the 'models' command group for language model records.
var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Group commands for language model records",
	Long:  `The 'models' command groups subcommands that list, inspect, create, update and delete language model records.`,
}

// modelsListCmd implements 'models list', which prints records in creation order.
var modelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List language model records",
	Long:  `List language model records, optionally narrowed by a case-insensitive language search and a model version.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runModelsList(cmd, listOpts)
	},
}

// modelsShowCmd implements 'models show <id>'.
var modelsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one language model record",
	Long:  `Show one language model record with its captions paired to the sample images and its custom field values.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runModelsShow(cmd, args[0], showRaw)
	},
}

// modelsCreateCmd implements 'models create --file payload.json'.
var modelsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a language model record from a JSON payload",
	Long:  `Create a language model record from a JSON payload file ("-" reads stdin), optionally uploading a training image.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runModelsCreate(cmd, createOpts)
	},
}

// modelsUpdateCmd implements 'models update <id> --file payload.json'.
var modelsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Replace a language model record from a JSON payload",
	Long:  `Replace every field of a language model record with a JSON payload. The stored training image is kept unless a new one is given.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runModelsUpdate(cmd, args[0], updateOpts)
	},
}

// modelsDeleteCmd implements 'models delete <id>'.
var modelsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a language model record and its training image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runModelsDelete(cmd, args[0])
	},
}

func init() {
	modelsListCmd.Flags().StringVar(&listOpts.search, "search", "", "case-insensitive substring of the language name")
	modelsListCmd.Flags().StringVar(&listOpts.version, "version", "all", "model version to list (all, V1, V2)")

	modelsShowCmd.Flags().BoolVar(&showRaw, "raw", false, "pretty-print the stored record struct")

	modelsCreateCmd.Flags().StringVarP(&createOpts.file, "file", "f", "", "JSON payload file (- for stdin)")
	modelsCreateCmd.Flags().StringVar(&createOpts.image, "image", "", "training image to upload")
	_ = modelsCreateCmd.MarkFlagRequired("file")

	modelsUpdateCmd.Flags().StringVarP(&updateOpts.file, "file", "f", "", "JSON payload file (- for stdin)")
	modelsUpdateCmd.Flags().StringVar(&updateOpts.image, "image", "", "replacement training image to upload")
	_ = modelsUpdateCmd.MarkFlagRequired("file")

	modelsCmd.AddCommand(modelsListCmd, modelsShowCmd, modelsCreateCmd, modelsUpdateCmd, modelsDeleteCmd)
	rootCmd.AddCommand(modelsCmd)
}
