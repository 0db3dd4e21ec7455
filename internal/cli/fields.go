// internal/cli/fields.go
package bleuboard

import (
	"fmt"
	"text/tabwriter"

	"github.com/mwiater/bleuboard/internal/store"
	"github.com/spf13/cobra"
)

var fieldAddOpts struct {
	name        string
	placeholder string
}

// fieldsCmd represents the 'fields' command group for custom field definitions.
var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "Group commands for custom field definitions",
	Long:  `The 'fields' command groups subcommands that manage the user-defined fields every record may carry.`,
}

var fieldsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List custom field definitions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.Context(), func(s *store.Store) error {
			defs, err := s.ListCustomFields(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if JSONModeEnabled() {
				return writeJSON(out, defs)
			}
			if len(defs) == 0 {
				fmt.Fprintln(out, "No custom fields defined.")
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPLACEHOLDER")
			for _, d := range defs {
				fmt.Fprintf(w, "%s\t%s\t%s\n", d.ID, d.Name, d.Placeholder)
			}
			return w.Flush()
		})
	},
}

var fieldsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Define a new custom field",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.Context(), func(s *store.Store) error {
			def, err := s.CreateCustomField(cmd.Context(), fieldAddOpts.name, fieldAddOpts.placeholder)
			if err != nil {
				return err
			}
			if JSONModeEnabled() {
				return writeJSON(cmd.OutOrStdout(), def)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added custom field %q (%s)\n", def.Name, def.ID)
			return nil
		})
	},
}

var fieldsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a custom field definition",
	Long:  `Remove a custom field definition. Values already stored on records are kept but no longer displayed.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.Context(), func(s *store.Store) error {
			if err := s.DeleteCustomField(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted custom field %s\n", args[0])
			return nil
		})
	},
}

func init() {
	fieldsAddCmd.Flags().StringVar(&fieldAddOpts.name, "name", "", "field name")
	fieldsAddCmd.Flags().StringVar(&fieldAddOpts.placeholder, "placeholder", "", "hint shown for empty values")
	_ = fieldsAddCmd.MarkFlagRequired("name")

	fieldsCmd.AddCommand(fieldsListCmd, fieldsAddCmd, fieldsDeleteCmd)
	rootCmd.AddCommand(fieldsCmd)
}
