package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mindmapdigital/projectflow/internal/template"
)

func newTemplatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the built-in Gantt style packs",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tDESCRIPTION")
			for _, pack := range template.BuiltinStylePacks() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", pack.ID, pack.Name, pack.Category, pack.Description)
			}
			return w.Flush()
		},
	}
}
