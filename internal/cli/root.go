// Package cli defines the projectflow command tree.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "projectflow",
		Short:         "Project planning documents: Gantt, RACI and diagrams",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (YAML)")

	root.AddCommand(newServeCmd(&configPath))
	root.AddCommand(newImportCmd(&configPath))
	root.AddCommand(newNewCmd(&configPath))
	root.AddCommand(newTemplatesCmd())

	return root
}
