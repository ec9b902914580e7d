package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mindmapdigital/projectflow/internal/template"
)

func newNewCmd(configPath *string) *cobra.Command {
	var (
		starter string
		outPath string
		saveDB  bool
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a project document from a starter",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := template.StarterProject(starter, uuid.NewString, time.Now().UTC())
			if p == nil {
				return fmt.Errorf("unknown starter %q (available: %s)",
					starter, strings.Join(template.StarterNames(), ", "))
			}
			if saveDB {
				return storeProject(cmd, *configPath, p)
			}
			return writeDocument(cmd, p, outPath)
		},
	}

	cmd.Flags().StringVar(&starter, "starter", "sow", "starter to use (sow, proposal)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write document to file instead of stdout")
	cmd.Flags().BoolVar(&saveDB, "save", false, "store the document in the configured database")
	return cmd
}
