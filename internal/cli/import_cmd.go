package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mindmapdigital/projectflow/internal/importer"
	"github.com/mindmapdigital/projectflow/internal/store"
)

func newImportCmd(configPath *string) *cobra.Command {
	var (
		name      string
		ganttPath string
		raciPath  string
		outPath   string
		saveDB    bool
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Normalize chart JSON files into a project document",
		Long: `Reads Gantt and/or RACI JSON in any of the recognized shapes,
normalizes it, and emits a complete project document. With --save the
document is written to the configured database instead of stdout.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ganttPath == "" && raciPath == "" {
				return fmt.Errorf("at least one of --gantt or --raci is required")
			}

			norm := importer.New()
			st := store.New()
			st.CreateProject(name)

			if ganttPath != "" {
				data, err := os.ReadFile(ganttPath)
				if err != nil {
					return fmt.Errorf("reading gantt file: %w", err)
				}
				result, err := norm.ImportGantt(data)
				if err != nil {
					return fmt.Errorf("importing gantt: %w", err)
				}
				st.ReplaceGanttChart(result.Phases, result.TimelineMonths, result.TimelineUnit, result.Style)
			}

			if raciPath != "" {
				data, err := os.ReadFile(raciPath)
				if err != nil {
					return fmt.Errorf("reading raci file: %w", err)
				}
				result, err := norm.ImportRACI(data)
				if err != nil {
					return fmt.Errorf("importing raci: %w", err)
				}
				st.ReplaceRACIMatrix(result.Tasks, result.Stakeholders, result.Assignments)
			}

			if saveDB {
				return storeProject(cmd, *configPath, st.Project())
			}
			return writeDocument(cmd, st.Project(), outPath)
		},
	}

	cmd.Flags().StringVar(&name, "name", "Imported Project", "project name")
	cmd.Flags().StringVar(&ganttPath, "gantt", "", "path to Gantt JSON")
	cmd.Flags().StringVar(&raciPath, "raci", "", "path to RACI JSON")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write document to file instead of stdout")
	cmd.Flags().BoolVar(&saveDB, "save", false, "store the document in the configured database")
	return cmd
}
