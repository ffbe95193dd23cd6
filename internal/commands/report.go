package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fatura-dev/fatura/internal/priority"
)

func newReportCommand() *cobra.Command {
	var dir string
	var top int

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Rank merchants by savings priority",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runReport(absDir, top)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "workspace directory")
	cmd.Flags().IntVar(&top, "top", 10, "number of merchants to show, 0 for all")

	return cmd
}

func runReport(dir string, top int) error {
	_, table, err := loadWorkspace(dir)
	if err != nil {
		return err
	}

	scores := priority.Score(table)
	priority.WriteReport(os.Stdout, scores, top)
	return nil
}
