package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fatura-dev/fatura/internal/buildinfo"
	"github.com/fatura-dev/fatura/internal/config"
	"github.com/fatura-dev/fatura/internal/statement"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "fatura",
		Short:   "Credit card statement analysis",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newEnrichCommand())
	rootCmd.AddCommand(newSummaryCommand())
	rootCmd.AddCommand(newReportCommand())
	rootCmd.AddCommand(newAskCommand())

	return rootCmd
}

// loadWorkspace reads the workspace config and opens the enriched
// statement for the analysis commands.
func loadWorkspace(dir string) (*config.Config, *statement.Table, error) {
	cfg, err := config.Load(filepath.Join(dir, "fatura.yaml"))
	if err != nil {
		return nil, nil, err
	}

	svc := statement.NewService(filepath.Join(dir, cfg.Files.Output))
	table, err := svc.Table()
	if err != nil {
		return nil, nil, err
	}
	return cfg, table, nil
}
