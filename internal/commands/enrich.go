package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fatura-dev/fatura/internal/config"
	"github.com/fatura-dev/fatura/internal/runlog"
	"github.com/fatura-dev/fatura/internal/statement"
)

func newEnrichCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "enrich",
		Short: "Complete dates and classify rows into billing cycles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runEnrich(absDir)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "workspace directory")

	return cmd
}

func runEnrich(dir string) error {
	cfg, err := config.Load(filepath.Join(dir, "fatura.yaml"))
	if err != nil {
		return err
	}

	inPath := filepath.Join(dir, cfg.Files.Input)
	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("opening input %s: %w", cfg.Files.Input, err)
	}
	table, err := statement.Read(in)
	in.Close()
	if err != nil {
		return fmt.Errorf("reading %s: %w", cfg.Files.Input, err)
	}

	enriched, stats := statement.Enrich(table, cfg.YearRule())

	outPath := filepath.Join(dir, cfg.Files.Output)
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output %s: %w", cfg.Files.Output, err)
	}
	if err := statement.Write(out, enriched); err != nil {
		out.Close()
		return fmt.Errorf("writing %s: %w", cfg.Files.Output, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", cfg.Files.Output, err)
	}

	entry := runlog.NewEntry(cfg.Files.Input, cfg.Files.Output, stats)
	if err := runlog.Append(dir, []runlog.Entry{entry}); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to write run log: %v\n", err)
	}

	fmt.Printf("Enriched %d rows (%d unassigned, %d bad dates, %d bad amounts)\n",
		stats.Rows, stats.Unassigned, stats.BadDates, stats.BadAmounts)
	fmt.Printf("Wrote %s\n", outPath)
	return nil
}
