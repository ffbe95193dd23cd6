package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fatura-dev/fatura/internal/assistant"
	"github.com/fatura-dev/fatura/internal/insights"
	"github.com/fatura-dev/fatura/internal/statement"
)

func newAskCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a question about your spending",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runAsk(absDir, strings.Join(args, " "))
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "workspace directory")

	return cmd
}

func runAsk(dir, question string) error {
	_, table, err := loadWorkspace(dir)
	if err != nil {
		return err
	}

	responder := assistant.NewResponder(insights.Analyze(table, table, statement.AllPeriods))
	fmt.Println(assistant.Ask(question, responder, table))
	return nil
}
