package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fatura-dev/fatura/internal/insights"
	"github.com/fatura-dev/fatura/internal/money"
	"github.com/fatura-dev/fatura/internal/statement"
)

func newSummaryCommand() *cobra.Command {
	var dir string
	var period string
	var category string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show spending KPIs and financial health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runSummary(absDir, period, category)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "workspace directory")
	cmd.Flags().StringVar(&period, "period", statement.AllPeriods, "statement file to analyze")
	cmd.Flags().StringVar(&category, "category", statement.AllCategories, "category to analyze")

	return cmd
}

func runSummary(dir, period, category string) error {
	_, table, err := loadWorkspace(dir)
	if err != nil {
		return err
	}

	// KPIs run over the scoped view; the previous-period base and the
	// evolution series always come from the unfiltered table.
	scoped := table.FilterCategory(category).FilterSource(period)
	a := insights.Analyze(table, scoped, period)

	fmt.Printf("Período: %s | Categoria: %s\n\n", period, category)
	fmt.Printf("Gasto total:   %s\n", money.FormatBRL(a.Summary.TotalSpend))
	fmt.Printf("Transações:    %d\n", a.Summary.Transactions)
	fmt.Printf("Ticket médio:  %s\n", money.FormatBRL(a.Summary.AvgTicket))
	fmt.Printf("Maior compra:  %s\n", money.FormatBRL(a.Summary.MaxPurchase))
	if a.Summary.HasVariation {
		fmt.Printf("Variação vs período anterior: %s%%\n", a.Summary.Variation.StringFixed(1))
	}

	if len(a.Evolution) > 0 {
		fmt.Println("\nEvolução por fatura:")
		for _, p := range a.Evolution {
			fmt.Printf("  %-30s %s\n", p.Source, money.FormatBRL(p.Total))
		}
	}
	if a.HasForecast {
		fmt.Printf("\nPrevisão mensal: %s (anual %s)\n",
			money.FormatBRL(a.Forecast.Monthly), money.FormatBRL(a.Forecast.Annual))
	}

	if len(a.Pareto) > 0 {
		fmt.Println("\nMaiores gastos:")
		top := a.Pareto
		if len(top) > 5 {
			top = top[:5]
		}
		for _, row := range top {
			fmt.Printf("  %-30s %s (%s%%)\n", row.Description, money.FormatBRL(row.Total), row.Share.StringFixed(1))
		}
	}

	fmt.Printf("\nScore financeiro: %d/100 | Risco: %s\n", a.Health.Score, a.Health.Risk)
	if len(a.Outliers) > 0 {
		fmt.Printf("Compras atípicas: %d\n", len(a.Outliers))
	}
	return nil
}
