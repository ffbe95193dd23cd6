package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one row of the consolidated statement export, enriched
// with the billing-cycle columns. Rows are never mutated after
// enrichment; downstream consumers derive new views instead.
type Transaction struct {
	CycleLabel  string          // MES_FATURA; cycle.LabelUnassigned when no interval matches
	CycleWeek   int             // SEMANA_FATURA; 1..4, 0 = unmatched
	RawDate     string          // original Data text, possibly without a year
	Date        time.Time       // resolved date (UTC, date-only); zero when DateOK is false
	DateOK      bool            //nolint:revive
	SourceFile  string          // Arquivo; also the ordinal proxy for period comparisons
	Description string          // Descrição; grouping key for merchant aggregates
	Amount      decimal.Decimal // Valor (R$); positive = expense, negative = credit/refund
	AmountOK    bool            // false when the raw amount did not parse
	RawAmount   string          // original Valor (R$) text
	Category    string          // Categoria; empty = uncategorized

	// Extra holds values of input columns the pipeline does not
	// interpret, keyed by column name, so they survive the round-trip.
	Extra map[string]string
}

// PositiveSpend reports whether the row counts toward spend aggregates.
func (t Transaction) PositiveSpend() bool {
	return t.AmountOK && t.Amount.IsPositive()
}
