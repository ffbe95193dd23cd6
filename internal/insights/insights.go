// Package insights derives the descriptive aggregates the dashboard
// and the assistant read: KPI summary, Pareto concentration, period
// evolution and forecast, outliers, and the financial health score.
// Everything is computed from the enriched table; nothing writes back.
package insights

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/fatura-dev/fatura/internal/model"
	"github.com/fatura-dev/fatura/internal/statement"
)

var hundred = decimal.NewFromInt(100)

// Summary is the KPI block over the scoped positive-spend rows.
type Summary struct {
	TotalSpend   decimal.Decimal
	Transactions int
	AvgTicket    decimal.Decimal
	MaxPurchase  decimal.Decimal

	// Variation is the percent change against the option immediately
	// before the selected one in the sorted source list. That is file
	// order, not calendar order; HasVariation is false for the
	// all-periods view, the first real option, or a zero base.
	Variation    decimal.Decimal
	HasVariation bool
}

// Summarize computes the KPIs for the scoped view. full is the
// unfiltered table, needed for the previous-period comparison;
// selected is the period option in effect.
func Summarize(full, scoped *statement.Table, selected string) Summary {
	pos := scoped.PositiveSpend()

	var sum Summary
	sum.Transactions = len(pos.Rows)
	for _, txn := range pos.Rows {
		sum.TotalSpend = sum.TotalSpend.Add(txn.Amount)
		if txn.Amount.GreaterThan(sum.MaxPurchase) {
			sum.MaxPurchase = txn.Amount
		}
	}
	if sum.Transactions > 0 {
		sum.AvgTicket = sum.TotalSpend.Div(decimal.NewFromInt(int64(sum.Transactions)))
	}

	if selected == statement.AllPeriods || selected == "" {
		return sum
	}

	options := full.SourceOptions()
	idx := -1
	for i, opt := range options {
		if opt == selected {
			idx = i
			break
		}
	}
	// Index 0 is the synthetic option; index 1 has nothing before it.
	if idx <= 1 {
		return sum
	}

	previous := options[idx-1]
	var prevTotal decimal.Decimal
	for _, txn := range full.FilterSource(previous).PositiveSpend().Rows {
		prevTotal = prevTotal.Add(txn.Amount)
	}
	if prevTotal.IsPositive() {
		sum.Variation = sum.TotalSpend.Sub(prevTotal).Div(prevTotal).Mul(hundred)
		sum.HasVariation = true
	}
	return sum
}

// ParetoRow is one merchant's share of total spend.
type ParetoRow struct {
	Description string
	Total       decimal.Decimal
	Share       decimal.Decimal // percent of total spend
	CumShare    decimal.Decimal // running percent, descending order
}

// Pareto ranks merchants by total spend, descending, with cumulative
// share. Ties break by description for deterministic output.
func Pareto(scoped *statement.Table) []ParetoRow {
	pos := scoped.PositiveSpend()

	totals := make(map[string]decimal.Decimal)
	var order []string
	var grand decimal.Decimal
	for _, txn := range pos.Rows {
		if _, ok := totals[txn.Description]; !ok {
			order = append(order, txn.Description)
		}
		totals[txn.Description] = totals[txn.Description].Add(txn.Amount)
		grand = grand.Add(txn.Amount)
	}

	rows := make([]ParetoRow, 0, len(order))
	for _, desc := range order {
		rows = append(rows, ParetoRow{Description: desc, Total: totals[desc]})
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Total.Equal(rows[j].Total) {
			return rows[i].Total.GreaterThan(rows[j].Total)
		}
		return rows[i].Description < rows[j].Description
	})

	var cum decimal.Decimal
	for i := range rows {
		if grand.IsPositive() {
			rows[i].Share = rows[i].Total.Div(grand).Mul(hundred)
		}
		cum = cum.Add(rows[i].Share)
		rows[i].CumShare = cum
	}
	return rows
}

// PeriodTotal is one source file's positive-spend total.
type PeriodTotal struct {
	Source string
	Total  decimal.Decimal
}

// Evolution returns per-source totals in sorted file order, the series
// the forecast and the evolution chart consume.
func Evolution(full *statement.Table) []PeriodTotal {
	totals := make(map[string]decimal.Decimal)
	var sources []string
	for _, txn := range full.PositiveSpend().Rows {
		if _, ok := totals[txn.SourceFile]; !ok {
			sources = append(sources, txn.SourceFile)
		}
		totals[txn.SourceFile] = totals[txn.SourceFile].Add(txn.Amount)
	}
	sort.Strings(sources)

	out := make([]PeriodTotal, len(sources))
	for i, src := range sources {
		out[i] = PeriodTotal{Source: src, Total: totals[src]}
	}
	return out
}

// Forecast is the naive next-period projection: mean of the period
// totals plus the mean first difference.
type Forecast struct {
	Monthly decimal.Decimal
	Annual  decimal.Decimal
}

// Project computes the forecast from an evolution series. ok is false
// for an empty series.
func Project(evolution []PeriodTotal) (Forecast, bool) {
	if len(evolution) == 0 {
		return Forecast{}, false
	}

	var sum decimal.Decimal
	for _, p := range evolution {
		sum = sum.Add(p.Total)
	}
	mean := sum.Div(decimal.NewFromInt(int64(len(evolution))))

	var trend decimal.Decimal
	if len(evolution) > 1 {
		last := evolution[len(evolution)-1].Total
		first := evolution[0].Total
		// The mean of consecutive differences telescopes.
		trend = last.Sub(first).Div(decimal.NewFromInt(int64(len(evolution) - 1)))
	}

	monthly := mean.Add(trend)
	return Forecast{Monthly: monthly, Annual: monthly.Mul(decimal.NewFromInt(12))}, true
}

// Outliers returns the positive-spend rows above mean + 2 standard
// deviations (sample deviation). Fewer than two rows yield none.
func Outliers(scoped *statement.Table) []model.Transaction {
	pos := scoped.PositiveSpend()
	if len(pos.Rows) < 2 {
		return nil
	}

	values := make([]float64, len(pos.Rows))
	var sum float64
	for i, txn := range pos.Rows {
		values[i] = txn.Amount.InexactFloat64()
		sum += values[i]
	}
	mean := sum / float64(len(values))

	var sq float64
	for _, v := range values {
		sq += (v - mean) * (v - mean)
	}
	std := math.Sqrt(sq / float64(len(values)-1))

	threshold := mean + 2*std
	var out []model.Transaction
	for i, txn := range pos.Rows {
		if values[i] > threshold {
			out = append(out, txn)
		}
	}
	return out
}

// Risk levels derived from spend concentration.
const (
	RiskHigh     = "alto"
	RiskModerate = "moderado"
	RiskLow      = "baixo"
)

// Health is the 0-100 financial score with its inputs.
type Health struct {
	Score         int
	Concentration decimal.Decimal // top-1 merchant share, percent
	Outliers      int
	Risk          string
}

// Assess starts from 100 and subtracts fixed penalties: 15 for a
// spend increase above 20%, 15 for any outlier, 20 for a top merchant
// above 40% of spend. Floor is 0.
func Assess(sum Summary, pareto []ParetoRow, outliers int) Health {
	h := Health{Score: 100, Outliers: outliers}

	if sum.HasVariation && sum.Variation.GreaterThan(decimal.NewFromInt(20)) {
		h.Score -= 15
	}
	if outliers > 0 {
		h.Score -= 15
	}
	if len(pareto) > 0 {
		h.Concentration = pareto[0].Share
	}
	if h.Concentration.GreaterThan(decimal.NewFromInt(40)) {
		h.Score -= 20
	}
	if h.Score < 0 {
		h.Score = 0
	}

	switch {
	case h.Concentration.GreaterThan(decimal.NewFromInt(50)):
		h.Risk = RiskHigh
	case h.Concentration.GreaterThan(decimal.NewFromInt(30)):
		h.Risk = RiskModerate
	default:
		h.Risk = RiskLow
	}
	return h
}

// Analysis bundles every derived aggregate the assistant reads.
type Analysis struct {
	Summary     Summary
	Pareto      []ParetoRow
	Evolution   []PeriodTotal
	Forecast    Forecast
	HasForecast bool
	Outliers    []model.Transaction
	Health      Health

	TopCategory      string
	TopCategoryTotal decimal.Decimal
	HasCategories    bool
}

// Analyze runs the full descriptive pass: KPIs over the scoped view,
// evolution and forecast over the full table.
func Analyze(full, scoped *statement.Table, selected string) Analysis {
	a := Analysis{
		Summary:   Summarize(full, scoped, selected),
		Pareto:    Pareto(scoped),
		Evolution: Evolution(full),
		Outliers:  Outliers(scoped),
	}
	a.Forecast, a.HasForecast = Project(a.Evolution)
	a.Health = Assess(a.Summary, a.Pareto, len(a.Outliers))
	a.HasCategories = scoped.HasCategories()
	a.TopCategory, a.TopCategoryTotal = topCategory(scoped)
	return a
}

func topCategory(scoped *statement.Table) (string, decimal.Decimal) {
	totals := make(map[string]decimal.Decimal)
	for _, txn := range scoped.PositiveSpend().Rows {
		if txn.Category == "" {
			continue
		}
		totals[txn.Category] = totals[txn.Category].Add(txn.Amount)
	}

	var best string
	var bestTotal decimal.Decimal
	for cat, total := range totals {
		switch {
		case best == "",
			total.GreaterThan(bestTotal),
			total.Equal(bestTotal) && cat < best:
			best = cat
			bestTotal = total
		}
	}
	return best, bestTotal
}
