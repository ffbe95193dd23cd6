// Package priority ranks merchants by a weighted composite of their
// spend features and estimates the recoverable share.
package priority

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/fatura-dev/fatura/internal/cycle"
	"github.com/fatura-dev/fatura/internal/model"
	"github.com/fatura-dev/fatura/internal/statement"
)

// Composite score weights. Fixed design constants summing to 1; output
// is only comparable across runs when these stay exact.
var (
	weightImpact = decimal.RequireFromString("0.4")
	weightTotal  = decimal.RequireFromString("0.3")
	weightFreq   = decimal.RequireFromString("0.2")
	weightMean   = decimal.RequireFromString("0.1")
)

// Tier thresholds, inclusive on the lower bound: a score of exactly
// 0.75 is critical.
var (
	thresholdCritical = decimal.RequireFromString("0.75")
	thresholdHigh     = decimal.RequireFromString("0.55")
	thresholdMedium   = decimal.RequireFromString("0.35")
)

// recoverablePct is the fixed fraction of monthly impact deemed
// recoverable per tier.
var recoverablePct = map[model.Priority]decimal.Decimal{
	model.PriorityCritical: decimal.RequireFromString("0.30"),
	model.PriorityHigh:     decimal.RequireFromString("0.20"),
	model.PriorityMedium:   decimal.RequireFromString("0.10"),
	model.PriorityLow:      decimal.RequireFromString("0.05"),
}

// Classify maps a composite score to its priority tier. Monotonic: a
// higher score never yields a lower tier.
func Classify(score decimal.Decimal) model.Priority {
	switch {
	case score.GreaterThanOrEqual(thresholdCritical):
		return model.PriorityCritical
	case score.GreaterThanOrEqual(thresholdHigh):
		return model.PriorityHigh
	case score.GreaterThanOrEqual(thresholdMedium):
		return model.PriorityMedium
	default:
		return model.PriorityLow
	}
}

type group struct {
	total   decimal.Decimal
	count   int
	max     decimal.Decimal
	periods map[string]bool
}

// Score aggregates the table's positive-spend rows by description and
// returns the scored merchants, descending by score. Ties are broken
// by ascending description so output order is deterministic.
func Score(t *statement.Table) []model.MerchantScore {
	pos := t.PositiveSpend()

	groups := make(map[string]*group)
	var order []string
	for _, txn := range pos.Rows {
		g, ok := groups[txn.Description]
		if !ok {
			g = &group{periods: make(map[string]bool)}
			groups[txn.Description] = g
			order = append(order, txn.Description)
		}
		g.total = g.total.Add(txn.Amount)
		g.count++
		if txn.Amount.GreaterThan(g.max) {
			g.max = txn.Amount
		}
		if txn.CycleLabel != cycle.LabelUnassigned {
			g.periods[txn.CycleLabel] = true
		}
	}

	scores := make([]model.MerchantScore, 0, len(order))
	for _, desc := range order {
		g := groups[desc]
		s := model.MerchantScore{
			Description:     desc,
			Total:           g.total,
			Frequency:       g.count,
			Mean:            g.total.Div(decimal.NewFromInt(int64(g.count))),
			Max:             g.max,
			DistinctPeriods: len(g.periods),
		}
		if s.DistinctPeriods == 0 {
			// No row resolved to a cycle; the impact ratio is undefined,
			// so the group is flagged instead of faulting.
			s.Flagged = true
		} else {
			s.MonthlyImpact = g.total.Div(decimal.NewFromInt(int64(s.DistinctPeriods)))
		}
		scores = append(scores, s)
	}

	normalize(scores)

	for i := range scores {
		s := &scores[i]
		s.Score = weightImpact.Mul(s.ImpactNorm).
			Add(weightTotal.Mul(s.TotalNorm)).
			Add(weightFreq.Mul(s.FreqNorm)).
			Add(weightMean.Mul(s.MeanNorm))
		s.Priority = Classify(s.Score)
		s.RecoverablePct = recoverablePct[s.Priority]
		s.MonthlySavings = s.MonthlyImpact.Mul(s.RecoverablePct)
	}

	sort.Slice(scores, func(i, j int) bool {
		if !scores[i].Score.Equal(scores[j].Score) {
			return scores[i].Score.GreaterThan(scores[j].Score)
		}
		return scores[i].Description < scores[j].Description
	})

	return scores
}

// normalize min-max scales the four features independently across all
// groups. Flagged groups are excluded from the impact scale and keep a
// zero impact norm.
func normalize(scores []model.MerchantScore) {
	minMax := func(values []decimal.Decimal) func(decimal.Decimal) decimal.Decimal {
		if len(values) == 0 {
			return func(decimal.Decimal) decimal.Decimal { return decimal.Zero }
		}
		minV, maxV := values[0], values[0]
		for _, v := range values[1:] {
			if v.LessThan(minV) {
				minV = v
			}
			if v.GreaterThan(maxV) {
				maxV = v
			}
		}
		// A degenerate scale normalizes to 0 for every member, never NaN.
		if maxV.Equal(minV) {
			return func(decimal.Decimal) decimal.Decimal { return decimal.Zero }
		}
		span := maxV.Sub(minV)
		return func(v decimal.Decimal) decimal.Decimal {
			return v.Sub(minV).Div(span)
		}
	}

	totals := make([]decimal.Decimal, 0, len(scores))
	freqs := make([]decimal.Decimal, 0, len(scores))
	means := make([]decimal.Decimal, 0, len(scores))
	var impacts []decimal.Decimal
	for _, s := range scores {
		totals = append(totals, s.Total)
		freqs = append(freqs, decimal.NewFromInt(int64(s.Frequency)))
		means = append(means, s.Mean)
		if !s.Flagged {
			impacts = append(impacts, s.MonthlyImpact)
		}
	}

	scaleTotal := minMax(totals)
	scaleFreq := minMax(freqs)
	scaleMean := minMax(means)
	scaleImpact := minMax(impacts)

	for i := range scores {
		s := &scores[i]
		s.TotalNorm = scaleTotal(s.Total)
		s.FreqNorm = scaleFreq(decimal.NewFromInt(int64(s.Frequency)))
		s.MeanNorm = scaleMean(s.Mean)
		if s.Flagged {
			s.ImpactNorm = decimal.Zero
		} else {
			s.ImpactNorm = scaleImpact(s.MonthlyImpact)
		}
	}
}

// SavingsSummary totals the estimated savings across merchants.
type SavingsSummary struct {
	Monthly decimal.Decimal
	Annual  decimal.Decimal
}

// Savings sums every merchant's estimated monthly savings and the
// twelve-month projection.
func Savings(scores []model.MerchantScore) SavingsSummary {
	var monthly decimal.Decimal
	for _, s := range scores {
		monthly = monthly.Add(s.MonthlySavings)
	}
	return SavingsSummary{
		Monthly: monthly,
		Annual:  monthly.Mul(decimal.NewFromInt(12)),
	}
}
