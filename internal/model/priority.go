package model

import "github.com/shopspring/decimal"

// Priority is the ordinal classification of a merchant's spend
// significance.
type Priority string

const (
	PriorityCritical Priority = "CRITICO"
	PriorityHigh     Priority = "ALTO"
	PriorityMedium   Priority = "MEDIO"
	PriorityLow      Priority = "BAIXO"
)

// MerchantScore is the scored aggregate for one distinct description.
type MerchantScore struct {
	Description     string
	Total           decimal.Decimal
	Frequency       int
	Mean            decimal.Decimal
	Max             decimal.Decimal
	DistinctPeriods int  // distinct assigned cycle labels observed
	Flagged         bool // true when no row carries an assigned cycle label

	// MonthlyImpact is Total / DistinctPeriods; zero for flagged groups.
	MonthlyImpact decimal.Decimal

	// Min-max normalized features, each in [0,1].
	TotalNorm  decimal.Decimal
	FreqNorm   decimal.Decimal
	MeanNorm   decimal.Decimal
	ImpactNorm decimal.Decimal

	Score          decimal.Decimal
	Priority       Priority
	RecoverablePct decimal.Decimal // fraction of monthly impact deemed recoverable
	MonthlySavings decimal.Decimal
}
