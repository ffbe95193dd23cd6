// Package cycle maps calendar dates into named statement periods and
// weekly sub-buckets.
package cycle

import "time"

// LabelUnassigned is the sentinel written when no interval matches a
// date. The upstream export used a numeric default that serialized as
// the literal "0"; kept for output compatibility.
const LabelUnassigned = "0"

// Interval is one billing window. Both bounds are inclusive:
// Start <= date <= End.
type Interval struct {
	Start time.Time
	End   time.Time
	Label string
}

// Contains reports whether date falls inside the interval.
func (iv Interval) Contains(date time.Time) bool {
	return !date.Before(iv.Start) && !date.After(iv.End)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Table is the fixed set of statement periods, in calendar order.
// Windows nominally run from the 4th of one month through the 3rd of
// the next. The 2025-04-04..2025-05-03 window is absent in the source
// data; dates inside it stay unassigned.
var Table = []Interval{
	{day(2024, time.December, 4), day(2025, time.January, 3), "2025-01 (JAN)"},
	{day(2025, time.January, 4), day(2025, time.February, 3), "2025-02 (FEV)"},
	{day(2025, time.February, 4), day(2025, time.March, 3), "2025-03 (MAR)"},
	{day(2025, time.March, 4), day(2025, time.April, 3), "2025-04 (ABR)"},
	{day(2025, time.May, 4), day(2025, time.June, 3), "2025-05 (MAI)"},
	{day(2025, time.June, 4), day(2025, time.July, 3), "2025-06 (JUN)"},
	{day(2025, time.July, 4), day(2025, time.August, 3), "2025-07 (JUL)"},
	{day(2025, time.August, 4), day(2025, time.September, 3), "2025-08 (AGO)"},
	{day(2025, time.September, 4), day(2025, time.October, 3), "2025-09 (SET)"},
	{day(2025, time.October, 4), day(2025, time.November, 3), "2025-10 (OUT)"},
	{day(2025, time.November, 4), day(2025, time.December, 3), "2025-11 (NOV)"},
}

// Assign returns the label of the interval containing date, or
// LabelUnassigned when none matches. Intervals never overlap (see
// Validate), so the first match is the only match.
func Assign(date time.Time) string {
	for _, iv := range Table {
		if iv.Contains(date) {
			return iv.Label
		}
	}
	return LabelUnassigned
}

// Labels returns every label in table order.
func Labels() []string {
	out := make([]string, len(Table))
	for i, iv := range Table {
		out[i] = iv.Label
	}
	return out
}
