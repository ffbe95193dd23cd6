package cycle

// weekRange maps an inclusive day-of-month span to a sub-bucket.
type weekRange struct {
	from, to int
	bucket   int
}

// weekRanges partitions days 1..31 into four buckets. These are
// calendar-day spans, not offsets within the billing window.
var weekRanges = []weekRange{
	{1, 8, 1},
	{9, 16, 2},
	{17, 23, 3},
	{24, 31, 4},
}

// WeekOfCycle maps a day-of-month to its ordinal sub-bucket in 1..4,
// or 0 for anything outside 1..31.
func WeekOfCycle(dayOfMonth int) int {
	for _, r := range weekRanges {
		if dayOfMonth >= r.from && dayOfMonth <= r.to {
			return r.bucket
		}
	}
	return 0
}
