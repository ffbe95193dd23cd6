package cycle

import "fmt"

// ValidationError describes a single table invariant violation.
type ValidationError struct {
	Invariant   int
	Label       string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invariant %d [%s]: %s", e.Invariant, e.Label, e.Description)
}

// Validate enforces 3 invariants on a cycle table:
//
//  1. Start <= End for every interval.
//  2. Intervals are in ascending order and never overlap, so any date
//     matches at most one interval.
//  3. Labels are unique and parse as "YYYY-MM (ABBR)".
func Validate(table []Interval) []ValidationError {
	var errs []ValidationError

	// Invariant 1: bounds ordered within each interval.
	for _, iv := range table {
		if iv.End.Before(iv.Start) {
			errs = append(errs, ValidationError{
				Invariant:   1,
				Label:       iv.Label,
				Description: fmt.Sprintf("end %s before start %s", iv.End.Format("2006-01-02"), iv.Start.Format("2006-01-02")),
			})
		}
	}

	// Invariant 2: strictly ascending, non-overlapping windows.
	for i := 1; i < len(table); i++ {
		prev, cur := table[i-1], table[i]
		if !cur.Start.After(prev.End) {
			errs = append(errs, ValidationError{
				Invariant:   2,
				Label:       cur.Label,
				Description: fmt.Sprintf("starts %s, before previous interval %q ends (%s)", cur.Start.Format("2006-01-02"), prev.Label, prev.End.Format("2006-01-02")),
			})
		}
	}

	// Invariant 3: unique, well-formed labels.
	seen := make(map[string]bool, len(table))
	for _, iv := range table {
		if seen[iv.Label] {
			errs = append(errs, ValidationError{
				Invariant:   3,
				Label:       iv.Label,
				Description: "duplicate label",
			})
		}
		seen[iv.Label] = true

		if _, _, err := ParseLabel(iv.Label); err != nil {
			errs = append(errs, ValidationError{
				Invariant:   3,
				Label:       iv.Label,
				Description: err.Error(),
			})
		}
	}

	return errs
}
