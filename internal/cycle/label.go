package cycle

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// monthAbbrevs are the Portuguese month abbreviations used in labels.
var monthAbbrevs = [...]string{
	"JAN", "FEV", "MAR", "ABR", "MAI", "JUN",
	"JUL", "AGO", "SET", "OUT", "NOV", "DEZ",
}

// FormatLabel returns a cycle label like "2025-03 (MAR)".
func FormatLabel(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d (%s)", year, int(month), monthAbbrevs[month-1])
}

// ParseLabel parses "2025-03 (MAR)" into year and month. The
// abbreviation must agree with the numeric month.
func ParseLabel(label string) (year int, month time.Month, err error) {
	numeric, abbrev, ok := strings.Cut(label, " ")
	if !ok {
		return 0, 0, fmt.Errorf("invalid cycle label format: %q", label)
	}

	yearPart, monthPart, ok := strings.Cut(numeric, "-")
	if !ok {
		return 0, 0, fmt.Errorf("invalid cycle label format: %q", label)
	}

	year, err = strconv.Atoi(yearPart)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid year in cycle label %q: %w", label, err)
	}

	m, err := strconv.Atoi(monthPart)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month in cycle label %q: %w", label, err)
	}
	if m < 1 || m > 12 {
		return 0, 0, fmt.Errorf("month %d out of range in cycle label %q", m, label)
	}
	month = time.Month(m)

	want := "(" + monthAbbrevs[m-1] + ")"
	if abbrev != want {
		return 0, 0, fmt.Errorf("cycle label %q: abbreviation %s does not match month %02d", label, abbrev, m)
	}

	return year, month, nil
}
