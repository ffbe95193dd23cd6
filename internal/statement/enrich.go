package statement

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/fatura-dev/fatura/internal/cycle"
	"github.com/fatura-dev/fatura/internal/model"
	"github.com/fatura-dev/fatura/internal/money"
)

// rawDateFormat accepts both "05/01/2024" and "5/1/2024".
const rawDateFormat = "2/1/2006"

var bareDatePattern = regexp.MustCompile(`^\d{1,2}/\d{1,2}$`)

// YearRule completes a bare day/month date with a year inferred from
// the source file name. The filename heuristic is a quirk of the
// exports this pipeline was built around; it lives in one place so it
// can later be replaced by an explicit year parameter.
type YearRule struct {
	Marker      string
	MarkerYear  int
	DefaultYear int
}

// DefaultYearRule matches the santander export layout: january
// statements carry December 2024 dates, everything else 2025.
func DefaultYearRule() YearRule {
	return YearRule{Marker: "fatura-jan", MarkerYear: 2024, DefaultYear: 2025}
}

// CompleteYear appends the inferred year when raw is a bare day/month;
// any other shape passes through untouched.
func (r YearRule) CompleteYear(raw, sourceFile string) string {
	s := strings.TrimSpace(raw)
	if !bareDatePattern.MatchString(s) {
		return raw
	}

	year := r.DefaultYear
	if r.Marker != "" && strings.Contains(strings.ToLower(sourceFile), strings.ToLower(r.Marker)) {
		year = r.MarkerYear
	}
	return s + "/" + strconv.Itoa(year)
}

// Stats counts data-quality outcomes of one enrichment pass.
type Stats struct {
	Rows       int
	BadDates   int // rows whose date did not resolve
	BadAmounts int // rows whose amount did not parse
	Unassigned int // resolved dates outside every cycle interval
}

// Enrich resolves every row's date and amount and stamps the two
// derived columns. The input table is left untouched; enrichment is a
// pure function of its input, so re-running it on the same data
// produces identical output.
func Enrich(t *Table, rule YearRule) (*Table, Stats) {
	out := &Table{
		Rows:    make([]model.Transaction, len(t.Rows)),
		columns: t.columns,
	}

	var stats Stats
	stats.Rows = len(t.Rows)

	for i, txn := range t.Rows {
		completed := rule.CompleteYear(txn.RawDate, txn.SourceFile)

		if date, err := time.ParseInLocation(rawDateFormat, completed, time.UTC); err == nil {
			txn.Date = date
			txn.DateOK = true
		} else if !txn.DateOK {
			// Neither the raw form nor an already-resolved date.
			txn.Date = time.Time{}
		}

		if !txn.AmountOK {
			txn.Amount, txn.AmountOK = money.Parse(txn.RawAmount)
		}

		if txn.DateOK {
			txn.CycleLabel = cycle.Assign(txn.Date)
			txn.CycleWeek = cycle.WeekOfCycle(txn.Date.Day())
			if txn.CycleLabel == cycle.LabelUnassigned {
				stats.Unassigned++
			}
		} else {
			txn.CycleLabel = cycle.LabelUnassigned
			txn.CycleWeek = 0
			stats.BadDates++
		}

		if !txn.AmountOK {
			stats.BadAmounts++
		}

		out.Rows[i] = txn
	}

	return out, stats
}
