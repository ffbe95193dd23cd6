package statement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fatura-dev/fatura/internal/cycle"
	"github.com/fatura-dev/fatura/internal/model"
)

func TestYearRule_CompleteYear(t *testing.T) {
	rule := DefaultYearRule()

	tests := []struct {
		name   string
		raw    string
		source string
		want   string
	}{
		{"marker file gets marker year", "05/01", "fatura-jan.pdf", "05/01/2024"},
		{"marker match is case-insensitive", "05/01", "FATURA-JAN.PDF", "05/01/2024"},
		{"other file gets default year", "20/02", "fatura-mar.pdf", "20/02/2025"},
		{"single digit day and month", "5/1", "fatura-mar.pdf", "5/1/2025"},
		{"full date passes through", "05/01/2023", "fatura-jan.pdf", "05/01/2023"},
		{"non-date passes through", "sem data", "fatura-jan.pdf", "sem data"},
		{"surrounding whitespace trimmed", " 05/01 ", "fatura-mar.pdf", "05/01/2025"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rule.CompleteYear(tt.raw, tt.source))
		})
	}
}

func rawRow(source, rawDate, desc, rawAmount string) model.Transaction {
	txn := model.Transaction{
		SourceFile:  source,
		RawDate:     rawDate,
		Description: desc,
		RawAmount:   rawAmount,
		CycleLabel:  cycle.LabelUnassigned,
	}
	return txn
}

// January statement, year elided: amount parses as BRL, dates complete
// to 2024 via the filename marker. A December day lands in the january
// cycle window; a January day falls before every window and keeps the
// sentinel label, a quirk of the year heuristic the table preserves.
func TestEnrich_JanuaryStatement(t *testing.T) {
	in := &Table{Rows: []model.Transaction{
		rawRow("fatura-jan.pdf", "10/12", "MERCADO", "30,00"),
		rawRow("fatura-jan.pdf", "05/01", "PADARIA", "R$ 1.234,56"),
	}}

	out, stats := Enrich(in, DefaultYearRule())
	require.Len(t, out.Rows, 2)

	dez := out.Rows[0]
	require.True(t, dez.DateOK)
	assert.Equal(t, time.Date(2024, time.December, 10, 0, 0, 0, 0, time.UTC), dez.Date)
	assert.Equal(t, "2025-01 (JAN)", dez.CycleLabel)
	assert.Equal(t, 2, dez.CycleWeek)

	jan := out.Rows[1]
	require.True(t, jan.AmountOK)
	assert.Equal(t, "1234.56", jan.Amount.String())

	require.True(t, jan.DateOK)
	assert.Equal(t, time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC), jan.Date)
	assert.Equal(t, cycle.LabelUnassigned, jan.CycleLabel)
	assert.Equal(t, 1, jan.CycleWeek)

	assert.Equal(t, Stats{Rows: 2, Unassigned: 1}, stats)
}

// Non-january statement: date completes to 2025 and lands in the
// window covering 2025-02-20.
func TestEnrich_DefaultYearStatement(t *testing.T) {
	in := &Table{Rows: []model.Transaction{rawRow("fatura-mar.pdf", "20/02", "MERCADO", "50,00")}}

	out, _ := Enrich(in, DefaultYearRule())
	txn := out.Rows[0]

	require.True(t, txn.DateOK)
	assert.Equal(t, time.Date(2025, time.February, 20, 0, 0, 0, 0, time.UTC), txn.Date)
	assert.Equal(t, "2025-03 (MAR)", txn.CycleLabel)
	assert.Equal(t, 3, txn.CycleWeek)
}

func TestEnrich_BadRowsAreKept(t *testing.T) {
	in := &Table{Rows: []model.Transaction{
		rawRow("fatura-mar.pdf", "data invalida", "LOJA A", "10,00"),
		rawRow("fatura-mar.pdf", "15/04", "LOJA B", "sem valor"),
		rawRow("fatura-mar.pdf", "15/03", "LOJA C", "30,00"),
	}}

	out, stats := Enrich(in, DefaultYearRule())
	require.Len(t, out.Rows, 3)

	// Bad date: retained, sentinel label, week 0.
	assert.False(t, out.Rows[0].DateOK)
	assert.Equal(t, cycle.LabelUnassigned, out.Rows[0].CycleLabel)
	assert.Equal(t, 0, out.Rows[0].CycleWeek)

	// Bad amount: retained, date still bucketed. 2025-04-15 sits in the
	// table's april gap, so the label stays unassigned.
	assert.False(t, out.Rows[1].AmountOK)
	require.True(t, out.Rows[1].DateOK)
	assert.Equal(t, cycle.LabelUnassigned, out.Rows[1].CycleLabel)
	assert.Equal(t, 2, out.Rows[1].CycleWeek)

	// 2025-03-15 sits in the window that closes the april statement.
	assert.Equal(t, "2025-04 (ABR)", out.Rows[2].CycleLabel)

	assert.Equal(t, Stats{Rows: 3, BadDates: 1, BadAmounts: 1, Unassigned: 1}, stats)
}

func TestEnrich_InputLeftUntouched(t *testing.T) {
	in := &Table{Rows: []model.Transaction{rawRow("fatura-mar.pdf", "15/03", "LOJA", "30,00")}}

	_, _ = Enrich(in, DefaultYearRule())

	assert.False(t, in.Rows[0].DateOK)
	assert.Equal(t, cycle.LabelUnassigned, in.Rows[0].CycleLabel)
}
