package assistant

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fatura-dev/fatura/internal/money"
	"github.com/fatura-dev/fatura/internal/statement"
)

// Operation is the aggregate requested by a free-form query.
type Operation string

const (
	OpNone  Operation = ""
	OpSum   Operation = "soma"
	OpMean  Operation = "media"
	OpMax   Operation = "max"
	OpCount Operation = "contagem"
)

// Filter columns a query may name.
const (
	FilterNone        = ""
	FilterCategory    = statement.ColCategoria
	FilterDescription = statement.ColDescricao
)

// Query is the interpreted form of a free-form question: one
// operation, at most one filter.
type Query struct {
	Op          Operation
	FilterCol   string
	FilterValue string
}

var opKeywords = []struct {
	op       Operation
	keywords []string
}{
	{OpSum, []string{"total", "soma", "quanto gastei"}},
	{OpMean, []string{"média", "media"}},
	{OpMax, []string{"maior"}},
	{OpCount, []string{"quantas", "quantidade", "contagem"}},
}

// Interpret extracts the operation and optional filter from a
// question. Filter candidates come from the table's distinct values in
// encounter order; the first contained in the question wins, and a
// description match overrides an earlier category match.
func Interpret(question string, t *statement.Table) Query {
	q := strings.ToLower(question)

	var query Query
	for _, entry := range opKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(q, kw) {
				query.Op = entry.op
				break
			}
		}
		if query.Op != OpNone {
			break
		}
	}

	if strings.Contains(q, "categoria") {
		for _, cat := range t.Categories() {
			if strings.Contains(q, strings.ToLower(cat)) {
				query.FilterCol = FilterCategory
				query.FilterValue = cat
				break
			}
		}
	}

	for _, desc := range t.Descriptions() {
		if strings.Contains(q, strings.ToLower(desc)) {
			query.FilterCol = FilterDescription
			query.FilterValue = desc
			break
		}
	}

	return query
}

// Execute applies the query to the table's positive-spend rows.
// ok is false when the question carried no recognizable operation.
func Execute(q Query, t *statement.Table) (decimal.Decimal, bool) {
	if q.Op == OpNone {
		return decimal.Decimal{}, false
	}

	rows := t.PositiveSpend().Rows
	if q.FilterCol != FilterNone {
		needle := strings.ToLower(q.FilterValue)
		var kept = rows[:0:0]
		for _, txn := range rows {
			field := txn.Description
			if q.FilterCol == FilterCategory {
				field = txn.Category
			}
			if strings.Contains(strings.ToLower(field), needle) {
				kept = append(kept, txn)
			}
		}
		rows = kept
	}

	var sum, max decimal.Decimal
	for _, txn := range rows {
		sum = sum.Add(txn.Amount)
		if txn.Amount.GreaterThan(max) {
			max = txn.Amount
		}
	}

	switch q.Op {
	case OpSum:
		return sum, true
	case OpMean:
		if len(rows) == 0 {
			return decimal.Zero, true
		}
		return sum.Div(decimal.NewFromInt(int64(len(rows)))), true
	case OpMax:
		return max, true
	case OpCount:
		return decimal.NewFromInt(int64(len(rows))), true
	default:
		return decimal.Decimal{}, false
	}
}

// RespondQuery formats an executed query result. An unrecognized
// operation gets the fallback answer.
func RespondQuery(q Query, result decimal.Decimal, ok bool) string {
	if !ok {
		return FallbackAnswer
	}

	switch q.Op {
	case OpSum:
		return fmt.Sprintf("O total gasto foi de %s.", money.FormatBRL(result))
	case OpMean:
		return fmt.Sprintf("A média dos gastos é %s.", money.FormatBRL(result))
	case OpMax:
		return fmt.Sprintf("A maior compra foi de %s.", money.FormatBRL(result))
	case OpCount:
		return fmt.Sprintf("Foram encontradas %d transações.", result.IntPart())
	default:
		return FallbackAnswer
	}
}

// Ask runs the two stages end to end: coarse intents first, then the
// finer interpret-then-execute pass for questions the intent table
// does not cover.
func Ask(question string, analysis *Responder, t *statement.Table) string {
	if intent := Classify(question); intent != IntentUnknown {
		return analysis.Respond(intent)
	}
	q := Interpret(question, t)
	result, ok := Execute(q, t)
	return RespondQuery(q, result, ok)
}
