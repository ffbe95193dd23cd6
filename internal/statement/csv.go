package statement

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatura-dev/fatura/internal/cycle"
	"github.com/fatura-dev/fatura/internal/model"
	"github.com/fatura-dev/fatura/internal/money"
)

// Column names of the consolidated statement export.
const (
	ColMesFatura    = "MES_FATURA"
	ColSemanaFatura = "SEMANA_FATURA"
	ColData         = "Data"
	ColArquivo      = "Arquivo"
	ColDescricao    = "Descrição"
	ColValor        = "Valor (R$)"
	ColCategoria    = "Categoria"
)

const dateFormat = "2006-01-02"

// Table is the in-memory statement table. It is built once per
// ingestion and treated as read-only; view methods return new Tables.
type Table struct {
	Rows []model.Transaction

	// columns is the original header order minus the date and derived
	// columns; Write appends these after MES_FATURA, SEMANA_FATURA and
	// Data so enriched output preserves the input layout.
	columns []string
}

// Read parses a statement CSV, raw or already enriched. Columns are
// located by header name because Categoria and the derived columns are
// optional. Unparseable dates and amounts are tolerated: the row is
// kept with the corresponding OK flag cleared.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading statement CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("statement CSV is empty, header row required")
	}

	header := records[0]
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}

	for _, required := range []string{ColArquivo, ColData, ColDescricao, ColValor} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("statement CSV missing column %q", required)
		}
	}

	var columns []string
	for _, name := range header {
		switch name {
		case ColMesFatura, ColSemanaFatura, ColData:
		default:
			columns = append(columns, name)
		}
	}

	t := &Table{columns: columns}
	for i, rec := range records[1:] {
		txn, err := unmarshalRow(rec, idx)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		t.Rows = append(t.Rows, txn)
	}
	return t, nil
}

func unmarshalRow(rec []string, idx map[string]int) (model.Transaction, error) {
	field := func(name string) string {
		if i, ok := idx[name]; ok && i < len(rec) {
			return rec[i]
		}
		return ""
	}

	txn := model.Transaction{
		RawDate:     field(ColData),
		SourceFile:  field(ColArquivo),
		Description: field(ColDescricao),
		RawAmount:   field(ColValor),
		Category:    field(ColCategoria),
		CycleLabel:  cycle.LabelUnassigned,
	}

	txn.Amount, txn.AmountOK = money.Parse(txn.RawAmount)

	// Enriched files carry resolved dates; raw exports keep theirs as
	// text until Enrich runs.
	if date, err := time.ParseInLocation(dateFormat, txn.RawDate, time.UTC); err == nil {
		txn.Date = date
		txn.DateOK = true
	}

	for name := range idx {
		switch name {
		case ColMesFatura, ColSemanaFatura, ColData, ColArquivo, ColDescricao, ColValor, ColCategoria:
		default:
			if txn.Extra == nil {
				txn.Extra = make(map[string]string)
			}
			txn.Extra[name] = field(name)
		}
	}

	if _, ok := idx[ColMesFatura]; ok {
		if label := field(ColMesFatura); label != "" {
			txn.CycleLabel = label
		}
	}
	if _, ok := idx[ColSemanaFatura]; ok {
		if raw := field(ColSemanaFatura); raw != "" {
			week, err := strconv.Atoi(raw)
			if err != nil {
				return model.Transaction{}, fmt.Errorf("parsing %s %q: %w", ColSemanaFatura, raw, err)
			}
			txn.CycleWeek = week
		}
	}

	return txn, nil
}

// Write renders the enriched table: the two derived columns first, the
// date third, then the remaining original columns in input order.
// Resolved dates serialize as YYYY-MM-DD and parsed amounts in
// canonical BRL form; unresolved values fall back to empty / raw text.
func Write(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := append([]string{ColMesFatura, ColSemanaFatura, ColData}, t.columns...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, txn := range t.Rows {
		if err := cw.Write(marshalRow(txn, t.columns)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

func marshalRow(txn model.Transaction, columns []string) []string {
	row := make([]string, 0, len(columns)+3)

	row = append(row, txn.CycleLabel, strconv.Itoa(txn.CycleWeek))

	if txn.DateOK {
		row = append(row, txn.Date.Format(dateFormat))
	} else {
		row = append(row, "")
	}

	for _, name := range columns {
		switch name {
		case ColArquivo:
			row = append(row, txn.SourceFile)
		case ColDescricao:
			row = append(row, txn.Description)
		case ColValor:
			if txn.AmountOK {
				row = append(row, money.Format(txn.Amount))
			} else {
				row = append(row, txn.RawAmount)
			}
		case ColCategoria:
			row = append(row, txn.Category)
		default:
			row = append(row, txn.Extra[name])
		}
	}
	return row
}
