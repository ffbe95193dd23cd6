// Package runlog keeps a CSV audit trail of enrichment runs.
package runlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fatura-dev/fatura/internal/statement"
)

// Entry is one row in the enrichment run log.
type Entry struct {
	Timestamp  time.Time
	RunID      string
	Input      string
	Output     string
	Rows       int
	BadDates   int
	BadAmounts int
	Unassigned int
}

// Header is the CSV header for enrich-log.csv.
const Header = "timestamp,run_id,input,output,rows,bad_dates,bad_amounts,unassigned"

const (
	numFields     = 8
	logDir        = "logs"
	logFile       = "logs/enrich-log.csv"
	colTimestamp  = 0
	colRunID      = 1
	colInput      = 2
	colOutput     = 3
	colRows       = 4
	colBadDates   = 5
	colBadAmounts = 6
	colUnassigned = 7
)

// NewEntry stamps a fresh run entry with a random run ID.
func NewEntry(input, output string, stats statement.Stats) Entry {
	return Entry{
		Timestamp:  time.Now().UTC(),
		RunID:      uuid.NewString(),
		Input:      input,
		Output:     output,
		Rows:       stats.Rows,
		BadDates:   stats.BadDates,
		BadAmounts: stats.BadAmounts,
		Unassigned: stats.Unassigned,
	}
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colRunID] = e.RunID
	row[colInput] = e.Input
	row[colOutput] = e.Output
	row[colRows] = strconv.Itoa(e.Rows)
	row[colBadDates] = strconv.Itoa(e.BadDates)
	row[colBadAmounts] = strconv.Itoa(e.BadAmounts)
	row[colUnassigned] = strconv.Itoa(e.Unassigned)
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	counts := make([]int, 4)
	for i, col := range []int{colRows, colBadDates, colBadAmounts, colUnassigned} {
		counts[i], err = strconv.Atoi(record[col])
		if err != nil {
			return Entry{}, fmt.Errorf("parsing count %q: %w", record[col], err)
		}
	}

	return Entry{
		Timestamp:  ts,
		RunID:      record[colRunID],
		Input:      record[colInput],
		Output:     record[colOutput],
		Rows:       counts[0],
		BadDates:   counts[1],
		BadAmounts: counts[2],
		Unassigned: counts[3],
	}, nil
}

// Append writes entries to <workspace>/logs/enrich-log.csv, creating
// the file and header if needed.
func Append(workspace string, entries []Entry) error {
	dir := filepath.Join(workspace, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(workspace, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	return cw.Error()
}

// Read returns all entries from <workspace>/logs/enrich-log.csv.
// Returns an empty slice if the file does not exist.
func Read(workspace string) ([]Entry, error) {
	path := filepath.Join(workspace, logFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading run log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
