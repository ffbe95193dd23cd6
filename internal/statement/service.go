package statement

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
)

// Synthetic filter options prepended to the real ones.
const (
	AllPeriods    = "Resumo Total"
	AllCategories = "Todas"
)

// ErrNotFound reports a missing statement file; the pipeline performs
// no computation in that case.
var ErrNotFound = errors.New("statement file not found")

// Service owns the process-wide statement table: loaded once, reused
// read-only, and re-read only on explicit request. Staleness detection
// is the caller's problem.
type Service struct {
	path   string
	cached *Table
}

// NewService creates a Service over the CSV at path.
func NewService(path string) *Service {
	return &Service{path: path}
}

// Load reads the file and replaces the cached table.
func (s *Service) Load() (*Table, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, s.path)
	}
	if err != nil {
		return nil, fmt.Errorf("opening statement %s: %w", s.path, err)
	}
	defer f.Close()

	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading statement %s: %w", s.path, err)
	}

	s.cached = t
	return t, nil
}

// Table returns the cached table, loading it on first use.
func (s *Service) Table() (*Table, error) {
	if s.cached != nil {
		return s.cached, nil
	}
	return s.Load()
}

// Invalidate drops the cached table; the next Table call re-reads the
// file.
func (s *Service) Invalidate() {
	s.cached = nil
}

// filter returns the rows matching keep, sharing the column layout.
func (t *Table) filter(keep func(i int) bool) *Table {
	out := &Table{columns: t.columns}
	for i, txn := range t.Rows {
		if keep(i) {
			out.Rows = append(out.Rows, txn)
		}
	}
	return out
}

// PositiveSpend returns the view of expense rows with parsed amounts.
func (t *Table) PositiveSpend() *Table {
	return t.filter(func(i int) bool { return t.Rows[i].PositiveSpend() })
}

// FilterSource returns the rows of one source file; the synthetic
// all-periods option returns the table unchanged.
func (t *Table) FilterSource(name string) *Table {
	if name == AllPeriods {
		return t
	}
	return t.filter(func(i int) bool { return t.Rows[i].SourceFile == name })
}

// FilterCategory returns the rows of one category; the synthetic
// all-categories option returns the table unchanged.
func (t *Table) FilterCategory(name string) *Table {
	if name == AllCategories {
		return t
	}
	return t.filter(func(i int) bool { return t.Rows[i].Category == name })
}

// SourceOptions returns the distinct source files sorted
// alphabetically, with the synthetic all-periods option first. This is
// the selector list of the dashboard collaborator; index order doubles
// as the "previous period" ordering.
func (t *Table) SourceOptions() []string {
	return append([]string{AllPeriods}, t.distinct(func(i int) string { return t.Rows[i].SourceFile }, true)...)
}

// CategoryOptions returns the distinct categories sorted
// alphabetically, with the synthetic all-categories option first.
func (t *Table) CategoryOptions() []string {
	return append([]string{AllCategories}, t.distinct(func(i int) string { return t.Rows[i].Category }, true)...)
}

// Descriptions returns the distinct descriptions in encounter order,
// the iteration order the query interpreter scans filters in.
func (t *Table) Descriptions() []string {
	return t.distinct(func(i int) string { return t.Rows[i].Description }, false)
}

// Categories returns the distinct categories in encounter order.
func (t *Table) Categories() []string {
	return t.distinct(func(i int) string { return t.Rows[i].Category }, false)
}

// HasCategories reports whether any row carries a category.
func (t *Table) HasCategories() bool {
	for _, txn := range t.Rows {
		if strings.TrimSpace(txn.Category) != "" {
			return true
		}
	}
	return false
}

func (t *Table) distinct(value func(i int) string, sorted bool) []string {
	seen := make(map[string]bool)
	var out []string
	for i := range t.Rows {
		v := value(i)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	if sorted {
		sort.Strings(out)
	}
	return out
}
