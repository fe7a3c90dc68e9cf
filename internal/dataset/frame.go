// Package dataset provides a small column-named table used to move CSV data
// between pipeline stages.
package dataset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pable/go-mlb-hits/internal/model"
)

// Frame is an in-memory CSV table. Every row has len(Columns) cells.
type Frame struct {
	Columns []string
	Rows    [][]string
	index   map[string]int
}

// New returns an empty frame with the given header.
func New(columns ...string) *Frame {
	f := &Frame{Columns: append([]string(nil), columns...)}
	f.reindex()
	return f
}

func (f *Frame) reindex() {
	f.index = make(map[string]int, len(f.Columns))
	for i, c := range f.Columns {
		if _, dup := f.index[c]; !dup {
			f.index[c] = i
		}
	}
}

// Len returns the number of data rows.
func (f *Frame) Len() int { return len(f.Rows) }

// Empty reports whether the frame has no data rows.
func (f *Frame) Empty() bool { return len(f.Rows) == 0 }

// Has reports whether the named column exists.
func (f *Frame) Has(col string) bool {
	_, ok := f.index[col]
	return ok
}

// Index returns the position of col, or -1.
func (f *Frame) Index(col string) int {
	if i, ok := f.index[col]; ok {
		return i
	}
	return -1
}

// Append adds a row, padding or truncating it to the header width.
func (f *Frame) Append(row ...string) {
	r := make([]string, len(f.Columns))
	copy(r, row)
	f.Rows = append(f.Rows, r)
}

// AppendMap adds a row from a name->value map; unknown keys are ignored.
func (f *Frame) AppendMap(m map[string]string) {
	r := make([]string, len(f.Columns))
	for i, c := range f.Columns {
		r[i] = m[c]
	}
	f.Rows = append(f.Rows, r)
}

// Get returns the cell at row i for col, or "" when the column is absent.
func (f *Frame) Get(i int, col string) string {
	j, ok := f.index[col]
	if !ok || i < 0 || i >= len(f.Rows) {
		return ""
	}
	return f.Rows[i][j]
}

// Float parses the cell at row i for col. ok is false for absent columns,
// null markers and non-numeric text.
func (f *Frame) Float(i int, col string) (float64, bool) {
	return ParseFloat(f.Get(i, col))
}

// RowMap returns row i keyed by column name.
func (f *Frame) RowMap(i int) map[string]string {
	m := make(map[string]string, len(f.Columns))
	for j, c := range f.Columns {
		m[c] = f.Rows[i][j]
	}
	return m
}

// Select projects the frame onto the columns that exist, in the given order.
// Missing columns are skipped and returned so callers can report them.
func (f *Frame) Select(cols []string) (*Frame, []string) {
	var keep []string
	var idx []int
	var missing []string
	for _, c := range cols {
		j, ok := f.index[c]
		if !ok {
			missing = append(missing, c)
			continue
		}
		keep = append(keep, c)
		idx = append(idx, j)
	}
	out := New(keep...)
	out.Rows = make([][]string, 0, len(f.Rows))
	for _, r := range f.Rows {
		nr := make([]string, len(idx))
		for k, j := range idx {
			nr[k] = r[j]
		}
		out.Rows = append(out.Rows, nr)
	}
	return out, missing
}

// Filter returns a frame holding the rows for which keep returns true.
func (f *Frame) Filter(keep func(i int) bool) *Frame {
	out := New(f.Columns...)
	for i, r := range f.Rows {
		if keep(i) {
			out.Rows = append(out.Rows, r)
		}
	}
	return out
}

// Rename changes a column name in place.
func (f *Frame) Rename(from, to string) error {
	j, ok := f.index[from]
	if !ok {
		return fmt.Errorf("rename %q: no such column", from)
	}
	f.Columns[j] = to
	f.reindex()
	return nil
}

// ParseFloat parses a numeric CSV cell, treating null markers as missing.
// Trailing percent signs ("8.5 %") are accepted as-is, not rescaled.
func ParseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if model.IsNull(s) {
		return 0, false
	}
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if v != v { // NaN
		return 0, false
	}
	return v, true
}

// FormatFloat renders a float the way the CSV writers in this repo do.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
