package suppress

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/asenetcky/complementary-suppression/internal/table"
)

// Table holds the sensitive cells of a record table, addressed by 0-based
// row and sensitive-column index.
type Table struct {
	columns []string
	// index of each sensitive column in the source header
	source []int
	cells  [][]Cell
}

// NewTable builds a table directly from counts. Each row of counts must
// have one entry per column.
func NewTable(columns []string, counts [][]int64) (*Table, error) {
	if err := checkColumns(columns); err != nil {
		return nil, err
	}
	t := &Table{
		columns: append([]string(nil), columns...),
		cells:   make([][]Cell, len(counts)),
	}
	for i, row := range counts {
		if len(row) != len(columns) {
			return nil, &ConfigurationError{
				Field:  "counts",
				Reason: fmt.Sprintf("row %d has %d values, want %d", i, len(row), len(columns)),
			}
		}
		t.cells[i] = make([]Cell, len(row))
		for j, n := range row {
			if n < 0 {
				return nil, &ConfigurationError{
					Field:  columns[j],
					Reason: fmt.Sprintf("row %d: negative count %d", i, n),
				}
			}
			t.cells[i][j] = Value(n)
		}
	}
	return t, nil
}

// Load extracts the named sensitive columns from src.
//
// A value equal to symbol loads as masked, so output from a previous run can
// be loaded again. An empty value loads as zero. Anything else must be a
// nonnegative integer.
func Load(src *table.Table, columns []string, symbol string) (*Table, error) {
	if err := checkColumns(columns); err != nil {
		return nil, err
	}

	t := &Table{
		columns: append([]string(nil), columns...),
		source:  make([]int, len(columns)),
		cells:   make([][]Cell, len(src.Records)),
	}
	for j, name := range columns {
		idx := src.Index(name)
		if idx < 0 {
			return nil, &ConfigurationError{Field: "columns", Reason: fmt.Sprintf("sensitive column %q not found in table", name)}
		}
		t.source[j] = idx
	}

	for i, rec := range src.Records {
		row := make([]Cell, len(columns))
		for j, idx := range t.source {
			c, err := parseCell(rec[idx], symbol)
			if err != nil {
				return nil, &ConfigurationError{
					Field:  columns[j],
					Reason: fmt.Sprintf("row %d: %v", i, err),
				}
			}
			row[j] = c
		}
		t.cells[i] = row
	}

	return t, nil
}

func parseCell(raw, symbol string) (Cell, error) {
	s := strings.TrimSpace(raw)
	if symbol != "" && s == symbol {
		return Masked(), nil
	}
	if s == "" {
		return Value(0), nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Cell{}, fmt.Errorf("value %q is not an integer count", raw)
	}
	if n < 0 {
		return Cell{}, fmt.Errorf("negative count %d", n)
	}
	return Value(n), nil
}

func checkColumns(columns []string) error {
	if len(columns) == 0 {
		return &ConfigurationError{Field: "columns", Reason: "at least one sensitive column is required"}
	}
	seen := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		if _, ok := seen[c]; ok {
			return &ConfigurationError{Field: "columns", Reason: fmt.Sprintf("sensitive column %q listed twice", c)}
		}
		seen[c] = struct{}{}
	}
	return nil
}

// Render returns a copy of src with every sensitive cell replaced by its
// decimal form or symbol. src must be the table t was loaded from.
func (t *Table) Render(src *table.Table, symbol string) *table.Table {
	out := src.Clone()
	for i, row := range t.cells {
		for j, c := range row {
			out.Records[i][t.source[j]] = c.Format(symbol)
		}
	}
	return out
}

// Rows returns the number of rows.
func (t *Table) Rows() int {
	return len(t.cells)
}

// Columns returns the sensitive column names in order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// At returns the cell at row i, sensitive column j.
func (t *Table) At(i, j int) Cell {
	return t.cells[i][j]
}

// mask suppresses the cell at (i, j). There is no way to unmask a cell.
func (t *Table) mask(i, j int) {
	t.cells[i][j] = Masked()
}

// Clone returns an independent copy sharing no cell storage.
func (t *Table) Clone() *Table {
	out := &Table{
		columns: append([]string(nil), t.columns...),
		source:  append([]int(nil), t.source...),
		cells:   make([][]Cell, len(t.cells)),
	}
	for i, row := range t.cells {
		out.cells[i] = append([]Cell(nil), row...)
	}
	return out
}

// MaskedCount returns the total number of masked cells.
func (t *Table) MaskedCount() int {
	n := 0
	for _, row := range t.cells {
		for _, c := range row {
			if c.masked {
				n++
			}
		}
	}
	return n
}
