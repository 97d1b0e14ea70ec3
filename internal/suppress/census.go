package suppress

// Census holds masked-cell counts per row and per sensitive column.
type Census struct {
	Rows    []int
	Columns []int
}

// TakeCensus counts the masked cells of t. It is always computed fresh; a
// Census goes stale as soon as t is repaired.
func TakeCensus(t *Table) Census {
	c := Census{
		Rows:    make([]int, len(t.cells)),
		Columns: make([]int, len(t.columns)),
	}
	for i, row := range t.cells {
		for j, cell := range row {
			if cell.masked {
				c.Rows[i]++
				c.Columns[j]++
			}
		}
	}
	return c
}

// Violations returns the rows and columns holding exactly one masked cell,
// in ascending order. Both are empty when the table is compliant.
func (c Census) Violations() (rows, cols []int) {
	return singles(c.Rows), singles(c.Columns)
}

// Compliant reports whether no row or column has exactly one masked cell.
func (c Census) Compliant() bool {
	rows, cols := c.Violations()
	return len(rows) == 0 && len(cols) == 0
}

func singles(counts []int) []int {
	var out []int
	for i, n := range counts {
		if n == 1 {
			out = append(out, i)
		}
	}
	return out
}
