package suppress

import "fmt"

// Problem describes a cell, row or column that breaks a suppression rule.
type Problem struct {
	Axis   Axis   `json:"axis"`
	Index  int    `json:"index"`
	Column string `json:"column,omitempty"`
	Detail string `json:"detail"`
}

func (p Problem) String() string {
	if p.Axis == AxisColumn {
		return fmt.Sprintf("column %q: %s", p.Column, p.Detail)
	}
	if p.Column != "" {
		return fmt.Sprintf("row %d, column %q: %s", p.Index, p.Column, p.Detail)
	}
	return fmt.Sprintf("row %d: %s", p.Index, p.Detail)
}

// Verify checks an already suppressed table. It reports visible nonzero
// counts at or below bound, and rows or columns with exactly one masked
// cell. A nil result means the table is safe to publish.
func Verify(t *Table, bound int64) []Problem {
	var problems []Problem

	for i, row := range t.cells {
		for j, c := range row {
			if !c.masked && c.n != 0 && c.n <= bound {
				problems = append(problems, Problem{
					Axis:   AxisRow,
					Index:  i,
					Column: t.columns[j],
					Detail: fmt.Sprintf("visible count %d is at or below the bound %d", c.n, bound),
				})
			}
		}
	}

	rows, cols := TakeCensus(t).Violations()
	for _, i := range rows {
		problems = append(problems, Problem{Axis: AxisRow, Index: i, Detail: "exactly one masked cell"})
	}
	for _, j := range cols {
		problems = append(problems, Problem{Axis: AxisColumn, Index: j, Column: t.columns[j], Detail: "exactly one masked cell"})
	}

	return problems
}
