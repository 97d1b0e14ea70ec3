// Package report summarizes what a suppression run hid.
package report

import (
	"github.com/asenetcky/complementary-suppression/internal/suppress"
	"gonum.org/v1/gonum/floats"
)

// ColumnSummary describes suppression within one sensitive column.
type ColumnSummary struct {
	Name          string  `json:"name"`
	Total         int64   `json:"total"`
	Primary       int     `json:"primary"`
	Complementary int     `json:"complementary"`
	Hidden        int64   `json:"hidden"`
	Loss          float64 `json:"loss"`
}

// Summary describes a whole run.
type Summary struct {
	Rows          int             `json:"rows"`
	Cells         int             `json:"cells"`
	PreMasked     int             `json:"pre_masked"`
	Primary       int             `json:"primary"`
	Complementary int             `json:"complementary"`
	Iterations    int             `json:"iterations"`
	Total         int64           `json:"total"`
	Hidden        int64           `json:"hidden"`
	Loss          float64         `json:"loss"`
	Columns       []ColumnSummary `json:"columns"`
}

// Summarize compares the table before the run with the table after it.
// Loss is the share of the visible total that ended up masked; cells that
// were already masked on input count towards neither.
func Summarize(before, after *suppress.Table, result *suppress.Result) Summary {
	cols := before.Columns()
	s := Summary{
		Rows:       before.Rows(),
		Cells:      before.Rows() * len(cols),
		Iterations: result.Iterations,
		Columns:    make([]ColumnSummary, len(cols)),
	}

	complementary := make([]int, len(cols))
	for _, r := range result.Repairs {
		complementary[r.Column]++
	}

	totals := make([]float64, len(cols))
	hidden := make([]float64, len(cols))
	for j, name := range cols {
		cs := ColumnSummary{Name: name, Complementary: complementary[j]}
		newlyMasked := 0
		for i := 0; i < before.Rows(); i++ {
			n, ok := before.At(i, j).Int()
			if !ok {
				s.PreMasked++
				continue
			}
			cs.Total += n
			if after.At(i, j).IsMasked() {
				cs.Hidden += n
				newlyMasked++
			}
		}
		cs.Primary = newlyMasked - cs.Complementary
		cs.Loss = ratio(float64(cs.Hidden), float64(cs.Total))

		totals[j] = float64(cs.Total)
		hidden[j] = float64(cs.Hidden)
		s.Total += cs.Total
		s.Hidden += cs.Hidden
		s.Primary += cs.Primary
		s.Complementary += cs.Complementary
		s.Columns[j] = cs
	}

	s.Loss = ratio(floats.Sum(hidden), floats.Sum(totals))
	return s
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
