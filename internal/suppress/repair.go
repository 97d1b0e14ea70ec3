package suppress

// Rand picks tie-breaks. *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// Repair records one complementary suppression.
type Repair struct {
	Axis   Axis  `json:"axis"`
	Row    int   `json:"row"`
	Column int   `json:"column"`
	Value  int64 `json:"value"`
	// Ties is the number of candidates that shared the minimum value.
	Ties int `json:"ties"`
}

type position struct {
	row, col int
}

// RepairRow masks the smallest unmasked nonzero cell in row i.
func RepairRow(t *Table, i int, rng Rand) (Repair, error) {
	candidates := make([]position, 0, len(t.columns))
	for j := range t.columns {
		candidates = append(candidates, position{i, j})
	}
	r, ok := repair(t, candidates, rng)
	if !ok {
		return Repair{}, &NoRepairCandidateError{Axis: AxisRow, Index: i}
	}
	r.Axis = AxisRow
	return r, nil
}

// RepairColumn masks the smallest unmasked nonzero cell in sensitive column j.
func RepairColumn(t *Table, j int, rng Rand) (Repair, error) {
	candidates := make([]position, 0, len(t.cells))
	for i := range t.cells {
		candidates = append(candidates, position{i, j})
	}
	r, ok := repair(t, candidates, rng)
	if !ok {
		return Repair{}, &NoRepairCandidateError{Axis: AxisColumn, Index: j, Name: t.columns[j]}
	}
	r.Axis = AxisColumn
	return r, nil
}

// repair masks the minimum-valued candidate among line. ok is false when
// line holds no unmasked nonzero cell.
func repair(t *Table, line []position, rng Rand) (Repair, bool) {
	var (
		least int64
		ties  []position
	)
	for _, p := range line {
		c := t.cells[p.row][p.col]
		if !c.candidate() {
			continue
		}
		switch {
		case len(ties) == 0 || c.n < least:
			least = c.n
			ties = append(ties[:0], p)
		case c.n == least:
			ties = append(ties, p)
		}
	}
	if len(ties) == 0 {
		return Repair{}, false
	}

	pick := ties[0]
	if len(ties) > 1 {
		pick = ties[rng.IntN(len(ties))]
	}
	t.mask(pick.row, pick.col)

	return Repair{Row: pick.row, Column: pick.col, Value: least, Ties: len(ties)}, true
}
