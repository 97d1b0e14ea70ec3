package suppress

// Mask suppresses every visible nonzero cell whose count is at most bound
// and returns the number of cells it masked. Zero counts stay visible.
func Mask(t *Table, bound int64) (int, error) {
	if bound < 0 {
		return 0, &ConfigurationError{Field: "cell_bound", Reason: "must be zero or greater"}
	}

	masked := 0
	for i, row := range t.cells {
		for j, c := range row {
			if c.masked || c.n == 0 || c.n > bound {
				continue
			}
			t.mask(i, j)
			masked++
		}
	}
	return masked, nil
}
