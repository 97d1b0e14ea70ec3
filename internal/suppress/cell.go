package suppress

import "strconv"

// Cell is a sensitive count that is either visible or masked.
type Cell struct {
	n      int64
	masked bool
}

// Value returns a visible cell holding n.
func Value(n int64) Cell {
	return Cell{n: n}
}

// Masked returns a masked cell.
func Masked() Cell {
	return Cell{masked: true}
}

// IsMasked reports whether the cell has been suppressed.
func (c Cell) IsMasked() bool {
	return c.masked
}

// Int returns the visible count. ok is false for masked cells.
func (c Cell) Int() (n int64, ok bool) {
	if c.masked {
		return 0, false
	}
	return c.n, true
}

// candidate reports whether the cell may be masked by a repair.
func (c Cell) candidate() bool {
	return !c.masked && c.n != 0
}

// Format renders the cell for output.
func (c Cell) Format(symbol string) string {
	if c.masked {
		return symbol
	}
	return strconv.FormatInt(c.n, 10)
}

func (c Cell) String() string {
	return c.Format("<masked>")
}
