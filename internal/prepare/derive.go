package prepare

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/asenetcky/complementary-suppression/internal/table"
)

// SymbolPattern matches any cell containing symbol literally, so symbols
// such as "*" or "<5" can be detected inside pre-formatted values.
func SymbolPattern(symbol string) *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(symbol))
}

// AddTotal appends a column holding the row sum of columns.
func AddTotal(t *table.Table, columns []string, name string) error {
	idx, err := indices(t, columns)
	if err != nil {
		return fmt.Errorf("total %q: %w", name, err)
	}

	values := make([]string, t.Len())
	for i, rec := range t.Records {
		var sum int64
		for _, j := range idx {
			n, err := parseCount(rec[j])
			if err != nil {
				return fmt.Errorf("total %q: row %d, column %q: %w", name, i, t.Header[j], err)
			}
			sum += n
		}
		values[i] = strconv.FormatInt(sum, 10)
	}
	return t.AppendColumn(name, values)
}

// Ratio describes a derived percentage column.
type Ratio struct {
	Name        string
	Numerator   string
	Denominator string
}

// AddRatio appends num/den*100 with one decimal place. The percentage is
// masked when the numerator is a nonzero count at or below bound, or when
// either operand already carries symbol. A zero denominator yields an empty
// cell.
func AddRatio(t *table.Table, r Ratio, bound int64, symbol string) error {
	idx, err := indices(t, []string{r.Numerator, r.Denominator})
	if err != nil {
		return fmt.Errorf("ratio %q: %w", r.Name, err)
	}
	masked := SymbolPattern(symbol)

	values := make([]string, t.Len())
	for i, rec := range t.Records {
		numRaw, denRaw := rec[idx[0]], rec[idx[1]]
		if symbol != "" && (masked.MatchString(numRaw) || masked.MatchString(denRaw)) {
			values[i] = symbol
			continue
		}

		num, err := parseCount(numRaw)
		if err != nil {
			return fmt.Errorf("ratio %q: row %d: %w", r.Name, i, err)
		}
		den, err := parseCount(denRaw)
		if err != nil {
			return fmt.Errorf("ratio %q: row %d: %w", r.Name, i, err)
		}

		switch {
		case num != 0 && num <= bound:
			values[i] = symbol
		case den == 0:
			values[i] = ""
		default:
			values[i] = strconv.FormatFloat(float64(num)/float64(den)*100, 'f', 1, 64)
		}
	}
	return t.AppendColumn(r.Name, values)
}

func indices(t *table.Table, columns []string) ([]int, error) {
	idx := make([]int, len(columns))
	for i, c := range columns {
		if idx[i] = t.Index(c); idx[i] < 0 {
			return nil, fmt.Errorf("column %q not found", c)
		}
	}
	return idx, nil
}
