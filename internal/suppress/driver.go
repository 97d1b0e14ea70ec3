package suppress

import (
	"context"
	"log/slog"
	"math/rand/v2"
)

// Options configures a suppression run.
type Options struct {
	// CellBound is the inclusive threshold for primary suppression.
	CellBound int64

	// Rand breaks ties between equally small repair candidates. When nil a
	// fresh PCG source is created for the run.
	Rand Rand

	// MaxIterations caps the repair loop. Zero means rows*columns+1, which
	// no well-formed table can reach.
	MaxIterations int

	Logger *slog.Logger
}

// Result summarizes a completed run.
type Result struct {
	// Primary is the number of cells masked by the threshold pass.
	Primary int `json:"primary"`
	// Repairs lists complementary suppressions in the order they happened.
	Repairs []Repair `json:"repairs"`
	// Iterations is the number of census passes, including the final one
	// that found no violations.
	Iterations int `json:"iterations"`
}

// Run masks t in place: threshold masking followed by complementary repair
// until every row and sensitive column holds zero or at least two masked
// cells. On error t must be discarded.
func Run(ctx context.Context, t *Table, opts Options) (*Result, error) {
	if opts.CellBound < 0 {
		return nil, &ConfigurationError{Field: "cell_bound", Reason: "must be zero or greater"}
	}

	primary, err := Mask(t, opts.CellBound)
	if err != nil {
		return nil, err
	}

	result, err := Stabilize(ctx, t, opts)
	if err != nil {
		return nil, err
	}
	result.Primary = primary
	return result, nil
}

// Stabilize runs the complementary repair loop on an already masked table.
//
// Each iteration takes a census, repairs every violating row, then takes a
// fresh column census of the repaired table and repairs every column that
// still has exactly one masked cell. The loop ends when a census finds no
// violations.
func Stabilize(ctx context.Context, t *Table, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	limit := opts.MaxIterations
	if limit <= 0 {
		limit = t.Rows()*len(t.columns) + 1
	}

	result := &Result{}
	for {
		if result.Iterations >= limit {
			return nil, &NonTerminationError{Iterations: result.Iterations}
		}
		if err := ctx.Err(); err != nil {
			return nil, &NonTerminationError{Iterations: result.Iterations, Err: err}
		}
		result.Iterations++

		rows, cols := TakeCensus(t).Violations()
		logger.Debug("census",
			"iteration", result.Iterations,
			"row_violations", len(rows),
			"column_violations", len(cols))
		if len(rows) == 0 && len(cols) == 0 {
			return result, nil
		}

		for _, i := range rows {
			r, err := RepairRow(t, i, rng)
			if err != nil {
				return nil, err
			}
			logRepair(logger, t, r)
			result.Repairs = append(result.Repairs, r)
		}

		if len(rows) > 0 {
			_, cols = TakeCensus(t).Violations()
		}
		for _, j := range cols {
			r, err := RepairColumn(t, j, rng)
			if err != nil {
				return nil, err
			}
			logRepair(logger, t, r)
			result.Repairs = append(result.Repairs, r)
		}
	}
}

func logRepair(logger *slog.Logger, t *Table, r Repair) {
	logger.Debug("complementary suppression",
		"axis", r.Axis.String(),
		"row", r.Row,
		"column", t.columns[r.Column],
		"value", r.Value,
		"ties", r.Ties)
}
