// Package suppress implements complementary cell suppression over tables of
// nonnegative counts.
//
// A run has two phases:
//
//  1. Threshold masking - every nonzero count at or below the cell bound is
//     masked (primary suppression).
//  2. Complementary repair - while any row or sensitive column holds exactly
//     one masked cell, the smallest unmasked nonzero cell in that row or
//     column is masked as well. Ties are broken uniformly at random using the
//     caller's source.
//
// On success every row and every sensitive column has either zero or at
// least two masked cells, so no masked value can be recovered by
// subtracting the visible cells from a published total. Zero counts are
// never masked.
//
// Basic usage:
//
//	tbl, err := suppress.Load(records, []string{"male", "female"}, "*")
//	if err != nil {
//	    return err
//	}
//	result, err := suppress.Run(ctx, tbl, suppress.Options{
//	    CellBound: 10,
//	    Rand:      rand.New(rand.NewPCG(seed, seed)),
//	})
//	if err != nil {
//	    return err
//	}
//	out := tbl.Render(records, "*")
//
// A run either satisfies both properties or returns an error; there is no
// partially repaired output.
package suppress
