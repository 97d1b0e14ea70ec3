package prepare

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/asenetcky/complementary-suppression/internal/table"
)

// Pivot converts long data to wide layout. Each distinct tuple of ids
// becomes one row, each distinct value of nameCol becomes one column holding
// the summed integer values from valueCol. Rows and columns keep the order
// in which they were first seen; combinations that never occur are 0.
func Pivot(t *table.Table, ids []string, nameCol, valueCol string) (*table.Table, error) {
	idIdx := make([]int, len(ids))
	for i, id := range ids {
		if idIdx[i] = t.Index(id); idIdx[i] < 0 {
			return nil, fmt.Errorf("pivot: id column %q not found", id)
		}
	}
	nameIdx := t.Index(nameCol)
	if nameIdx < 0 {
		return nil, fmt.Errorf("pivot: names column %q not found", nameCol)
	}
	valueIdx := t.Index(valueCol)
	if valueIdx < 0 {
		return nil, fmt.Errorf("pivot: values column %q not found", valueCol)
	}

	var (
		names []string
		keys  [][]string
		sums  [][]int64
	)
	nameSlot := make(map[string]int)
	keySlot := make(map[string]int)
	idSet := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		idSet[id] = struct{}{}
	}

	for line, rec := range t.Records {
		name := strings.TrimSpace(rec[nameIdx])
		if _, ok := nameSlot[name]; !ok {
			if _, clash := idSet[name]; clash {
				return nil, fmt.Errorf("pivot: category %q collides with an id column", name)
			}
			nameSlot[name] = len(names)
			names = append(names, name)
			for i := range sums {
				sums[i] = append(sums[i], 0)
			}
		}

		v, err := parseCount(rec[valueIdx])
		if err != nil {
			return nil, fmt.Errorf("pivot: row %d: %w", line, err)
		}

		key := make([]string, len(idIdx))
		for i, idx := range idIdx {
			key[i] = rec[idx]
		}
		k := strings.Join(key, "\x00")
		slot, ok := keySlot[k]
		if !ok {
			slot = len(keys)
			keySlot[k] = slot
			keys = append(keys, key)
			sums = append(sums, make([]int64, len(names)))
		}
		sums[slot][nameSlot[name]] += v
	}

	out := &table.Table{
		Header:  append(append([]string(nil), ids...), names...),
		Records: make([][]string, len(keys)),
	}
	for i, key := range keys {
		rec := append([]string(nil), key...)
		for _, n := range sums[i] {
			rec = append(rec, strconv.FormatInt(n, 10))
		}
		out.Records[i] = rec
	}
	return out, nil
}

func parseCount(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("value %q is not an integer count", raw)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative count %d", n)
	}
	return n, nil
}
