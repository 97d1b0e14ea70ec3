// Package table provides the uniform string layout that count tables are
// read from and written back to.
//
// Every cell is a string; interpretation of sensitive columns as counts
// happens in the suppress package.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Table is an ordered header plus ordered records of equal width.
type Table struct {
	Header  []string
	Records [][]string
}

// ParseDelimiter converts a configured delimiter to a rune.
// The two-character literal `\t` is accepted for tab.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "", ",":
		return ',', nil
	case `\t`, "\t", "tab":
		return '\t', nil
	}
	r := []rune(s)
	if len(r) != 1 {
		return 0, fmt.Errorf("invalid delimiter %q: must be a single character", s)
	}
	return r[0], nil
}

// ReadFile opens path and reads a table from it.
func ReadFile(path string, delim rune) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := ReadCSV(f, delim)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return t, nil
}

// ReadCSV reads a delimited table. The first record is the header.
func ReadCSV(r io.Reader, delim rune) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("missing header row")
	}
	if err != nil {
		return nil, err
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	t := &Table{Header: header}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) != len(header) {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: expected %d fields, got %d", line, len(header), len(rec))
		}
		t.Records = append(t.Records, rec)
	}

	return t, nil
}

// WriteCSV writes the header and all records.
func (t *Table) WriteCSV(w io.Writer, delim rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = delim
	if err := cw.Write(t.Header); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Records); err != nil {
		return err
	}
	return cw.Error()
}

// Index returns the position of the named column, or -1.
func (t *Table) Index(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Column returns a copy of the named column's values.
func (t *Table) Column(name string) ([]string, error) {
	idx := t.Index(name)
	if idx < 0 {
		return nil, fmt.Errorf("column %q not found", name)
	}
	out := make([]string, len(t.Records))
	for i, rec := range t.Records {
		out[i] = rec[idx]
	}
	return out, nil
}

// AppendColumn adds a column at the right edge. values must have one entry
// per record.
func (t *Table) AppendColumn(name string, values []string) error {
	if t.Index(name) >= 0 {
		return fmt.Errorf("column %q already exists", name)
	}
	if len(values) != len(t.Records) {
		return fmt.Errorf("column %q: expected %d values, got %d", name, len(t.Records), len(values))
	}
	t.Header = append(t.Header, name)
	for i := range t.Records {
		t.Records[i] = append(t.Records[i], values[i])
	}
	return nil
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.Records)
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	out := &Table{
		Header:  append([]string(nil), t.Header...),
		Records: make([][]string, len(t.Records)),
	}
	for i, rec := range t.Records {
		out.Records[i] = append([]string(nil), rec...)
	}
	return out
}
