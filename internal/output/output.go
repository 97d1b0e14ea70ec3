// Package output renders suppressed tables, run summaries and check results
// as CSV, JSON or aligned tables.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/asenetcky/complementary-suppression/internal/report"
	"github.com/asenetcky/complementary-suppression/internal/suppress"
	"github.com/asenetcky/complementary-suppression/internal/table"
)

// Format represents an output format type.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
	FormatTable Format = "table"
)

// ParseFormat converts a string to a Format, defaulting to csv.
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON
	case "table":
		return FormatTable
	default:
		return FormatCSV
	}
}

// TableOptions controls how a record table is written.
type TableOptions struct {
	Delimiter  rune
	MaskSymbol string
	Color      ColorMode
}

// Writer handles writing formatted output.
type Writer struct {
	w      io.Writer
	format Format
}

// New creates a new output Writer.
func New(w io.Writer, format Format) *Writer {
	return &Writer{w: w, format: format}
}

// WriteTable outputs a record table in the configured format.
func (wr *Writer) WriteTable(t *table.Table, opts TableOptions) error {
	switch wr.format {
	case FormatJSON:
		return wr.writeTableJSON(t)
	case FormatTable:
		return wr.writeTableAligned(t, opts)
	default:
		delim := opts.Delimiter
		if delim == 0 {
			delim = ','
		}
		return t.WriteCSV(wr.w, delim)
	}
}

// WriteJSON outputs any value as indented JSON.
func (wr *Writer) WriteJSON(v interface{}) error {
	enc := json.NewEncoder(wr.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// FileRows is one input file's table in a multi-file JSON document.
type FileRows struct {
	File string              `json:"file"`
	Rows []map[string]string `json:"rows"`
}

// WriteTablesJSON writes several tables as one JSON array of FileRows.
// files and tables are parallel.
func (wr *Writer) WriteTablesJSON(files []string, tables []*table.Table) error {
	docs := make([]FileRows, len(tables))
	for i, t := range tables {
		docs[i] = FileRows{File: files[i], Rows: jsonRows(t)}
	}
	return wr.WriteJSON(docs)
}

func (wr *Writer) writeTableJSON(t *table.Table) error {
	return wr.WriteJSON(jsonRows(t))
}

func jsonRows(t *table.Table) []map[string]string {
	rows := make([]map[string]string, len(t.Records))
	for i, rec := range t.Records {
		row := make(map[string]string, len(t.Header))
		for j, h := range t.Header {
			row[h] = rec[j]
		}
		rows[i] = row
	}
	return rows
}

// writeTableAligned pads columns by hand: colour codes around masked cells
// must not count towards column width.
func (wr *Writer) writeTableAligned(t *table.Table, opts TableOptions) error {
	colorize := opts.MaskSymbol != "" && shouldColorize(opts.Color, wr.w)

	widths := make([]int, len(t.Header))
	for j, h := range t.Header {
		widths[j] = utf8.RuneCountInString(h)
	}
	for _, rec := range t.Records {
		for j, v := range rec {
			widths[j] = max(widths[j], utf8.RuneCountInString(v))
		}
	}

	writeRow := func(cells []string, highlight bool) error {
		var b strings.Builder
		for j, v := range cells {
			pad := widths[j] - utf8.RuneCountInString(v)
			if highlight && v == opts.MaskSymbol {
				v = ColorizeMasked(v)
			}
			b.WriteString(v)
			if j < len(cells)-1 {
				b.WriteString(strings.Repeat(" ", pad+2))
			}
		}
		b.WriteByte('\n')
		_, err := io.WriteString(wr.w, b.String())
		return err
	}

	header := make([]string, len(t.Header))
	for j, h := range t.Header {
		header[j] = strings.ToUpper(h)
	}
	if err := writeRow(header, false); err != nil {
		return err
	}
	for _, rec := range t.Records {
		if err := writeRow(rec, colorize); err != nil {
			return err
		}
	}
	return nil
}

// WriteSummary outputs a run summary.
func (wr *Writer) WriteSummary(s report.Summary) error {
	if wr.format == FormatJSON {
		return wr.WriteJSON(s)
	}

	fmt.Fprintf(wr.w, "Rows: %d\n", s.Rows)
	fmt.Fprintf(wr.w, "Sensitive Cells: %d\n", s.Cells)
	if s.PreMasked > 0 {
		fmt.Fprintf(wr.w, "Masked On Input: %d\n", s.PreMasked)
	}
	fmt.Fprintf(wr.w, "Primary Suppressions: %d\n", s.Primary)
	fmt.Fprintf(wr.w, "Complementary Suppressions: %d\n", s.Complementary)
	fmt.Fprintf(wr.w, "Iterations: %d\n", s.Iterations)
	fmt.Fprintf(wr.w, "Information Loss: %.2f%% (%d of %d)\n", s.Loss*100, s.Hidden, s.Total)

	if wr.format != FormatTable || len(s.Columns) == 0 {
		return nil
	}

	fmt.Fprintln(wr.w)
	tw := tabwriter.NewWriter(wr.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "COLUMN\tTOTAL\tPRIMARY\tCOMPLEMENTARY\tHIDDEN\tLOSS")
	fmt.Fprintln(tw, "------\t-----\t-------\t-------------\t------\t----")
	for _, c := range s.Columns {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%.2f%%\n", c.Name, c.Total, c.Primary, c.Complementary, c.Hidden, c.Loss*100)
	}
	return tw.Flush()
}

// WriteProblems outputs the result of checking a suppressed table.
func (wr *Writer) WriteProblems(file string, problems []suppress.Problem, mode ColorMode) error {
	if wr.format == FormatJSON {
		if problems == nil {
			problems = []suppress.Problem{}
		}
		return wr.WriteJSON(map[string]interface{}{
			"file":     file,
			"ok":       len(problems) == 0,
			"problems": problems,
		})
	}

	if len(problems) == 0 {
		_, err := fmt.Fprintf(wr.w, "%s: ok\n", file)
		return err
	}

	colorize := shouldColorize(mode, wr.w)
	for _, p := range problems {
		line := fmt.Sprintf("%s: %s", file, p)
		if colorize {
			line = ColorizeProblem(line)
		}
		if _, err := fmt.Fprintln(wr.w, line); err != nil {
			return err
		}
	}
	return nil
}
