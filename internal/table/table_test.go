package table

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestReadCSV(t *testing.T) {
	input := "county, cases ,deaths\nAdams,12,0\nBrown,3,*\n"

	tbl, err := ReadCSV(strings.NewReader(input), ',')
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}

	wantHeader := []string{"county", "cases", "deaths"}
	if !reflect.DeepEqual(tbl.Header, wantHeader) {
		t.Errorf("Header = %v, want %v", tbl.Header, wantHeader)
	}
	if tbl.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tbl.Len())
	}
	if tbl.Records[1][2] != "*" {
		t.Errorf("Records[1][2] = %q, want %q", tbl.Records[1][2], "*")
	}
}

func TestReadCSV_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"empty input", "", "missing header"},
		{"ragged row", "a,b\n1,2\n3\n", "line 3: expected 2 fields, got 1"},
		{"ragged row after multiline field", "a,b\n\"x\ny\",2\n3\n", "line 4: expected 2 fields, got 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.input), ',')
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestWriteCSV_RoundTripsTabs(t *testing.T) {
	tbl := &Table{
		Header:  []string{"id", "n"},
		Records: [][]string{{"a b", "1"}, {"c", "*"}},
	}

	var buf bytes.Buffer
	if err := tbl.WriteCSV(&buf, '\t'); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}
	if got, want := buf.String(), "id\tn\na b\t1\nc\t*\n"; got != want {
		t.Errorf("WriteCSV() = %q, want %q", got, want)
	}

	back, err := ReadCSV(&buf, '\t')
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if !reflect.DeepEqual(back, tbl) {
		t.Errorf("round trip = %#v, want %#v", back, tbl)
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "counts.csv")
	if err := os.WriteFile(path, []byte("a;b\n1;2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tbl, err := ReadFile(path, ';')
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if tbl.Records[0][1] != "2" {
		t.Errorf("Records[0][1] = %q, want 2", tbl.Records[0][1])
	}

	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.csv"), ','); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParseDelimiter(t *testing.T) {
	tests := []struct {
		input   string
		want    rune
		wantErr bool
	}{
		{"", ',', false},
		{",", ',', false},
		{`\t`, '\t', false},
		{"tab", '\t', false},
		{";", ';', false},
		{"|", '|', false},
		{";;", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDelimiter(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDelimiter(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseDelimiter(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestColumnAndAppend(t *testing.T) {
	tbl := &Table{
		Header:  []string{"id", "n"},
		Records: [][]string{{"a", "1"}, {"b", "2"}},
	}

	col, err := tbl.Column("n")
	if err != nil {
		t.Fatalf("Column() error = %v", err)
	}
	if !reflect.DeepEqual(col, []string{"1", "2"}) {
		t.Errorf("Column() = %v", col)
	}
	if _, err := tbl.Column("zzz"); err == nil {
		t.Error("expected error for unknown column")
	}

	if err := tbl.AppendColumn("total", []string{"10", "20"}); err != nil {
		t.Fatalf("AppendColumn() error = %v", err)
	}
	if tbl.Index("total") != 2 || tbl.Records[1][2] != "20" {
		t.Errorf("AppendColumn() produced %#v", tbl)
	}
	if err := tbl.AppendColumn("total", []string{"1", "2"}); err == nil {
		t.Error("expected error for duplicate column")
	}
	if err := tbl.AppendColumn("short", []string{"1"}); err == nil {
		t.Error("expected error for wrong length")
	}
}

func TestClone(t *testing.T) {
	tbl := &Table{Header: []string{"a"}, Records: [][]string{{"1"}}}
	c := tbl.Clone()
	c.Records[0][0] = "x"
	c.Header[0] = "y"
	if tbl.Records[0][0] != "1" || tbl.Header[0] != "a" {
		t.Errorf("Clone() shares storage with original")
	}
}
