package table

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"

	"github.com/Iron-Ham/lazygantt/internal/errors"
)

const planCSV = `start;duration;phase_number;note
0;3;1;kickoff
3;6;1;
;;;spacer
6;14;2;design
8;4;2;
`

func TestRead(t *testing.T) {
	tbl, err := Read(strings.NewReader(planCSV), ';')
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if diff := cmp.Diff([]string{"start", "duration", "phase_number", "note"}, tbl.Columns()); diff != "" {
		t.Errorf("Columns() mismatch (-want +got):\n%s", diff)
	}
	// The ";;;spacer" row is kept: only fully blank records are skipped.
	if got := tbl.Len(); got != 5 {
		t.Errorf("Len() = %d, want 5", got)
	}
	if got := tbl.NonNullCount("start"); got != 4 {
		t.Errorf("NonNullCount(start) = %d, want 4", got)
	}
	if got := tbl.NonNullCount("missing"); got != 0 {
		t.Errorf("NonNullCount(missing) = %d, want 0", got)
	}
}

func TestRead_DefaultSeparator(t *testing.T) {
	tbl, err := Read(strings.NewReader("start;duration\n1;2\n"), 0)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if !tbl.HasColumn("duration") {
		t.Error("expected ';' to be used when no separator is given")
	}
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty file", ""},
		{"duplicate header", "start;start\n1;2\n"},
		{"unnamed header", "start;;duration\n1;2;3\n"},
		{"row longer than header", "start;duration\n1;2;3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input), ';')
			if err == nil {
				t.Fatal("Read() expected error, got nil")
			}
			if !errors.Is(err, errors.ErrMalformedTable) {
				t.Errorf("error = %v, want ErrMalformedTable", err)
			}
		})
	}
}

func TestRead_ShortRowsArePadded(t *testing.T) {
	tbl, err := Read(strings.NewReader("start;duration;phase\n0;3\n"), ';')
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if !tbl.HasColumn("phase") {
		t.Fatal("padded column should exist")
	}
	if n := tbl.NonNullCount("phase"); n != 0 {
		t.Errorf("NonNullCount(phase) = %d, want 0", n)
	}
}

func TestIsNumeric(t *testing.T) {
	tbl, err := Read(strings.NewReader(planCSV), ';')
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	tests := []struct {
		column string
		want   bool
	}{
		{"start", true},
		{"duration", true},
		{"phase_number", true},
		{"note", false},
		{"missing", false},
	}

	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			if got := tbl.IsNumeric(tt.column); got != tt.want {
				t.Errorf("IsNumeric(%q) = %v, want %v", tt.column, got, tt.want)
			}
		})
	}
}

func TestDropNullAndInts(t *testing.T) {
	tbl, err := Read(strings.NewReader(planCSV), ';')
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	kept := tbl.DropNull("start")
	if got := kept.Len(); got != 4 {
		t.Fatalf("Len() after DropNull = %d, want 4", got)
	}
	if got := tbl.Len(); got != 5 {
		t.Errorf("DropNull modified the receiver: Len() = %d, want 5", got)
	}
	if got := kept.RowNumber(2); got != 4 {
		t.Errorf("RowNumber(2) = %d, want 4", got)
	}

	starts, err := kept.Ints("start")
	if err != nil {
		t.Fatalf("Ints(start) error = %v", err)
	}
	if diff := cmp.Diff([]int{0, 3, 6, 8}, starts); diff != "" {
		t.Errorf("Ints(start) mismatch (-want +got):\n%s", diff)
	}
}

func TestInts_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantRow int
	}{
		{"null cell", "start;duration\n0;3\n3;\n", 2},
		{"text cell", "start;duration\n0;three\n", 1},
		{"fraction", "start;duration\n0;2.5\n", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := Read(strings.NewReader(tt.input), ';')
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			_, err = tbl.Ints("duration")
			var dataErr *errors.DataError
			if !errors.As(err, &dataErr) {
				t.Fatalf("Ints() error = %v, want DataError", err)
			}
			if dataErr.Row != tt.wantRow {
				t.Errorf("Row = %d, want %d", dataErr.Row, tt.wantRow)
			}
			if dataErr.Column != "duration" {
				t.Errorf("Column = %q, want %q", dataErr.Column, "duration")
			}
		})
	}
}

func TestInts_AcceptsWholeFloats(t *testing.T) {
	tbl, err := Read(strings.NewReader("start\n4.0\n 7 \n"), ';')
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	got, err := tbl.Ints("start")
	if err != nil {
		t.Fatalf("Ints() error = %v", err)
	}
	if diff := cmp.Diff([]int{4, 7}, got); diff != "" {
		t.Errorf("Ints() mismatch (-want +got):\n%s", diff)
	}
}

func TestReadFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/data/plan.csv", []byte("start,duration\n0,3\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	tbl, err := ReadFile(fs, "/data/plan.csv", ',')
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if tbl.Len() != 1 {
		t.Errorf("Len() = %d, want 1", tbl.Len())
	}

	_, err = ReadFile(fs, "/data/missing.csv", ',')
	var dataErr *errors.DataError
	if !errors.As(err, &dataErr) {
		t.Fatalf("ReadFile(missing) error = %v, want DataError", err)
	}
	if dataErr.File != "/data/missing.csv" {
		t.Errorf("File = %q, want %q", dataErr.File, "/data/missing.csv")
	}
}

func TestParseSeparator(t *testing.T) {
	tests := []struct {
		in      string
		want    rune
		wantErr bool
	}{
		{";", ';', false},
		{",", ',', false},
		{`\t`, '\t', false},
		{"|", '|', false},
		{"", 0, true},
		{";;", 0, true},
		{`"`, 0, true},
	}

	for _, tt := range tests {
		got, err := ParseSeparator(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSeparator(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSeparator(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
