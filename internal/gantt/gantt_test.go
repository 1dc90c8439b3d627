package gantt

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"

	"github.com/Iron-Ham/lazygantt/internal/errors"
	"github.com/Iron-Ham/lazygantt/internal/table"
)

func mustTable(t *testing.T, data string) *table.Table {
	t.Helper()
	tbl, err := table.Read(strings.NewReader(data), ';')
	if err != nil {
		t.Fatalf("table.Read() error = %v", err)
	}
	return tbl
}

func TestFromTable_PackagesOnly(t *testing.T) {
	tbl := mustTable(t, "start;duration\n0;3\n3;4\n")

	g, err := FromTable(tbl, LoadOptions{})
	if err != nil {
		t.Fatalf("FromTable() error = %v", err)
	}

	want := &Gantt{
		Months:     7,
		Packages:   []Interval{{0, 3}, {3, 7}},
		Milestones: []int{},
	}
	if diff := cmp.Diff(want, g); diff != "" {
		t.Errorf("FromTable() mismatch (-want +got):\n%s", diff)
	}
	if g.HasPhases() || g.PhaseGrid() != nil {
		t.Error("chart without group column should have no phases")
	}
}

func TestFromTable_Phases(t *testing.T) {
	tbl := mustTable(t, `start;duration;group_id
0;3;1
3;6;1
6;14;2
8;4;2
`)

	g, err := FromTable(tbl, LoadOptions{Milestones: []int{-5, 3, 50}})
	if err != nil {
		t.Fatalf("FromTable() error = %v", err)
	}

	if g.Months != 12 {
		t.Errorf("Months = %d, want 12", g.Months)
	}
	if diff := cmp.Diff([]Interval{{0, 6}, {6, 12}}, g.Phases); diff != "" {
		t.Errorf("Phases mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{3}, g.Milestones); diff != "" {
		t.Errorf("Milestones mismatch (-want +got):\n%s", diff)
	}

	// Packages past the project end are clipped by the grid.
	grid := g.PackageGrid()
	if grid.Width() != 12 {
		t.Errorf("PackageGrid width = %d, want 12", grid.Width())
	}
	if span, _ := grid.Span(2); span != (Interval{6, 12}) {
		t.Errorf("clipped span = %v, want [6, 12)", span)
	}
}

func TestFromTable_SinglePhaseOmitted(t *testing.T) {
	tbl := mustTable(t, "start;duration;group_id\n0;3;1\n3;4;1\n")

	g, err := FromTable(tbl, LoadOptions{})
	if err != nil {
		t.Fatalf("FromTable() error = %v", err)
	}
	if g.HasPhases() {
		t.Errorf("Phases = %v, want none for a single phase", g.Phases)
	}
}

func TestFromTable_OptionalColumnDropped(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"text group column", "start;duration;group_id\n0;3;a\n3;4;b\n"},
		{"empty group column", "start;duration;group_id\n0;3;\n3;4;\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := FromTable(mustTable(t, tt.data), LoadOptions{})
			if err != nil {
				t.Fatalf("FromTable() error = %v", err)
			}
			if g.HasPhases() {
				t.Error("invalid optional column should be ignored")
			}
			if len(g.Packages) != 2 {
				t.Errorf("len(Packages) = %d, want 2", len(g.Packages))
			}
		})
	}
}

func TestFromTable_MandatoryColumnMissing(t *testing.T) {
	tbl := mustTable(t, "start;group_id\n0;1\n")

	_, err := FromTable(tbl, LoadOptions{})
	if err == nil {
		t.Fatal("expected error for missing duration column")
	}

	var colErr *errors.ColumnError
	if !errors.As(err, &colErr) {
		t.Fatalf("error type = %T, want *errors.ColumnError", err)
	}
	if colErr.Column != "duration" {
		t.Errorf("Column = %q, want %q", colErr.Column, "duration")
	}
	if !errors.Is(err, errors.ErrColumnMissing) {
		t.Error("expected errors.Is(err, ErrColumnMissing)")
	}
	if !strings.Contains(err.Error(), "duration") {
		t.Errorf("error %q does not name the column", err)
	}
}

func TestFromTable_CustomColumnNames(t *testing.T) {
	tbl := mustTable(t, "begin;months;phase_number\n0;2;1\n2;2;2\n")

	g, err := FromTable(tbl, LoadOptions{
		Columns: ColumnNames{Start: "begin", Duration: "months", GroupID: "phase_number"},
	})
	if err != nil {
		t.Fatalf("FromTable() error = %v", err)
	}
	if diff := cmp.Diff([]Interval{{0, 2}, {2, 4}}, g.Phases); diff != "" {
		t.Errorf("Phases mismatch (-want +got):\n%s", diff)
	}
}

func TestFromTable_RowsWithoutStartDropped(t *testing.T) {
	tbl := mustTable(t, "start;duration\n0;3\n;\n5;1\n")

	g, err := FromTable(tbl, LoadOptions{})
	if err != nil {
		t.Fatalf("FromTable() error = %v", err)
	}
	if diff := cmp.Diff([]Interval{{0, 3}, {5, 6}}, g.Packages); diff != "" {
		t.Errorf("Packages mismatch (-want +got):\n%s", diff)
	}
}

func TestFromTable_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		row     int
		column  string
		wantErr error
	}{
		{"negative start", "start;duration\n0;1\n-2;3\n", 2, "start", errors.ErrInvalidValue},
		{"zero duration", "start;duration\n0;0\n", 1, "duration", errors.ErrInvalidValue},
		{"fractional duration", "start;duration\n0;1.5\n", 1, "duration", errors.ErrInvalidValue},
		{"missing duration", "start;duration\n0;2\n1;\n", 2, "duration", errors.ErrInvalidValue},
		{"phase zero", "start;duration;group_id\n0;1;0\n1;1;1\n", 1, "group_id", errors.ErrInvalidValue},
		{"start past last month", "start;duration\n0;1\n2147483647;1\n", 2, "start", errors.ErrInvalidValue},
		{"end past last month", "start;duration\n2147483647;2147483647\n", 1, "start", errors.ErrInvalidValue},
		{"duration past last month", "start;duration\n0;1\n10;1200\n", 2, "duration", errors.ErrInvalidValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromTable(mustTable(t, tt.data), LoadOptions{})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("FromTable() error = %v, want %v", err, tt.wantErr)
			}
			var dataErr *errors.DataError
			if !errors.As(err, &dataErr) {
				t.Fatalf("error type = %T, want *errors.DataError", err)
			}
			if dataErr.Row != tt.row || dataErr.Column != tt.column {
				t.Errorf("error at row %d column %q, want row %d column %q",
					dataErr.Row, dataErr.Column, tt.row, tt.column)
			}
		})
	}
}

func TestFromTable_LastMonth(t *testing.T) {
	g, err := FromTable(mustTable(t, "start;duration\n0;1\n1100;100\n"), LoadOptions{})
	if err != nil {
		t.Fatalf("FromTable() error = %v", err)
	}
	if g.Months != MaxMonths {
		t.Errorf("Months = %d, want %d", g.Months, MaxMonths)
	}
}

func TestFromTable_BadColumnNames(t *testing.T) {
	tbl := mustTable(t, "start;duration\n0;1\n")
	_, err := FromTable(tbl, LoadOptions{
		Columns: ColumnNames{Start: "start", Duration: "start", GroupID: "group_id"},
	})
	if err == nil {
		t.Fatal("expected error for roles sharing a column")
	}
}

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	data := "start,duration,group_id\n0,3,1\n3,4,2\n"
	if err := afero.WriteFile(fs, "/data/plan.csv", []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	g, err := Load(fs, "/data/plan.csv", ',', LoadOptions{PhaseEnd: PhaseEndNextStart})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if g.Months != 7 {
		t.Errorf("Months = %d, want 7", g.Months)
	}
	if diff := cmp.Diff([]Interval{{0, 3}, {3, 7}}, g.Phases); diff != "" {
		t.Errorf("Phases mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_ErrorNamesFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "plan.csv", []byte("start;duration\n0;-1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(fs, "plan.csv", ';', LoadOptions{})
	var dataErr *errors.DataError
	if !errors.As(err, &dataErr) {
		t.Fatalf("Load() error = %v, want *errors.DataError", err)
	}
	if dataErr.File != "plan.csv" {
		t.Errorf("File = %q, want %q", dataErr.File, "plan.csv")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(afero.NewMemMapFs(), "nope.csv", ';', LoadOptions{}); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDefault(t *testing.T) {
	g := Default()
	if g.Months != 24 || len(g.Packages) != 6 || len(g.Phases) != 3 {
		t.Errorf("Default() = %+v", g)
	}
	// Each call returns an independent chart.
	g.Packages[0].End = 99
	if Default().Packages[0].End != 3 {
		t.Error("Default() shares state between calls")
	}
}
