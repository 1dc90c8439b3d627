// Package table reads delimited text files into a column-oriented table.
//
// Cells are kept as trimmed strings; a cell is null when it is empty or
// holds one of the usual missing-value markers (NA, NaN, null, ...).
// Numeric interpretation happens on demand, per column.
package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/spf13/afero"
	"github.com/spf13/cast"

	"github.com/Iron-Ham/lazygantt/internal/errors"
)

// DefaultSeparator is the column delimiter used when none is configured.
const DefaultSeparator = ';'

// nullMarkers are cell values treated as missing, compared case-sensitively
// after trimming.
var nullMarkers = []string{"", "NA", "N/A", "n/a", "NaN", "nan", "null", "NULL", "None", "-NaN", "-nan"}

// Table is a delimited file held column by column.
type Table struct {
	header []string
	index  map[string]int
	cols   [][]string
	rows   []int // 1-based source row number of each data row
}

// New builds a Table from a header and row-major records. Records shorter
// than the header are padded with null cells; longer records are rejected.
func New(header []string, records [][]string) (*Table, error) {
	t := &Table{
		header: make([]string, len(header)),
		index:  make(map[string]int, len(header)),
		cols:   make([][]string, len(header)),
		rows:   make([]int, 0, len(records)),
	}

	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if name == "" {
			return nil, errors.NewDataError(fmt.Sprintf("header column %d has no name", i+1), errors.ErrMalformedTable)
		}
		if _, dup := t.index[name]; dup {
			return nil, errors.NewDataError(fmt.Sprintf("duplicate header column %q", name), errors.ErrMalformedTable).
				WithColumn(name)
		}
		t.header[i] = name
		t.index[name] = i
		t.cols[i] = make([]string, 0, len(records))
	}

	for r, record := range records {
		if len(record) > len(header) {
			return nil, errors.NewDataError(
				fmt.Sprintf("row has %d fields, header has %d", len(record), len(header)),
				errors.ErrMalformedTable).WithRow(r + 1)
		}
		for c := range t.cols {
			cell := ""
			if c < len(record) {
				cell = strings.TrimSpace(record[c])
			}
			t.cols[c] = append(t.cols[c], cell)
		}
		t.rows = append(t.rows, r+1)
	}

	return t, nil
}

// Read parses delimited text from r. The first record is the header.
func Read(r io.Reader, sep rune) (*Table, error) {
	if sep == 0 {
		sep = DefaultSeparator
	}
	if !validSeparator(sep) {
		return nil, errors.NewDataError(fmt.Sprintf("invalid separator %q", sep), errors.ErrMalformedTable)
	}

	reader := csv.NewReader(r)
	reader.Comma = sep
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.NewDataError("file is empty", errors.ErrMalformedTable)
	}
	if err != nil {
		return nil, errors.NewDataError("reading header", fmt.Errorf("%w: %v", errors.ErrMalformedTable, err))
	}

	var records [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewDataError("reading record", fmt.Errorf("%w: %v", errors.ErrMalformedTable, err))
		}
		if isBlank(record) {
			continue
		}
		records = append(records, record)
	}

	return New(header, records)
}

// ReadFile opens path on fs and parses it with Read.
func ReadFile(fs afero.Fs, path string, sep rune) (*Table, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, errors.NewDataError("opening data file", err).WithFile(path)
	}
	defer f.Close()

	t, err := Read(f, sep)
	if err != nil {
		var dataErr *errors.DataError
		if errors.As(err, &dataErr) {
			return nil, dataErr.WithFile(path)
		}
		return nil, err
	}
	return t, nil
}

// Columns returns the header names in file order.
func (t *Table) Columns() []string {
	return slices.Clone(t.header)
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// RowNumber returns the 1-based source row number of data row i. Row
// numbers survive DropNull, so diagnostics keep pointing at the file.
func (t *Table) RowNumber(i int) int {
	if i < 0 || i >= len(t.rows) {
		return 0
	}
	return t.rows[i]
}

// HasColumn reports whether the header contains name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// NonNullCount returns the number of non-null cells in column name,
// or 0 when the column does not exist.
func (t *Table) NonNullCount(name string) int {
	c, ok := t.index[name]
	if !ok {
		return 0
	}
	n := 0
	for _, cell := range t.cols[c] {
		if !IsNull(cell) {
			n++
		}
	}
	return n
}

// IsNumeric reports whether every non-null cell of column name parses as a
// number. A column that does not exist is not numeric.
func (t *Table) IsNumeric(name string) bool {
	c, ok := t.index[name]
	if !ok {
		return false
	}
	for _, cell := range t.cols[c] {
		if IsNull(cell) {
			continue
		}
		if _, err := parseNumber(cell); err != nil {
			return false
		}
	}
	return true
}

// DropNull returns a new Table without the rows whose cell in column name
// is null. The receiver is not modified.
func (t *Table) DropNull(name string) *Table {
	c, ok := t.index[name]
	if !ok {
		return t
	}

	keep := make([]int, 0, t.Len())
	for r, cell := range t.cols[c] {
		if !IsNull(cell) {
			keep = append(keep, r)
		}
	}

	out := &Table{
		header: t.header,
		index:  t.index,
		cols:   make([][]string, len(t.cols)),
		rows:   make([]int, 0, len(keep)),
	}
	for _, r := range keep {
		out.rows = append(out.rows, t.rows[r])
	}
	for i, col := range t.cols {
		out.cols[i] = make([]string, 0, len(keep))
		for _, r := range keep {
			out.cols[i] = append(out.cols[i], col[r])
		}
	}
	return out
}

// Ints converts column name to integers. Null cells and values that are not
// whole numbers fail with a DataError naming the 1-based row.
func (t *Table) Ints(name string) ([]int, error) {
	c, ok := t.index[name]
	if !ok {
		return nil, errors.NewDataError("column does not exist", errors.ErrColumnMissing).WithColumn(name)
	}

	out := make([]int, len(t.cols[c]))
	for r, cell := range t.cols[c] {
		if IsNull(cell) {
			return nil, errors.NewDataError("value is missing", errors.ErrInvalidValue).
				WithRow(t.rows[r]).WithColumn(name)
		}
		f, err := parseNumber(cell)
		if err != nil {
			return nil, errors.NewDataError(fmt.Sprintf("%q is not a number", cell), errors.ErrInvalidValue).
				WithRow(t.rows[r]).WithColumn(name)
		}
		if f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
			return nil, errors.NewDataError(fmt.Sprintf("%q is not a whole number", cell), errors.ErrInvalidValue).
				WithRow(t.rows[r]).WithColumn(name)
		}
		out[r] = int(f)
	}
	return out, nil
}

// IsNull reports whether a trimmed cell value counts as missing.
func IsNull(cell string) bool {
	return slices.Contains(nullMarkers, cell)
}

// ParseSeparator converts a configured separator string into a rune.
// Escaped tab ("\t") is accepted for convenience.
func ParseSeparator(s string) (rune, error) {
	if s == `\t` {
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("separator must be a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if !validSeparator(r) {
		return 0, fmt.Errorf("separator %q is not allowed", s)
	}
	return r, nil
}

func parseNumber(cell string) (float64, error) {
	f, err := cast.ToFloat64E(cell)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not finite", cell)
	}
	return f, nil
}

func validSeparator(r rune) bool {
	return r != '"' && r != '\r' && r != '\n' && r != utf8.RuneError
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
