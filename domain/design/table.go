package design

import (
	"strconv"

	"doegen/domain/core"

	"gonum.org/v1/gonum/mat"
)

// Table is a generated design: one row per design point, one column per
// factor. DOE tables keep levels verbatim in Rows; LHS tables hold numbers in
// Values (samples x factors).
type Table struct {
	Columns []string
	Rows    [][]string
	Values  *mat.Dense
}

// NewLevelTable wraps enumerated level combinations
func NewLevelTable(columns []string, rows [][]string) *Table {
	return &Table{Columns: columns, Rows: rows}
}

// Tabulate transposes a factors x samples matrix into a table whose rows are
// samples and whose columns are the named factors.
func Tabulate(columns []string, m *mat.Dense) (*Table, error) {
	rows, _ := m.Dims()
	if rows != len(columns) {
		return nil, core.NewShapeError(len(columns), rows)
	}
	var values mat.Dense
	values.CloneFrom(m.T())
	return &Table{Columns: columns, Values: &values}, nil
}

// Numeric reports whether the table holds sampled numbers
func (t *Table) Numeric() bool {
	return t.Values != nil
}

// Len returns the number of design points
func (t *Table) Len() int {
	if t.Values != nil {
		r, _ := t.Values.Dims()
		return r
	}
	return len(t.Rows)
}

// Cell returns the value at row i, column j as text
func (t *Table) Cell(i, j int) string {
	if t.Values != nil {
		return FormatFloat(t.Values.At(i, j))
	}
	return t.Rows[i][j]
}

// Row returns design point i as text
func (t *Table) Row(i int) []string {
	row := make([]string, len(t.Columns))
	for j := range t.Columns {
		row[j] = t.Cell(i, j)
	}
	return row
}

// Column returns numeric column j; nil for level tables
func (t *Table) Column(j int) []float64 {
	if t.Values == nil {
		return nil
	}
	return mat.Col(nil, j, t.Values)
}

// Records returns the header followed by every row, ready for CSV writing
func (t *Table) Records() [][]string {
	records := make([][]string, 0, t.Len()+1)
	header := make([]string, len(t.Columns))
	copy(header, t.Columns)
	records = append(records, header)
	for i := 0; i < t.Len(); i++ {
		records = append(records, t.Row(i))
	}
	return records
}

// Head returns at most n rows, for previews
func (t *Table) Head(n int) [][]string {
	if n > t.Len() || n < 0 {
		n = t.Len()
	}
	rows := make([][]string, n)
	for i := 0; i < n; i++ {
		rows[i] = t.Row(i)
	}
	return rows
}

// FormatFloat renders a sampled value with the shortest exact representation
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
