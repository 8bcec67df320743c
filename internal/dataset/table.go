// Package dataset parses the embedded indicator literals into typed tables.
package dataset

// TimeColumn is the name of the integer time axis every dataset starts with.
const TimeColumn = "year"

// Row is one parsed line of a dataset. A nil value marks a missing field.
type Row struct {
	Year   int
	Values map[string]*float64
}

// Table is an ordered, read-only sequence of rows sharing one column set.
type Table struct {
	Name    string
	columns []string // data columns in header order, time column excluded
	rows    []Row
	byYear  map[int]int
}

// Columns returns the data column names in header order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Rows returns the rows in time order. The returned slice must not be modified.
func (t *Table) Rows() []Row {
	return t.rows
}

// Years returns the time values in increasing order.
func (t *Table) Years() []int {
	years := make([]int, len(t.rows))
	for i, r := range t.rows {
		years[i] = r.Year
	}
	return years
}

// Row returns the row for a year.
func (t *Table) Row(year int) (Row, bool) {
	i, ok := t.byYear[year]
	if !ok {
		return Row{}, false
	}
	return t.rows[i], true
}

// Value looks up a single cell. Missing rows, unknown columns and null fields all report false.
func (t *Table) Value(year int, column string) (float64, bool) {
	row, ok := t.Row(year)
	if !ok {
		return 0, false
	}
	return row.Get(column)
}

// FirstYear is the earliest year of the table, or zero when it is empty.
func (t *Table) FirstYear() int {
	if len(t.rows) == 0 {
		return 0
	}
	return t.rows[0].Year
}

// LastYear is the latest year of the table, or zero when it is empty.
func (t *Table) LastYear() int {
	if len(t.rows) == 0 {
		return 0
	}
	return t.rows[len(t.rows)-1].Year
}

// Get returns a field value, reporting false for null or unknown columns.
func (r Row) Get(column string) (float64, bool) {
	v, ok := r.Values[column]
	if !ok || v == nil {
		return 0, false
	}
	return *v, true
}
