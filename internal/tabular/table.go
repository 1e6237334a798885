package tabular

import "fmt"

// Table is a row-oriented view of a delimited or spreadsheet file: one
// header with a fixed column order, and data rows aligned positionally
// with it.
type Table struct {
	Columns []string
	Rows    [][]string
}

// RowCount returns the number of data rows (header excluded).
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// AppendColumn adds a new column with one value per existing row.
func (t *Table) AppendColumn(name string, values []string) error {
	if len(values) != len(t.Rows) {
		return fmt.Errorf("column %q has %d values for %d rows", name, len(values), len(t.Rows))
	}
	t.Columns = append(t.Columns, name)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], values[i])
	}
	return nil
}
