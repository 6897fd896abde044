// Package frame provides an in-memory columnar dataset: ordered named
// columns of heterogeneous, nullable cells. Missing values are nil cells.
// Reductions over columns run chunk-parallel so large frames backed by
// partitioned sources stay cheap to scan.
package frame

import (
	"github.com/rotisserie/eris"
)

// Column is a single named column. Cells are nil (missing) or a scalar
// runtime value: string, bool, signed/unsigned integers, float32, float64,
// or time.Time.
type Column struct {
	Name   string
	Values []any
}

// Col is a convenience constructor for a Column.
func Col(name string, values ...any) Column {
	return Column{Name: name, Values: values}
}

// Dataset is an ordered collection of equal-length columns. Row i across
// all columns forms one logical record.
type Dataset struct {
	cols  []Column
	index map[string]int
	rows  int
}

// New builds a Dataset from the given columns. All columns must have the
// same length and unique names.
func New(cols ...Column) (*Dataset, error) {
	d := &Dataset{
		cols:  cols,
		index: make(map[string]int, len(cols)),
	}
	for i, c := range cols {
		if c.Name == "" {
			return nil, eris.Errorf("frame: column %d has no name", i)
		}
		if _, dup := d.index[c.Name]; dup {
			return nil, eris.Errorf("frame: duplicate column %q", c.Name)
		}
		d.index[c.Name] = i
		if i == 0 {
			d.rows = len(c.Values)
			continue
		}
		if len(c.Values) != d.rows {
			return nil, eris.Errorf("frame: column %q has %d rows, want %d", c.Name, len(c.Values), d.rows)
		}
	}
	return d, nil
}

// Len returns the number of rows.
func (d *Dataset) Len() int { return d.rows }

// NumCols returns the number of columns.
func (d *Dataset) NumCols() int { return len(d.cols) }

// Names returns the column names in column order.
func (d *Dataset) Names() []string {
	names := make([]string, len(d.cols))
	for i, c := range d.cols {
		names[i] = c.Name
	}
	return names
}

// Column returns the named column, or false if it does not exist.
func (d *Dataset) Column(name string) (*Column, bool) {
	i, ok := d.index[name]
	if !ok {
		return nil, false
	}
	return &d.cols[i], true
}

// ColumnAt returns the column at position i in column order.
func (d *Dataset) ColumnAt(i int) *Column { return &d.cols[i] }

// Record returns row i as a column-name → cell mapping.
func (d *Dataset) Record(i int) map[string]any {
	rec := make(map[string]any, len(d.cols))
	for _, c := range d.cols {
		rec[c.Name] = c.Values[i]
	}
	return rec
}

// IsMissing reports whether a cell holds no value.
func IsMissing(v any) bool { return v == nil }

// IsNumeric reports whether a cell value is drawn from a numeric domain.
func IsNumeric(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	default:
		return false
	}
}

// zeroOf returns the zero value with the same runtime type as v.
// Returns nil for non-numeric v.
func zeroOf(v any) any {
	switch v.(type) {
	case int:
		return int(0)
	case int8:
		return int8(0)
	case int16:
		return int16(0)
	case int32:
		return int32(0)
	case int64:
		return int64(0)
	case uint:
		return uint(0)
	case uint8:
		return uint8(0)
	case uint16:
		return uint16(0)
	case uint32:
		return uint32(0)
	case uint64:
		return uint64(0)
	case float32:
		return float32(0)
	case float64:
		return float64(0)
	default:
		return nil
	}
}
