// Package model defines the tabular data structures shared by all
// transforms: an ordered collection of named float64 columns aligned to a
// common time index. Transforms never mutate their inputs; every
// operation allocates a new Table or Series.
package model

import (
	"errors"
	"fmt"
	"time"
)

// Errors returned by constructors and accessors.
var (
	ErrShapeMismatch = errors.New("columns and index must have the same length")
	ErrUnknownColumn = errors.New("unknown column")
)

// Table is an ordered collection of named columns sharing one time index.
// Columns holds the column order; Values maps each column name to its
// data. Every column has exactly len(Index) values. Window operations
// require the index to be sorted ascending.
type Table struct {
	Index   []time.Time          `json:"index"`
	Columns []string             `json:"columns"`
	Values  map[string][]float64 `json:"values"`
}

// New creates a table after validating that every column has one value
// per index entry and that Columns and Values agree.
func New(index []time.Time, columns []string, values map[string][]float64) (*Table, error) {
	if len(columns) != len(values) {
		return nil, fmt.Errorf("table has %d column names but %d value slices: %w",
			len(columns), len(values), ErrShapeMismatch)
	}
	for _, name := range columns {
		vals, ok := values[name]
		if !ok {
			return nil, fmt.Errorf("column %q: %w", name, ErrUnknownColumn)
		}
		if len(vals) != len(index) {
			return nil, fmt.Errorf("column %q has %d values for %d index entries: %w",
				name, len(vals), len(index), ErrShapeMismatch)
		}
	}
	return &Table{Index: index, Columns: columns, Values: values}, nil
}

// FromSeries builds a table from one or more series sharing the same
// index length. The first series provides the index.
func FromSeries(series ...*Series) (*Table, error) {
	if len(series) == 0 {
		return &Table{Values: map[string][]float64{}}, nil
	}
	index := series[0].Index
	columns := make([]string, 0, len(series))
	values := make(map[string][]float64, len(series))
	for _, s := range series {
		if s.Len() != len(index) {
			return nil, fmt.Errorf("series %q: %w", s.Name, ErrShapeMismatch)
		}
		columns = append(columns, s.Name)
		values[s.Name] = s.Values
	}
	return New(index, columns, values)
}

// Empty creates a table with the given index and columns, every value
// initialized to zero. Used as a target for transform outputs.
func Empty(index []time.Time, columns []string) *Table {
	values := make(map[string][]float64, len(columns))
	for _, name := range columns {
		values[name] = make([]float64, len(index))
	}
	return &Table{Index: index, Columns: columns, Values: values}
}

// NumRows returns the number of rows in the table.
func (t *Table) NumRows() int {
	return len(t.Index)
}

// NumCols returns the number of columns in the table.
func (t *Table) NumCols() int {
	return len(t.Columns)
}

// Series returns the named column together with the shared index.
func (t *Table) Series(name string) (*Series, error) {
	vals, ok := t.Values[name]
	if !ok {
		return nil, fmt.Errorf("column %q: %w", name, ErrUnknownColumn)
	}
	return &Series{Name: name, Index: t.Index, Values: vals}, nil
}

// Row returns the values of row i across all columns, in column order.
func (t *Table) Row(i int) []float64 {
	row := make([]float64, len(t.Columns))
	for c, name := range t.Columns {
		row[c] = t.Values[name][i]
	}
	return row
}

// Slice returns a copy of the rows in the half-open range [from, to).
func (t *Table) Slice(from, to int) *Table {
	out := Empty(append([]time.Time(nil), t.Index[from:to]...), t.Columns)
	for _, name := range t.Columns {
		copy(out.Values[name], t.Values[name][from:to])
	}
	return out
}

// Reverse returns a copy of the table with the row order reversed.
func (t *Table) Reverse() *Table {
	n := t.NumRows()
	out := Empty(make([]time.Time, n), t.Columns)
	for i := 0; i < n; i++ {
		out.Index[i] = t.Index[n-1-i]
		for _, name := range t.Columns {
			out.Values[name][i] = t.Values[name][n-1-i]
		}
	}
	return out
}

// Clone creates a deep copy of the table.
func (t *Table) Clone() *Table {
	return t.Slice(0, t.NumRows())
}
