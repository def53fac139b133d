// Package describe computes summary statistics over tables and stacks
// one column out of several tables into a combined table.
package describe

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/tunogya/hekla/pkg/model"
	"github.com/tunogya/hekla/pkg/window"
)

// ErrIndexMismatch reports tables whose indexes do not line up entry for
// entry, so their columns cannot share one index.
var ErrIndexMismatch = errors.New("table indexes are not aligned")

// Summary holds descriptive statistics for one sequence of values.
type Summary struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// Table summarizes every column of the table, one Summary per column in
// column order.
func Table(t *model.Table) ([]Summary, error) {
	out := make([]Summary, 0, t.NumCols())
	for _, name := range t.Columns {
		s, err := Values(name, t.Values[name])
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Flat summarizes all values of the table jointly, flattened row-major.
func Flat(t *model.Table) (Summary, error) {
	flat := make([]float64, 0, t.NumRows()*t.NumCols())
	for i := 0; i < t.NumRows(); i++ {
		flat = append(flat, t.Row(i)...)
	}
	return Values("", flat)
}

// Values computes descriptive statistics for a value sequence.
func Values(name string, values []float64) (Summary, error) {
	data := stats.Float64Data(values)
	mean, err := data.Mean()
	if err != nil {
		return Summary{}, fmt.Errorf("describe %q: %w", name, err)
	}
	std, err := data.StandardDeviationSample()
	if err != nil {
		return Summary{}, fmt.Errorf("describe %q: %w", name, err)
	}
	min, err := data.Min()
	if err != nil {
		return Summary{}, fmt.Errorf("describe %q: %w", name, err)
	}
	max, err := data.Max()
	if err != nil {
		return Summary{}, fmt.Errorf("describe %q: %w", name, err)
	}
	quartiles, err := stats.Quartile(data)
	if err != nil {
		return Summary{}, fmt.Errorf("describe %q: %w", name, err)
	}
	return Summary{
		Column: name,
		Count:  len(values),
		Mean:   mean,
		Std:    std,
		Min:    min,
		Q1:     quartiles.Q1,
		Median: quartiles.Q2,
		Q3:     quartiles.Q3,
		Max:    max,
	}, nil
}

// Stack pulls the named column out of each table and combines them into
// one table, keyed by the source table's name in sorted order. All
// tables must carry identical indexes, timestamp for timestamp. A
// positive span keeps only the trailing window of the result.
func Stack(tables map[string]*model.Table, column string, span time.Duration) (*model.Table, error) {
	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)

	var index []time.Time
	values := make(map[string][]float64, len(names))
	for _, name := range names {
		s, err := tables[name].Series(column)
		if err != nil {
			return nil, fmt.Errorf("stack table %q: %w", name, err)
		}
		if index == nil {
			index = s.Index
		} else if len(s.Index) != len(index) {
			return nil, fmt.Errorf("stack table %q: %w", name, model.ErrShapeMismatch)
		} else {
			for i := range index {
				if !s.Index[i].Equal(index[i]) {
					return nil, fmt.Errorf("stack table %q at row %d: %w", name, i, ErrIndexMismatch)
				}
			}
		}
		values[name] = s.Values
	}

	out, err := model.New(index, names, values)
	if err != nil {
		return nil, err
	}
	if span > 0 {
		return window.SelectTrailing(out, span)
	}
	return out, nil
}
