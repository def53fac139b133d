package model

import "time"

// Series is a single named column: an ordered sequence of values aligned
// to a time index. Index and Values always have the same length.
type Series struct {
	Name   string      `json:"name"`
	Index  []time.Time `json:"index"`
	Values []float64   `json:"values"`
}

// NewSeries creates a series after checking that the index and values
// have the same length.
func NewSeries(name string, index []time.Time, values []float64) (*Series, error) {
	if len(index) != len(values) {
		return nil, ErrShapeMismatch
	}
	return &Series{Name: name, Index: index, Values: values}, nil
}

// Len returns the number of observations in the series.
func (s *Series) Len() int {
	return len(s.Values)
}

// Clone creates a deep copy of the series.
func (s *Series) Clone() *Series {
	index := make([]time.Time, len(s.Index))
	copy(index, s.Index)
	values := make([]float64, len(s.Values))
	copy(values, s.Values)
	return &Series{Name: s.Name, Index: index, Values: values}
}
