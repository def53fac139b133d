package model

import (
	"time"

	"golang.org/x/exp/constraints"
)

// Number covers the numeric types accepted when building columns.
type Number interface {
	constraints.Integer | constraints.Float
}

// Float64s converts a numeric slice to float64 values for use as a column.
func Float64s[V Number](s []V) []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = float64(v)
	}
	return out
}

// SyntheticIndex builds an ascending index of n timestamps spaced by
// step, for data that carries integer positions rather than real times.
func SyntheticIndex(n int, start time.Time, step time.Duration) []time.Time {
	index := make([]time.Time, n)
	for i := range index {
		index[i] = start.Add(time.Duration(i) * step)
	}
	return index
}
