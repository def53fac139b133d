// Package pairs enumerates column pairs and drives pairwise transforms
// over a table's columns.
package pairs

import (
	"fmt"

	"github.com/tunogya/hekla/pkg/model"
)

// Pair is an ordered 2-tuple of elements, usually column names.
type Pair[T any] struct {
	A, B T
}

// Product returns every ordered pair (a, b) over items, including pairs
// with identical elements. Size n*n.
func Product[T any](items []T) []Pair[T] {
	out := make([]Pair[T], 0, len(items)*len(items))
	for _, a := range items {
		for _, b := range items {
			out = append(out, Pair[T]{A: a, B: b})
		}
	}
	return out
}

// Combine returns every unordered pair of distinct elements, each emitted
// once in input order. Size n*(n-1)/2.
func Combine[T any](items []T) []Pair[T] {
	out := make([]Pair[T], 0, len(items)*(len(items)-1)/2)
	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			out = append(out, Pair[T]{A: items[i], B: items[j]})
		}
	}
	return out
}

// CombineRep returns every unordered pair including identical elements.
// Size n*(n+1)/2.
func CombineRep[T any](items []T) []Pair[T] {
	out := make([]Pair[T], 0, len(items)*(len(items)+1)/2)
	for i := 0; i < len(items); i++ {
		for j := i; j < len(items); j++ {
			out = append(out, Pair[T]{A: items[i], B: items[j]})
		}
	}
	return out
}

// Key returns the result-column name for a pair of column names.
func Key(p Pair[string]) string {
	return fmt.Sprintf("%s-%s", p.A, p.B)
}

// Apply computes fn over every column pair produced by combi and
// assembles a new table keyed by pair, aligned on the original index.
// fn receives the two column value sequences and must return a sequence
// of the same length without mutating its inputs.
func Apply(t *model.Table, combi func([]string) []Pair[string], fn func(a, b []float64) []float64) (*model.Table, error) {
	colpairs := combi(t.Columns)
	columns := make([]string, 0, len(colpairs))
	values := make(map[string][]float64, len(colpairs))
	for _, p := range colpairs {
		vals := fn(t.Values[p.A], t.Values[p.B])
		if len(vals) != t.NumRows() {
			return nil, fmt.Errorf("pair %s: result has %d values for %d rows: %w",
				Key(p), len(vals), t.NumRows(), model.ErrShapeMismatch)
		}
		key := Key(p)
		columns = append(columns, key)
		values[key] = vals
	}
	return model.New(t.Index, columns, values)
}
