// Package apply drives caller-supplied reducer functions over tables:
// per column, per row, over the flattened whole, or over the rolling,
// expanding and resampled windows defined by pkg/window. Reducers must be
// pure and must not mutate the sequences they receive.
package apply

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/tunogya/hekla/pkg/model"
	"github.com/tunogya/hekla/pkg/window"
)

// nan marks positions whose window has too few rows to produce a value.
var nan = math.NaN()

// ErrBadTransform reports a Transform whose output length does not match
// its input.
var ErrBadTransform = errors.New("transform returned a sequence of the wrong length")

// Reducer maps a sequence of values to a single value.
type Reducer func([]float64) float64

// Transform maps a sequence of values to a sequence of the same length.
type Transform func([]float64) []float64

// Axis selects what a Transform sees in Apply.
type Axis int

const (
	// AxisColumn applies the transform to each column independently.
	AxisColumn Axis = iota
	// AxisRow applies the transform to each row's values across columns.
	AxisRow
	// AxisAll flattens the whole table row-major, applies the transform
	// once, and reshapes the output back to the table's original shape.
	// Use it when the transform must see every value jointly, such as a
	// global min/max based rescale.
	AxisAll
)

// Apply runs fn over the table along the given axis and returns a table
// of the same shape.
func Apply(t *model.Table, fn Transform, axis Axis) (*model.Table, error) {
	switch axis {
	case AxisColumn:
		return applyColumns(t, fn)
	case AxisRow:
		return applyRows(t, fn)
	case AxisAll:
		return applyAll(t, fn)
	default:
		return nil, fmt.Errorf("unknown axis %d", axis)
	}
}

func applyColumns(t *model.Table, fn Transform) (*model.Table, error) {
	out := model.Empty(t.Index, t.Columns)
	for _, name := range t.Columns {
		vals := fn(t.Values[name])
		if len(vals) != t.NumRows() {
			return nil, fmt.Errorf("column %q: %w", name, ErrBadTransform)
		}
		copy(out.Values[name], vals)
	}
	return out, nil
}

func applyRows(t *model.Table, fn Transform) (*model.Table, error) {
	out := model.Empty(t.Index, t.Columns)
	for i := 0; i < t.NumRows(); i++ {
		vals := fn(t.Row(i))
		if len(vals) != t.NumCols() {
			return nil, fmt.Errorf("row %d: %w", i, ErrBadTransform)
		}
		for c, name := range t.Columns {
			out.Values[name][i] = vals[c]
		}
	}
	return out, nil
}

func applyAll(t *model.Table, fn Transform) (*model.Table, error) {
	rows, cols := t.NumRows(), t.NumCols()
	flat := make([]float64, 0, rows*cols)
	for i := 0; i < rows; i++ {
		flat = append(flat, t.Row(i)...)
	}
	vals := fn(flat)
	if len(vals) != rows*cols {
		return nil, ErrBadTransform
	}
	out := model.Empty(t.Index, t.Columns)
	for i := 0; i < rows; i++ {
		for c, name := range t.Columns {
			out.Values[name][i] = vals[i*cols+c]
		}
	}
	return out, nil
}

// RollingApply runs fn over each rolling window of every column,
// producing one value per row per column. Positions with fewer than
// MinPeriods rows in their window produce NaN.
func RollingApply(t *model.Table, spec window.Rolling, fn Reducer) (*model.Table, error) {
	if spec.Span <= 0 {
		return nil, fmt.Errorf("rolling span %d: %w", spec.Span, window.ErrInvalidSpan)
	}
	if spec.Direction == window.DirectionBackward {
		forward := spec
		forward.Direction = window.DirectionForward
		out, err := RollingApply(t.Reverse(), forward, fn)
		if err != nil {
			return nil, err
		}
		return out.Reverse(), nil
	}
	return applyPositional(t, spec.Bounds, fn), nil
}

// ExpandingApply runs fn over each expanding window of every column.
func ExpandingApply(t *model.Table, spec window.Expanding, fn Reducer) (*model.Table, error) {
	if spec.Direction == window.DirectionBackward {
		forward := spec
		forward.Direction = window.DirectionForward
		out, err := ExpandingApply(t.Reverse(), forward, fn)
		if err != nil {
			return nil, err
		}
		return out.Reverse(), nil
	}
	return applyPositional(t, spec.Bounds, fn), nil
}

// applyPositional walks every position of every column and reduces the
// window bounds reports for it, writing NaN where not enough rows exist.
func applyPositional(t *model.Table, bounds func(pos int) (int, int, bool), fn Reducer) *model.Table {
	out := model.Empty(t.Index, t.Columns)
	for _, name := range t.Columns {
		src := t.Values[name]
		dst := out.Values[name]
		for i := range src {
			start, end, ok := bounds(i)
			if !ok {
				dst[i] = nan
				continue
			}
			dst[i] = fn(src[start:end])
		}
	}
	return out
}

// ResampleApply partitions the table into fixed-size time buckets and
// reduces each bucket of every column to one value, producing one output
// row per bucket indexed by the bucket's representative timestamp.
func ResampleApply(t *model.Table, bucket time.Duration, fn Reducer) (*model.Table, error) {
	buckets, err := window.Resample(t, bucket)
	if err != nil {
		return nil, err
	}
	index := make([]time.Time, len(buckets))
	for i, b := range buckets {
		index[i] = b.Start
	}
	out := model.Empty(index, t.Columns)
	for _, name := range t.Columns {
		src := t.Values[name]
		for i, b := range buckets {
			out.Values[name][i] = fn(src[b.Rows[0] : b.Rows[len(b.Rows)-1]+1])
		}
	}
	return out, nil
}

// ResampleTransform partitions the table into fixed-size time buckets and
// transforms each bucket of every column in place, producing one output
// row per input row. Use it when the per-bucket result is a sequence,
// such as normalizing each bucket against its own statistics.
func ResampleTransform(t *model.Table, bucket time.Duration, fn Transform) (*model.Table, error) {
	buckets, err := window.Resample(t, bucket)
	if err != nil {
		return nil, err
	}
	out := model.Empty(t.Index, t.Columns)
	for _, name := range t.Columns {
		src := t.Values[name]
		dst := out.Values[name]
		for _, b := range buckets {
			lo, hi := b.Rows[0], b.Rows[len(b.Rows)-1]+1
			vals := fn(src[lo:hi])
			if len(vals) != hi-lo {
				return nil, fmt.Errorf("column %q bucket at %v: %w", name, b.Start, ErrBadTransform)
			}
			copy(dst[lo:hi], vals)
		}
	}
	return out, nil
}
