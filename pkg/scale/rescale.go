package scale

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/tunogya/hekla/pkg/apply"
	"github.com/tunogya/hekla/pkg/model"
	"github.com/tunogya/hekla/pkg/window"
)

// ErrInvalidRange reports a range whose Min exceeds its Max.
var ErrInvalidRange = errors.New("range min exceeds max")

// Range is a pair of numeric bounds. A degenerate range (Min == Max) is
// legal; it only matters when used as a from-range different from the
// to-range, where it degenerates to division by zero and yields NaN/Inf.
type Range struct {
	Min, Max float64
}

func (r Range) valid() bool {
	return r.Min <= r.Max
}

// RescaleValue maps x from one range onto another with an affine
// transform. Identical ranges short-circuit to x unchanged, which also
// keeps equal degenerate ranges free of a spurious zero division.
func RescaleValue(x float64, from, to Range) float64 {
	if from == to {
		return x
	}
	return (x-from.Min)*(to.Max-to.Min)/(from.Max-from.Min) + to.Min
}

// checkRanges validates explicitly supplied ranges. The identity pair is
// always legal since RescaleValue never touches the bounds for it.
func checkRanges(from *Range, to Range) error {
	if from != nil && *from == to {
		return nil
	}
	if !to.valid() {
		return fmt.Errorf("to range (%v, %v): %w", to.Min, to.Max, ErrInvalidRange)
	}
	if from != nil && !from.valid() {
		return fmt.Errorf("from range (%v, %v): %w", from.Min, from.Max, ErrInvalidRange)
	}
	return nil
}

// RescaleSeries rescales a value sequence onto the to range. A nil from
// range is derived as (min, max) of the sequence.
func RescaleSeries(values []float64, to Range, from *Range) ([]float64, error) {
	if err := checkRanges(from, to); err != nil {
		return nil, err
	}
	return rescaleSeries(values, to, from), nil
}

func rescaleSeries(values []float64, to Range, from *Range) []float64 {
	if len(values) == 0 {
		return nil
	}
	var src Range
	if from != nil {
		src = *from
	} else {
		src = Range{Min: floats.Min(values), Max: floats.Max(values)}
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = RescaleValue(v, src, to)
	}
	return out
}

// Rescale rescales the table along the given axis. With a nil from range
// the source bounds are derived from whatever the axis policy exposes to
// the transform: one column, one row, or the whole table (AxisAll).
func Rescale(t *model.Table, to Range, from *Range, axis apply.Axis) (*model.Table, error) {
	if err := checkRanges(from, to); err != nil {
		return nil, err
	}
	f := func(s []float64) []float64 {
		return rescaleSeries(s, to, from)
	}
	return apply.Apply(t, f, axis)
}

// RollingRescale rescales each rolling window and keeps the value at the
// window's current position.
func RollingRescale(t *model.Table, to Range, from *Range, spec window.Rolling) (*model.Table, error) {
	if err := checkRanges(from, to); err != nil {
		return nil, err
	}
	f := func(s []float64) []float64 {
		return rescaleSeries(s, to, from)
	}
	return apply.RollingApply(t, spec, lastOf(f))
}

// ExpandingRescale is RollingRescale over an expanding window.
func ExpandingRescale(t *model.Table, to Range, from *Range, spec window.Expanding) (*model.Table, error) {
	if err := checkRanges(from, to); err != nil {
		return nil, err
	}
	f := func(s []float64) []float64 {
		return rescaleSeries(s, to, from)
	}
	return apply.ExpandingApply(t, spec, lastOf(f))
}

// ResampleRescale rescales each fixed-size time bucket, deriving the
// from range per bucket when nil.
func ResampleRescale(t *model.Table, to Range, from *Range, bucket time.Duration) (*model.Table, error) {
	if err := checkRanges(from, to); err != nil {
		return nil, err
	}
	f := func(s []float64) []float64 {
		return rescaleSeries(s, to, from)
	}
	return apply.ResampleTransform(t, bucket, f)
}

// RangeTables is a table-valued range: per-element, per-time-step bounds.
type RangeTables struct {
	Min, Max *model.Table
}

// DynamicRescale rescales element-wise with table-valued bounds, so each
// value gets its own affine map. All four bound tables must have the
// shape and columns of t.
func DynamicRescale(t *model.Table, from, to RangeTables) (*model.Table, error) {
	for _, b := range []*model.Table{from.Min, from.Max, to.Min, to.Max} {
		if b == nil || b.NumRows() != t.NumRows() {
			return nil, fmt.Errorf("dynamic rescale bounds: %w", model.ErrShapeMismatch)
		}
	}
	out := model.Empty(t.Index, t.Columns)
	for _, name := range t.Columns {
		src := t.Values[name]
		min1, ok1 := from.Min.Values[name]
		max1, ok2 := from.Max.Values[name]
		min2, ok3 := to.Min.Values[name]
		max2, ok4 := to.Max.Values[name]
		if !ok1 || !ok2 || !ok3 || !ok4 {
			return nil, fmt.Errorf("dynamic rescale bounds: column %q: %w", name, model.ErrUnknownColumn)
		}
		dst := out.Values[name]
		for i, v := range src {
			dst[i] = (v-min1[i])*(max2[i]-min2[i])/(max1[i]-min1[i]) + min2[i]
		}
	}
	return out, nil
}

// ReverseScale maps every value x to min + max - x, a point reflection
// across the value range seen by the axis policy. NaN values are ignored
// when deriving the bounds and pass through the reflection as NaN.
func ReverseScale(t *model.Table, axis apply.Axis) (*model.Table, error) {
	f := func(s []float64) []float64 {
		lo, hi := nanMin(s), nanMax(s)
		out := make([]float64, len(s))
		for i, v := range s {
			out[i] = lo + hi - v
		}
		return out
	}
	return apply.Apply(t, f, axis)
}

// nanMin returns the smallest non-NaN value, or NaN if there is none.
func nanMin(s []float64) float64 {
	min := math.NaN()
	for _, v := range s {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(min) || v < min {
			min = v
		}
	}
	return min
}

// nanMax returns the largest non-NaN value, or NaN if there is none.
func nanMax(s []float64) float64 {
	max := math.NaN()
	for _, v := range s {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(max) || v > max {
			max = v
		}
	}
	return max
}
