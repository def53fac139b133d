// Package scale normalizes and rescales tables: four normalization
// methods, affine rescaling between numeric ranges, and their rolling,
// expanding and resampled compositions. Degenerate inputs (flat series,
// zero standard deviation) produce NaN or Inf per floating-point
// semantics; only malformed parameters produce errors.
package scale

import (
	"errors"
	"fmt"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/tunogya/hekla/pkg/apply"
	"github.com/tunogya/hekla/pkg/model"
	"github.com/tunogya/hekla/pkg/window"
)

// ErrUnknownMethod reports an unrecognized normalization method.
var ErrUnknownMethod = errors.New("unknown normalization method")

// Method identifies a normalization formula.
type Method int

const (
	// Max divides by the maximum: s / max(s).
	Max Method = iota
	// MinMax maps onto [0, 1]: (s - min(s)) / (max(s) - min(s)).
	MinMax
	// Mean centers on the mean over the value range:
	// (s - mean(s)) / (max(s) - min(s)).
	Mean
	// Std is the z-score with sample standard deviation:
	// (s - mean(s)) / std(s).
	Std
)

// methodNames doubles as the parse and String lookup.
var methodNames = map[Method]string{
	Max:    "max",
	MinMax: "minmax",
	Mean:   "mean",
	Std:    "std",
}

// String returns the method's wire name.
func (m Method) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod resolves a method name. Unknown names return
// ErrUnknownMethod.
func ParseMethod(name string) (Method, error) {
	for m, n := range methodNames {
		if n == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%q: %w", name, ErrUnknownMethod)
}

// formulas maps each method to its normalization transform.
var formulas = map[Method]apply.Transform{
	Max: func(s []float64) []float64 {
		return affine(s, 0, floats.Max(s))
	},
	MinMax: func(s []float64) []float64 {
		lo, hi := floats.Min(s), floats.Max(s)
		return affine(s, lo, hi-lo)
	},
	Mean: func(s []float64) []float64 {
		return affine(s, stat.Mean(s, nil), floats.Max(s)-floats.Min(s))
	},
	Std: func(s []float64) []float64 {
		return affine(s, stat.Mean(s, nil), stat.StdDev(s, nil))
	},
}

// affine returns (s - shift) / div elementwise. A zero div yields NaN or
// Inf, never an error.
func affine(s []float64, shift, div float64) []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = (v - shift) / div
	}
	return out
}

// formula resolves the transform for a method.
func formula(m Method) (apply.Transform, error) {
	f, ok := formulas[m]
	if !ok {
		return nil, fmt.Errorf("%v: %w", m, ErrUnknownMethod)
	}
	guarded := func(s []float64) []float64 {
		if len(s) == 0 {
			return nil
		}
		return f(s)
	}
	return guarded, nil
}

// NormalizeSeries normalizes a value sequence with the given method.
func NormalizeSeries(values []float64, m Method) ([]float64, error) {
	f, err := formula(m)
	if err != nil {
		return nil, err
	}
	return f(values), nil
}

// Normalize normalizes the table along the given axis: each column, each
// row, or all values jointly (AxisAll).
func Normalize(t *model.Table, m Method, axis apply.Axis) (*model.Table, error) {
	f, err := formula(m)
	if err != nil {
		return nil, err
	}
	return apply.Apply(t, f, axis)
}

// RollingNormalize normalizes each rolling window and keeps the value at
// the window's current position, producing one value per row per column.
func RollingNormalize(t *model.Table, m Method, spec window.Rolling) (*model.Table, error) {
	f, err := formula(m)
	if err != nil {
		return nil, err
	}
	return apply.RollingApply(t, spec, lastOf(f))
}

// ExpandingNormalize is RollingNormalize over an expanding window.
func ExpandingNormalize(t *model.Table, m Method, spec window.Expanding) (*model.Table, error) {
	f, err := formula(m)
	if err != nil {
		return nil, err
	}
	return apply.ExpandingApply(t, spec, lastOf(f))
}

// ResampleNormalize normalizes each fixed-size time bucket against its
// own statistics, producing one value per input row.
func ResampleNormalize(t *model.Table, m Method, bucket time.Duration) (*model.Table, error) {
	f, err := formula(m)
	if err != nil {
		return nil, err
	}
	return apply.ResampleTransform(t, bucket, f)
}

// lastOf reduces a window to the transformed value at its final position,
// which is the window's current row in the forward traversal.
func lastOf(f apply.Transform) apply.Reducer {
	return func(s []float64) float64 {
		out := f(s)
		return out[len(out)-1]
	}
}
