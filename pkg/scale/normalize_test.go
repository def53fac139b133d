package scale

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tunogya/hekla/pkg/apply"
	"github.com/tunogya/hekla/pkg/model"
	"github.com/tunogya/hekla/pkg/window"
)

const tol = 1e-12

func newTable(t *testing.T, columns []string, values map[string][]float64) *model.Table {
	t.Helper()
	n := len(values[columns[0]])
	index := model.SyntheticIndex(n, time.Unix(0, 0).UTC(), time.Minute)
	tab, err := model.New(index, columns, values)
	require.NoError(t, err)
	return tab
}

func TestParseMethod(t *testing.T) {
	for name, want := range map[string]Method{
		"max":    Max,
		"minmax": MinMax,
		"mean":   Mean,
		"std":    Std,
	} {
		got, err := ParseMethod(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Equal(t, name, got.String())
	}

	_, err := ParseMethod("median")
	assert.ErrorIs(t, err, ErrUnknownMethod)
}

func TestNormalizeUnknownMethod(t *testing.T) {
	tab := newTable(t, []string{"a"}, map[string][]float64{"a": {1, 2}})
	_, err := Normalize(tab, Method(99), apply.AxisColumn)
	assert.ErrorIs(t, err, ErrUnknownMethod)
}

func TestNormalizeMinMaxBounds(t *testing.T) {
	out, err := NormalizeSeries([]float64{3, 9, 1, 7, 5}, MinMax)
	require.NoError(t, err)

	lo, hi := out[0], out[0]
	for _, v := range out {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	assert.InDelta(t, 0, lo, tol)
	assert.InDelta(t, 1, hi, tol)
}

func TestNormalizeMax(t *testing.T) {
	out, err := NormalizeSeries([]float64{2, 4, 8}, Max)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.25, 0.5, 1}, out, tol)
}

func TestNormalizeMeanConcrete(t *testing.T) {
	// (x - 3) / (5 - 1) elementwise.
	out, err := NormalizeSeries([]float64{1, 2, 3, 4, 5}, Mean)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{-0.5, -0.25, 0, 0.25, 0.5}, out, tol)
}

func TestNormalizeStdUsesSampleStd(t *testing.T) {
	out, err := NormalizeSeries([]float64{1, 2, 3, 4, 5}, Std)
	require.NoError(t, err)

	std := math.Sqrt(2.5)
	want := []float64{-2 / std, -1 / std, 0, 1 / std, 2 / std}
	assert.InDeltaSlice(t, want, out, tol)
}

func TestNormalizeFlatSeriesYieldsNaN(t *testing.T) {
	out, err := NormalizeSeries([]float64{2, 2, 2}, MinMax)
	require.NoError(t, err)
	for _, v := range out {
		assert.True(t, math.IsNaN(v))
	}
}

func TestNormalizeAxisAll(t *testing.T) {
	tab := newTable(t, []string{"a", "b"}, map[string][]float64{
		"a": {0, 2},
		"b": {4, 8},
	})

	// Joint min 0 and max 8 across both columns.
	out, err := Normalize(tab, MinMax, apply.AxisAll)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 0.25}, out.Values["a"], tol)
	assert.InDeltaSlice(t, []float64{0.5, 1}, out.Values["b"], tol)
}

func TestRollingNormalize(t *testing.T) {
	tab := newTable(t, []string{"a"}, map[string][]float64{"a": {1, 2, 3, 4, 5}})

	out, err := RollingNormalize(tab, MinMax, window.Rolling{Span: 3})
	require.NoError(t, err)

	vals := out.Values["a"]
	assert.True(t, math.IsNaN(vals[0]))
	assert.True(t, math.IsNaN(vals[1]))
	// The current row is the maximum of every full window.
	assert.InDeltaSlice(t, []float64{1, 1, 1}, vals[2:], tol)
}

func TestExpandingNormalize(t *testing.T) {
	tab := newTable(t, []string{"a"}, map[string][]float64{"a": {1, 2, 4}})

	out, err := ExpandingNormalize(tab, Max, window.Expanding{})
	require.NoError(t, err)
	// Each position is divided by the running maximum, which is itself
	// for an increasing series.
	assert.InDeltaSlice(t, []float64{1, 1, 1}, out.Values["a"], tol)
}

func TestResampleNormalize(t *testing.T) {
	index := []time.Time{
		time.Unix(0, 0).UTC(),
		time.Unix(0, 0).UTC().Add(10 * time.Minute),
		time.Unix(0, 0).UTC().Add(61 * time.Minute),
		time.Unix(0, 0).UTC().Add(62 * time.Minute),
	}
	tab, err := model.New(index, []string{"a"}, map[string][]float64{"a": {1, 3, 10, 30}})
	require.NoError(t, err)

	out, err := ResampleNormalize(tab, MinMax, time.Hour)
	require.NoError(t, err)
	// Each hourly bucket normalizes against its own min and max.
	assert.InDeltaSlice(t, []float64{0, 1, 0, 1}, out.Values["a"], tol)
}
