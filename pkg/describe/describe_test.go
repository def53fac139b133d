package describe

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tunogya/hekla/pkg/model"
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

func TestValues(t *testing.T) {
	s, err := Values("a", []float64{1, 2, 3, 4, 5})
	require.NoError(t, err)

	assert.Equal(t, "a", s.Column)
	assert.Equal(t, 5, s.Count)
	assert.InDelta(t, 3, s.Mean, tol)
	assert.InDelta(t, math.Sqrt(2.5), s.Std, tol)
	assert.InDelta(t, 1, s.Min, tol)
	assert.InDelta(t, 1.5, s.Q1, tol)
	assert.InDelta(t, 3, s.Median, tol)
	assert.InDelta(t, 4.5, s.Q3, tol)
	assert.InDelta(t, 5, s.Max, tol)
}

func TestValuesEmpty(t *testing.T) {
	_, err := Values("a", nil)
	assert.Error(t, err)
}

func TestTablePerColumn(t *testing.T) {
	tab := newTable(t, []string{"a", "b"}, map[string][]float64{
		"a": {1, 2, 3},
		"b": {10, 20, 30},
	})

	summaries, err := Table(tab)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "a", summaries[0].Column)
	assert.InDelta(t, 2, summaries[0].Mean, tol)
	assert.Equal(t, "b", summaries[1].Column)
	assert.InDelta(t, 20, summaries[1].Mean, tol)
}

func TestFlat(t *testing.T) {
	tab := newTable(t, []string{"a", "b"}, map[string][]float64{
		"a": {0, 2},
		"b": {4, 6},
	})

	s, err := Flat(tab)
	require.NoError(t, err)
	assert.Equal(t, 4, s.Count)
	assert.InDelta(t, 3, s.Mean, tol)
	assert.InDelta(t, 0, s.Min, tol)
	assert.InDelta(t, 6, s.Max, tol)
}

func TestStack(t *testing.T) {
	btc := newTable(t, []string{"close", "volume"}, map[string][]float64{
		"close":  {1, 2, 3},
		"volume": {7, 8, 9},
	})
	eth := newTable(t, []string{"close"}, map[string][]float64{
		"close": {10, 20, 30},
	})

	out, err := Stack(map[string]*model.Table{"eth": eth, "btc": btc}, "close", 0)
	require.NoError(t, err)

	// Columns are the table names in sorted order.
	assert.Equal(t, []string{"btc", "eth"}, out.Columns)
	assert.Equal(t, []float64{1, 2, 3}, out.Values["btc"])
	assert.Equal(t, []float64{10, 20, 30}, out.Values["eth"])
}

func TestStackTrailingSpan(t *testing.T) {
	btc := newTable(t, []string{"close"}, map[string][]float64{"close": {1, 2, 3}})

	out, err := Stack(map[string]*model.Table{"btc": btc}, "close", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, []float64{3}, out.Values["btc"])
}

func TestStackRejectsMisalignedIndexes(t *testing.T) {
	dayOne := model.SyntheticIndex(3, time.Unix(0, 0).UTC(), time.Minute)
	dayTwo := model.SyntheticIndex(3, time.Unix(0, 0).UTC().AddDate(0, 0, 1), time.Minute)

	btc, err := model.New(dayOne, []string{"close"}, map[string][]float64{"close": {1, 2, 3}})
	require.NoError(t, err)
	eth, err := model.New(dayTwo, []string{"close"}, map[string][]float64{"close": {10, 20, 30}})
	require.NoError(t, err)

	// Same length but disjoint timestamps: combining would re-timestamp
	// one table's values onto the other's index.
	_, err = Stack(map[string]*model.Table{"btc": btc, "eth": eth}, "close", 0)
	assert.ErrorIs(t, err, ErrIndexMismatch)
}

func TestStackLengthMismatch(t *testing.T) {
	long := newTable(t, []string{"close"}, map[string][]float64{"close": {1, 2, 3}})
	short := newTable(t, []string{"close"}, map[string][]float64{"close": {1}})

	_, err := Stack(map[string]*model.Table{"a": long, "b": short}, "close", 0)
	assert.ErrorIs(t, err, model.ErrShapeMismatch)
}

func TestStackMissingColumn(t *testing.T) {
	btc := newTable(t, []string{"close"}, map[string][]float64{"close": {1}})

	_, err := Stack(map[string]*model.Table{"btc": btc}, "open", 0)
	assert.ErrorIs(t, err, model.ErrUnknownColumn)
}
