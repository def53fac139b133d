// Package window selects and partitions rows of a time-ordered table:
// trailing selection, rolling and expanding window specifications, and
// fixed-interval resampling. All operations require the table index to be
// sorted ascending; results are unspecified otherwise.
package window

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/tunogya/hekla/pkg/model"
)

// Errors returned by windowing operations.
var (
	ErrEmptyTable  = errors.New("table has no rows")
	ErrInvalidSpan = errors.New("span must be positive")
)

// Direction selects which side of the current row a window extends over.
// Forward is the past-only default: the window at a position covers that
// position and the rows before it. Backward covers the position and the
// rows after it, implemented by reversing the row order, running the
// forward algorithm and reversing the output back. It is a trailing
// window anchored at the other end of the table, not a time-shifted one.
type Direction int

const (
	DirectionForward Direction = iota
	DirectionBackward
)

// Rolling specifies a fixed-span sliding window. Span is a row count.
// A position produces a value once at least MinPeriods rows are available
// in its window; earlier positions produce NaN. MinPeriods defaults to
// Span when zero.
type Rolling struct {
	Span       int
	MinPeriods int
	Direction  Direction
}

// EffectiveMinPeriods resolves the MinPeriods default.
func (r Rolling) EffectiveMinPeriods() int {
	if r.MinPeriods <= 0 {
		return r.Span
	}
	return r.MinPeriods
}

// Bounds returns the half-open row range [start, end) of the window at
// position pos, and whether enough rows are available to produce a value.
func (r Rolling) Bounds(pos int) (start, end int, ok bool) {
	end = pos + 1
	start = end - r.Span
	if start < 0 {
		start = 0
	}
	return start, end, end-start >= r.EffectiveMinPeriods()
}

// Expanding specifies a monotonically growing window anchored at the
// first row (or the last, for DirectionBackward). MinPeriods defaults
// to 1 when zero.
type Expanding struct {
	MinPeriods int
	Direction  Direction
}

// EffectiveMinPeriods resolves the MinPeriods default.
func (e Expanding) EffectiveMinPeriods() int {
	if e.MinPeriods <= 0 {
		return 1
	}
	return e.MinPeriods
}

// Bounds returns the row range [0, end) of the window at position pos,
// and whether enough rows are available to produce a value.
func (e Expanding) Bounds(pos int) (start, end int, ok bool) {
	end = pos + 1
	return 0, end, end >= e.EffectiveMinPeriods()
}

// SelectTrailing returns the rows whose index value is strictly greater
// than maxIndex - span, where maxIndex is the table's last index entry.
// Returns ErrEmptyTable when the table has no rows.
func SelectTrailing(t *model.Table, span time.Duration) (*model.Table, error) {
	n := t.NumRows()
	if n == 0 {
		return nil, fmt.Errorf("select trailing window: %w", ErrEmptyTable)
	}
	cutoff := t.Index[n-1].Add(-span)
	first := sort.Search(n, func(i int) bool {
		return t.Index[i].After(cutoff)
	})
	return t.Slice(first, n), nil
}

// Bucket is one resampling group: the positions of its member rows plus
// the representative index, which is the first member row's timestamp.
type Bucket struct {
	Start time.Time
	Rows  []int
}

// Resample partitions the rows into contiguous non-overlapping buckets of
// the given fixed size. Rows are grouped by their index truncated to the
// bucket size, so every row belongs to exactly one bucket. An empty table
// yields no buckets.
func Resample(t *model.Table, bucket time.Duration) ([]Bucket, error) {
	if bucket <= 0 {
		return nil, fmt.Errorf("resample bucket size %v: %w", bucket, ErrInvalidSpan)
	}
	var buckets []Bucket
	var key time.Time
	for i, ts := range t.Index {
		k := ts.Truncate(bucket)
		if i == 0 || !k.Equal(key) {
			buckets = append(buckets, Bucket{Start: ts})
			key = k
		}
		last := &buckets[len(buckets)-1]
		last.Rows = append(last.Rows, i)
	}
	return buckets, nil
}
