package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrLengthMismatch is returned when series that must be aligned differ in length.
	ErrLengthMismatch = errors.New("series length mismatch")
	// ErrColumnCount is returned when a relabel does not name every column.
	ErrColumnCount = errors.New("column count mismatch")
)

// Series is an ordered sequence of numeric samples. Index is optional; when it
// is nil the series is indexed by position. Undefined samples are NaN.
type Series struct {
	Name   string
	Index  []time.Time
	Values []float64
}

// NewSeries builds a positional series. The values slice is not copied.
func NewSeries(name string, values []float64) Series {
	return Series{Name: name, Values: values}
}

// NewTimeSeries builds a time-indexed series.
func NewTimeSeries(name string, index []time.Time, values []float64) (Series, error) {
	if len(index) != len(values) {
		return Series{}, fmt.Errorf("%w: index %d, values %d", ErrLengthMismatch, len(index), len(values))
	}
	return Series{Name: name, Index: index, Values: values}, nil
}

// SeriesFromDecimals converts exact decimal prices into a float series. index
// may be nil.
func SeriesFromDecimals(name string, index []time.Time, values []decimal.Decimal) (Series, error) {
	if index != nil && len(index) != len(values) {
		return Series{}, fmt.Errorf("%w: index %d, values %d", ErrLengthMismatch, len(index), len(values))
	}
	out := make([]float64, len(values))
	for i, d := range values {
		out[i] = d.InexactFloat64()
	}
	return Series{Name: name, Index: index, Values: out}, nil
}

// Len returns the number of samples.
func (s Series) Len() int { return len(s.Values) }

// At returns the i-th value.
func (s Series) At(i int) float64 { return s.Values[i] }

// Derive builds an output series that shares the receiver's index.
func (s Series) Derive(name string, values []float64) Series {
	return Series{Name: name, Index: s.Index, Values: values}
}

// PlotData emits a single line plot. When the series carries a time index the
// timestamps are taken from it and startTime/interval are ignored.
func (s Series) PlotData(startTime, interval int64) []PlotData {
	if len(s.Values) == 0 {
		return nil
	}
	return []PlotData{{
		Name:      s.Name,
		X:         positions(len(s.Values)),
		Y:         copySlice(s.Values),
		Type:      "line",
		Timestamp: timestampsFor(s.Index, len(s.Values), startTime, interval),
	}}
}

// BoolSeries is a series of flags aligned with the input it was derived from.
type BoolSeries struct {
	Name   string
	Index  []time.Time
	Values []bool
}

// Len returns the number of samples.
func (b BoolSeries) Len() int { return len(b.Values) }

// Count returns how many flags are set.
func (b BoolSeries) Count() int {
	n := 0
	for _, v := range b.Values {
		if v {
			n++
		}
	}
	return n
}

// Positions returns the indices at which the flag is set.
func (b BoolSeries) Positions() []int {
	var idx []int
	for i, v := range b.Values {
		if v {
			idx = append(idx, i)
		}
	}
	return idx
}

// Float converts the flags into 1/0 values.
func (b BoolSeries) Float() Series {
	out := make([]float64, len(b.Values))
	for i, v := range b.Values {
		if v {
			out[i] = 1
		}
	}
	return Series{Name: b.Name, Index: b.Index, Values: out}
}

// PlotData emits the flags as a scatter of 1/0 values.
func (b BoolSeries) PlotData(startTime, interval int64) []PlotData {
	plots := b.Float().PlotData(startTime, interval)
	for i := range plots {
		plots[i].Type = "scatter"
	}
	return plots
}

func timestampsFor(index []time.Time, n int, startTime, interval int64) []int64 {
	if len(index) != n {
		return GenerateTimestamps(startTime, n, interval)
	}
	ts := make([]int64, n)
	for i, t := range index {
		ts[i] = t.Unix()
	}
	return ts
}
