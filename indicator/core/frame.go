package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Frame is a small table of equally long, named float columns sharing one index.
// Column order is significant.
type Frame struct {
	index   []time.Time
	names   []string
	columns [][]float64
}

// NewFrame builds a frame from parallel columns. index may be nil.
func NewFrame(index []time.Time, names []string, columns ...[]float64) (*Frame, error) {
	if len(names) != len(columns) {
		return nil, fmt.Errorf("%w: %d names for %d columns", ErrColumnCount, len(names), len(columns))
	}
	n := -1
	for i, c := range columns {
		if n == -1 {
			n = len(c)
			continue
		}
		if len(c) != n {
			return nil, fmt.Errorf("%w: column %q has %d rows, want %d", ErrLengthMismatch, names[i], len(c), n)
		}
	}
	if index != nil && n != -1 && len(index) != n {
		return nil, fmt.Errorf("%w: index %d, rows %d", ErrLengthMismatch, len(index), n)
	}
	return &Frame{
		index:   index,
		names:   copySlice(names),
		columns: columns,
	}, nil
}

// Len returns the row count.
func (f *Frame) Len() int {
	if len(f.columns) == 0 {
		return len(f.index)
	}
	return len(f.columns[0])
}

// Index returns the shared time index (nil for positional frames).
func (f *Frame) Index() []time.Time { return f.index }

// Columns returns a copy of the column names in order.
func (f *Frame) Columns() []string { return copySlice(f.names) }

// Column looks a column up by name.
func (f *Frame) Column(name string) (Series, bool) {
	for i, n := range f.names {
		if n == name {
			return f.ColumnAt(i), true
		}
	}
	return Series{}, false
}

// ColumnAt returns the i-th column as a series.
func (f *Frame) ColumnAt(i int) Series {
	return Series{Name: f.names[i], Index: f.index, Values: f.columns[i]}
}

// Rename relabels every column positionally. The number of names must match
// the number of columns.
func (f *Frame) Rename(names ...string) error {
	if len(names) != len(f.names) {
		return fmt.Errorf("%w: frame has %d columns, got %d names", ErrColumnCount, len(f.names), len(names))
	}
	f.names = copySlice(names)
	return nil
}

// Join appends the columns of the given series. Each must match the frame's
// row count.
func (f *Frame) Join(series ...Series) error {
	for _, s := range series {
		if len(f.columns) > 0 && s.Len() != f.Len() {
			return fmt.Errorf("%w: column %q has %d rows, want %d", ErrLengthMismatch, s.Name, s.Len(), f.Len())
		}
		if f.index == nil {
			f.index = s.Index
		}
		f.names = append(f.names, s.Name)
		f.columns = append(f.columns, s.Values)
	}
	return nil
}

// PlotData emits one line plot per column.
func (f *Frame) PlotData(startTime, interval int64) []PlotData {
	if f.Len() == 0 {
		return nil
	}
	x := positions(f.Len())
	ts := timestampsFor(f.index, f.Len(), startTime, interval)
	plots := make([]PlotData, 0, len(f.columns))
	for i, c := range f.columns {
		plots = append(plots, PlotData{
			Name:      f.names[i],
			X:         x,
			Y:         copySlice(c),
			Type:      "line",
			Timestamp: ts,
		})
	}
	return plots
}

// CSV renders the frame row-wise with a leading index column. Undefined values
// are written as empty cells.
func (f *Frame) CSV() string {
	var sb strings.Builder
	if f.index != nil {
		sb.WriteString("time")
	} else {
		sb.WriteString("i")
	}
	for _, n := range f.names {
		sb.WriteByte(',')
		sb.WriteString(n)
	}
	sb.WriteByte('\n')
	for r := 0; r < f.Len(); r++ {
		if f.index != nil {
			sb.WriteString(f.index[r].UTC().Format(time.RFC3339))
		} else {
			sb.WriteString(strconv.Itoa(r))
		}
		for _, c := range f.columns {
			sb.WriteByte(',')
			if v := c[r]; !math.IsNaN(v) && !math.IsInf(v, 0) {
				sb.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
