package core

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// -----------------------------------------------------------------------------
// Generic helpers
// -----------------------------------------------------------------------------

func copySlice[T any](src []T) []T {
	if src == nil {
		return nil
	}
	dst := make([]T, len(src))
	copy(dst, src)
	return dst
}

// MaskLeading overwrites the first n values with NaN in place and returns the
// slice. Libraries that zero-fill their lookback window use this so callers
// can tell "undefined" apart from a real zero.
func MaskLeading(values []float64, n int) []float64 {
	if n > len(values) {
		n = len(values)
	}
	for i := 0; i < n; i++ {
		values[i] = math.NaN()
	}
	return values
}

/* -------------------------------------------------------------------------
   Plotting utilities
--------------------------------------------------------------------------*/

type PlotData struct {
	Name      string    `json:"name"`
	X         []float64 `json:"x"`
	Y         []float64 `json:"y"`
	Type      string    `json:"type,omitempty"`
	Signal    string    `json:"signal,omitempty"`
	Timestamp []int64   `json:"timestamp,omitempty"`
}

// plotPoint mirrors PlotData for JSON output with NaN encoded as null, since
// encoding/json rejects NaN.
type plotPoint struct {
	Name      string     `json:"name"`
	X         []float64  `json:"x"`
	Y         []*float64 `json:"y"`
	Type      string     `json:"type,omitempty"`
	Signal    string     `json:"signal,omitempty"`
	Timestamp []int64    `json:"timestamp,omitempty"`
}

func GenerateTimestamps(startTime int64, count int, interval int64) []int64 {
	if count <= 0 {
		return nil
	}
	ts := make([]int64, count)
	for i := 0; i < count; i++ {
		ts[i] = startTime + int64(i)*interval
	}
	return ts
}

func FormatPlotDataJSON(data []PlotData) (string, error) {
	if len(data) == 0 {
		return "[]", nil
	}
	out := make([]plotPoint, 0, len(data))
	for _, d := range data {
		if len(d.X) != len(d.Y) {
			return "", fmt.Errorf("mismatched X and Y lengths for %s: %d vs %d", d.Name, len(d.X), len(d.Y))
		}
		y := make([]*float64, len(d.Y))
		for i := range d.Y {
			if math.IsNaN(d.Y[i]) || math.IsInf(d.Y[i], 0) {
				continue
			}
			v := d.Y[i]
			y[i] = &v
		}
		out = append(out, plotPoint{
			Name:      d.Name,
			X:         d.X,
			Y:         y,
			Type:      d.Type,
			Signal:    d.Signal,
			Timestamp: d.Timestamp,
		})
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("failed to marshal plot data: %w", err)
	}
	return string(b), nil
}

// FormatPlotDataCSV writes one row per point. Undefined Y values are empty
// cells, matching Frame.CSV.
func FormatPlotDataCSV(data []PlotData) (string, error) {
	if len(data) == 0 {
		return "", nil
	}
	var sb strings.Builder
	sb.WriteString("Name,X,Y,Type,Signal,Timestamp\n")
	for _, d := range data {
		if len(d.X) != len(d.Y) {
			return "", fmt.Errorf("mismatched X and Y lengths for %s: %d vs %d", d.Name, len(d.X), len(d.Y))
		}
		for i := 0; i < len(d.X); i++ {
			ts := ""
			if i < len(d.Timestamp) {
				ts = fmt.Sprintf("%d", d.Timestamp[i])
			}
			y := ""
			if v := d.Y[i]; !math.IsNaN(v) && !math.IsInf(v, 0) {
				y = fmt.Sprintf("%f", v)
			}
			fmt.Fprintf(&sb, "%s,%f,%s,%s,%s,%s\n",
				d.Name, d.X[i], y, d.Type, d.Signal, ts)
		}
	}
	return sb.String(), nil
}

// positions returns 0..n-1 as float64, the X axis used by every plot.
func positions(n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = float64(i)
	}
	return x
}
