package gota

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/evdnx/gota/indicator/core"
	"github.com/evdnx/gota/indicator/volume"
)

// ---- Series & frames ----
type Series = core.Series
type BoolSeries = core.BoolSeries
type Frame = core.Frame

func NewSeries(name string, values []float64) Series {
	return core.NewSeries(name, values)
}

func NewTimeSeries(name string, index []time.Time, values []float64) (Series, error) {
	return core.NewTimeSeries(name, index, values)
}

func SeriesFromDecimals(name string, index []time.Time, values []decimal.Decimal) (Series, error) {
	return core.SeriesFromDecimals(name, index, values)
}

func NewFrame(index []time.Time, names []string, columns ...[]float64) (*Frame, error) {
	return core.NewFrame(index, names, columns...)
}

// ---- Plot data ----
type PlotData = core.PlotData

func GenerateTimestamps(startTime int64, count int, interval int64) []int64 {
	return core.GenerateTimestamps(startTime, count, interval)
}

func FormatPlotDataJSON(data []PlotData) (string, error) {
	return core.FormatPlotDataJSON(data)
}

func FormatPlotDataCSV(data []PlotData) (string, error) {
	return core.FormatPlotDataCSV(data)
}

// ---- VWAP anchors ----
type Anchor = volume.Anchor

const (
	AnchorNone  = volume.AnchorNone
	AnchorDay   = volume.AnchorDay
	AnchorWeek  = volume.AnchorWeek
	AnchorMonth = volume.AnchorMonth
)
