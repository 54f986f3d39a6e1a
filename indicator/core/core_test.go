package core

import (
	"encoding/json"
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestMaskLeading(t *testing.T) {
	vals := MaskLeading([]float64{0, 0, 3, 4}, 2)
	if !math.IsNaN(vals[0]) || !math.IsNaN(vals[1]) {
		t.Fatalf("expected leading NaN, got %v", vals)
	}
	if vals[2] != 3 || vals[3] != 4 {
		t.Fatalf("tail must be untouched, got %v", vals)
	}

	// n larger than the slice masks everything without panicking.
	all := MaskLeading([]float64{1, 2}, 5)
	for i, v := range all {
		if !math.IsNaN(v) {
			t.Fatalf("index %d: expected NaN, got %v", i, v)
		}
	}
}

func TestNewTimeSeries_LengthMismatch(t *testing.T) {
	idx := []time.Time{time.Unix(0, 0)}
	if _, err := NewTimeSeries("close", idx, []float64{1, 2}); err == nil {
		t.Fatal("expected error for mismatched index")
	}
}

func TestSeriesFromDecimals(t *testing.T) {
	vals := []decimal.Decimal{
		decimal.RequireFromString("101.25"),
		decimal.RequireFromString("99.5"),
	}
	s, err := SeriesFromDecimals("close", nil, vals)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Len() != 2 || s.At(0) != 101.25 || s.At(1) != 99.5 {
		t.Fatalf("unexpected values %v", s.Values)
	}
	if _, err := SeriesFromDecimals("close", []time.Time{time.Unix(0, 0)}, vals); err == nil {
		t.Fatal("expected error for mismatched index")
	}
}

func TestFrame_Rename(t *testing.T) {
	f, err := NewFrame(nil, []string{"a", "b"}, []float64{1, 2}, []float64{3, 4})
	if err != nil {
		t.Fatalf("NewFrame: %v", err)
	}
	if err := f.Rename("x"); err == nil {
		t.Fatal("expected error when renaming with too few names")
	}
	if err := f.Rename("x", "y"); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if got := f.Columns(); !reflect.DeepEqual(got, []string{"x", "y"}) {
		t.Fatalf("unexpected columns %v", got)
	}
	col, ok := f.Column("y")
	if !ok || col.At(1) != 4 {
		t.Fatalf("Column(y) = %v, %v", col, ok)
	}
	if _, ok := f.Column("a"); ok {
		t.Fatal("old name must be gone after Rename")
	}
}

func TestNewFrame_RaggedColumns(t *testing.T) {
	if _, err := NewFrame(nil, []string{"a", "b"}, []float64{1, 2}, []float64{3}); err == nil {
		t.Fatal("expected error for ragged columns")
	}
	if _, err := NewFrame(nil, []string{"a"}, []float64{1}, []float64{3}); err == nil {
		t.Fatal("expected error for name/column count mismatch")
	}
}

func TestFrame_CSV(t *testing.T) {
	f, err := NewFrame(nil, []string{"a"}, []float64{math.NaN(), 1.5})
	if err != nil {
		t.Fatalf("NewFrame: %v", err)
	}
	want := "i,a\n0,\n1,1.5\n"
	if got := f.CSV(); got != want {
		t.Fatalf("CSV mismatch:\n got %q\nwant %q", got, want)
	}
}

func TestFormatPlotDataJSON_NaNAsNull(t *testing.T) {
	s := NewSeries("RSI_14", []float64{math.NaN(), 55})
	out, err := FormatPlotDataJSON(s.PlotData(1000, 60))
	if err != nil {
		t.Fatalf("FormatPlotDataJSON: %v", err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	y := decoded[0]["y"].([]any)
	if y[0] != nil || y[1].(float64) != 55 {
		t.Fatalf("unexpected y %v", y)
	}
	ts := decoded[0]["timestamp"].([]any)
	if ts[1].(float64) != 1060 {
		t.Fatalf("unexpected timestamps %v", ts)
	}
}

func TestFormatPlotDataCSV_Mismatch(t *testing.T) {
	_, err := FormatPlotDataCSV([]PlotData{{Name: "bad", X: []float64{0}, Y: nil}})
	if err == nil || !strings.Contains(err.Error(), "mismatched") {
		t.Fatalf("expected mismatch error, got %v", err)
	}
}

func TestFormatPlotDataCSV_NaNAsEmpty(t *testing.T) {
	s := NewSeries("RSI_14", []float64{math.NaN(), 55})
	out, err := FormatPlotDataCSV(s.PlotData(1000, 60))
	if err != nil {
		t.Fatalf("FormatPlotDataCSV: %v", err)
	}
	want := "Name,X,Y,Type,Signal,Timestamp\n" +
		"RSI_14,0.000000,,line,,1000\n" +
		"RSI_14,1.000000,55.000000,line,,1060\n"
	if out != want {
		t.Fatalf("unexpected CSV:\n%s\nwant:\n%s", out, want)
	}
}

func TestBoolSeries(t *testing.T) {
	b := BoolSeries{Name: "x_XA_y", Values: []bool{false, true, false, true}}
	if b.Count() != 2 {
		t.Fatalf("Count = %d, want 2", b.Count())
	}
	if got := b.Positions(); !reflect.DeepEqual(got, []int{1, 3}) {
		t.Fatalf("Positions = %v", got)
	}
	plots := b.PlotData(0, 1)
	if len(plots) != 1 || plots[0].Type != "scatter" || plots[0].Y[1] != 1 {
		t.Fatalf("unexpected plot %+v", plots)
	}
}
