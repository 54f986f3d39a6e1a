package volume

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/evdnx/gota/indicator/core"
)

func TestVWAP_Calculation(t *testing.T) {
	vwap := NewVWAP()

	candles := []struct {
		h, l, c, v float64
	}{
		{10, 8, 9, 2},
		{11, 9, 10, 1},
	}

	var val float64
	for _, c := range candles {
		val = vwap.Add(c.h, c.l, c.c, c.v)
	}

	// Expected VWAP: ((9*2) + (10*1)) / (2+1) = 28/3 ≈ 9.3333
	if math.Abs(val-9.333333) > 1e-6 {
		t.Fatalf("unexpected VWAP: got %.6f, want ~9.333333", val)
	}

	vwap.Reset()
	if got := vwap.Add(4, 4, 4, 0); !math.IsNaN(got) {
		t.Fatalf("expected NaN after reset with no volume, got %v", got)
	}
}

func TestCompute_UndefinedBarsAreSkipped(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name              string
		high, low, closes []float64
		vol               []float64
		want              []float64
	}{
		{
			name:   "missing close",
			high:   []float64{9, 10, 11, 12},
			low:    []float64{9, 10, 11, 12},
			closes: []float64{9, nan, 11, 12},
			vol:    []float64{1, 1, 1, 1},
			want:   []float64{9, nan, 10, 32.0 / 3},
		},
		{
			name:   "missing volume",
			high:   []float64{9, 10, 11},
			low:    []float64{9, 10, 11},
			closes: []float64{9, 10, 11},
			vol:    []float64{1, nan, 1},
			want:   []float64{9, nan, 10},
		},
		{
			name:   "high below low is computed",
			high:   []float64{9, 8},
			low:    []float64{9, 14},
			closes: []float64{9, 11},
			vol:    []float64{1, 1},
			want:   []float64{9, 10},
		},
		{
			name:   "negative price is computed",
			high:   []float64{3, -3},
			low:    []float64{3, -3},
			closes: []float64{3, -3},
			vol:    []float64{1, 1},
			want:   []float64{3, 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Compute(tt.high, tt.low, tt.closes, tt.vol, nil, AnchorDay)
			if err != nil {
				t.Fatalf("Compute: %v", err)
			}
			for i, want := range tt.want {
				if math.IsNaN(want) {
					if !math.IsNaN(out[i]) {
						t.Fatalf("bar %d: expected NaN, got %v", i, out[i])
					}
					continue
				}
				if math.Abs(out[i]-want) > 1e-9 {
					t.Fatalf("bar %d: got %v, want %v", i, out[i], want)
				}
			}
		})
	}
}

func TestCompute_Positional(t *testing.T) {
	high := []float64{10, 11, 12}
	low := []float64{8, 9, 10}
	closes := []float64{9, 10, 11}
	vol := []float64{0, 1, 1}

	out, err := Compute(high, low, closes, vol, nil, AnchorDay)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 values, got %d", len(out))
	}
	// No volume has traded on the first bar.
	if !math.IsNaN(out[0]) {
		t.Fatalf("expected NaN for zero-volume start, got %v", out[0])
	}
	if math.Abs(out[1]-10) > 1e-9 || math.Abs(out[2]-10.5) > 1e-9 {
		t.Fatalf("unexpected VWAP %v", out)
	}
}

func TestCompute_DailyAnchorResets(t *testing.T) {
	day := time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC)
	index := []time.Time{day, day.Add(time.Hour), day.Add(24 * time.Hour)}
	high := []float64{10, 20, 30}
	low := []float64{10, 20, 30}
	closes := []float64{10, 20, 30}
	vol := []float64{1, 1, 1}

	out, err := Compute(high, low, closes, vol, index, AnchorDay)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if out[1] != 15 {
		t.Fatalf("same-day VWAP: got %v, want 15", out[1])
	}
	if out[2] != 30 {
		t.Fatalf("new day must restart accumulation: got %v, want 30", out[2])
	}

	cum, err := Compute(high, low, closes, vol, index, AnchorNone)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if cum[2] != 20 {
		t.Fatalf("unanchored VWAP: got %v, want 20", cum[2])
	}
}

func TestCompute_MonthlyAnchorResets(t *testing.T) {
	index := []time.Time{
		time.Date(2024, 1, 30, 12, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 2, 12, 0, 0, 0, time.UTC),
	}
	prices := []float64{10, 20, 30, 50}
	vol := []float64{1, 1, 1, 1}

	out, err := Compute(prices, prices, prices, vol, index, AnchorMonth)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	want := []float64{10, 15, 30, 40}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("bar %d: got %v, want %v", i, out[i], want[i])
		}
	}
}

func TestCompute_LengthMismatch(t *testing.T) {
	_, err := Compute([]float64{1, 2}, []float64{1, 2}, []float64{1, 2}, []float64{1}, nil, AnchorNone)
	if !errors.Is(err, core.ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
}

func TestParseAnchor(t *testing.T) {
	for _, s := range []string{"N", "D", "W", "M"} {
		if _, err := ParseAnchor(s); err != nil {
			t.Fatalf("ParseAnchor(%q): %v", s, err)
		}
	}
	if _, err := ParseAnchor("Q"); !errors.Is(err, ErrInvalidAnchor) {
		t.Fatalf("expected ErrInvalidAnchor, got %v", err)
	}
}
