package volume

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/evdnx/gota/indicator/core"
)

// Anchor selects the period after which the VWAP accumulation restarts.
type Anchor string

const (
	AnchorNone  Anchor = "N" // accumulate over the whole series
	AnchorDay   Anchor = "D"
	AnchorWeek  Anchor = "W"
	AnchorMonth Anchor = "M"
)

var ErrInvalidAnchor = errors.New("invalid VWAP anchor")

// ParseAnchor maps a one-letter anchor code to an Anchor.
func ParseAnchor(s string) (Anchor, error) {
	switch a := Anchor(s); a {
	case AnchorNone, AnchorDay, AnchorWeek, AnchorMonth:
		return a, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidAnchor, s)
}

// period returns a key that changes exactly when t enters a new anchor period.
func (a Anchor) period(t time.Time) int {
	switch a {
	case AnchorDay:
		return t.Year()*1000 + t.YearDay()
	case AnchorWeek:
		y, w := t.ISOWeek()
		return y*100 + w
	case AnchorMonth:
		return t.Year()*100 + int(t.Month())
	default:
		return 0
	}
}

// VWAP calculates the Volume Weighted Average Price using cumulative sums.
type VWAP struct {
	cumPV  float64 // cumulative price*volume
	cumVol float64 // cumulative volume
}

// NewVWAP constructs a VWAP calculator with an empty state.
func NewVWAP() *VWAP {
	return &VWAP{}
}

// Add ingests a new OHLCV candle and returns the VWAP after it. Typical price
// is used for VWAP. A candle whose typical price or volume is NaN is left out
// of the sums and yields NaN, as does any candle before volume has traded.
func (v *VWAP) Add(high, low, close, volume float64) float64 {
	typicalPrice := (high + low + close) / 3
	if math.IsNaN(typicalPrice) || math.IsNaN(volume) {
		return math.NaN()
	}
	v.cumPV += typicalPrice * volume
	v.cumVol += volume
	if v.cumVol == 0 {
		return math.NaN()
	}
	return v.cumPV / v.cumVol
}

// Reset clears all accumulated state.
func (v *VWAP) Reset() {
	v.cumPV = 0
	v.cumVol = 0
}

// Compute runs a fresh calculator over aligned high/low/close/volume slices and
// returns one value per bar. With a non-nil index the accumulation restarts
// whenever a bar falls into a new anchor period; without one the anchor is
// ignored. Bars are not validated: a NaN bar yields NaN and is skipped, and
// bars before any volume has traded are NaN.
func Compute(high, low, close, volume []float64, index []time.Time, anchor Anchor) ([]float64, error) {
	n := len(close)
	if len(high) != n || len(low) != n || len(volume) != n {
		return nil, fmt.Errorf("%w: high %d, low %d, close %d, volume %d",
			core.ErrLengthMismatch, len(high), len(low), n, len(volume))
	}
	if index != nil && len(index) != n {
		return nil, fmt.Errorf("%w: index %d, bars %d", core.ErrLengthMismatch, len(index), n)
	}

	v := NewVWAP()
	out := make([]float64, n)
	prevPeriod := 0
	for i := 0; i < n; i++ {
		if index != nil && anchor != AnchorNone {
			p := anchor.period(index[i])
			if i > 0 && p != prevPeriod {
				v.Reset()
			}
			prevPeriod = p
		}
		out[i] = v.Add(high[i], low[i], close[i], volume[i])
	}
	return out, nil
}
