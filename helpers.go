package gota

import "github.com/markcheno/go-talib"

type maType struct {
	typ talib.MaType
	// lookback returns how many leading values the average leaves undefined.
	lookback func(window int) int
}

var maTypes = map[string]maType{
	"SMA":   {talib.SMA, func(w int) int { return w - 1 }},
	"EMA":   {talib.EMA, func(w int) int { return w - 1 }},
	"WMA":   {talib.WMA, func(w int) int { return w - 1 }},
	"TRIMA": {talib.TRIMA, func(w int) int { return w - 1 }},
	"DEMA":  {talib.DEMA, func(w int) int { return 2 * (w - 1) }},
	"TEMA":  {talib.TEMA, func(w int) int { return 3 * (w - 1) }},
	"KAMA":  {talib.KAMA, func(w int) int { return w }},
	"T3":    {talib.T3MA, func(w int) int { return 6 * (w - 1) }},
}

// macdLines builds the MACD line from two go-talib EMAs and smooths only its
// defined tail into the signal line. Callers mask the leading rows.
func macdLines(close []float64, fast, slow, signal int) (macd, hist, sig []float64) {
	n := len(close)
	fastEMA := talib.Ema(close, fast)
	slowEMA := talib.Ema(close, slow)
	macd = make([]float64, n)
	for i := range macd {
		macd[i] = fastEMA[i] - slowEMA[i]
	}

	start := max(fast, slow) - 1
	sig = make([]float64, n)
	copy(sig[start:], talib.Ema(macd[start:], signal))
	hist = make([]float64, n)
	for i := start; i < n; i++ {
		hist[i] = macd[i] - sig[i]
	}
	return macd, hist, sig
}

// crossed flags x moving above y (or below when below is set) between
// consecutive positions. NaN on either side never compares true.
func crossed(x, y []float64, below bool) []bool {
	out := make([]bool, len(x))
	for i := 1; i < len(x); i++ {
		if below {
			out[i] = x[i-1] >= y[i-1] && x[i] < y[i]
		} else {
			out[i] = x[i-1] <= y[i-1] && x[i] > y[i]
		}
	}
	return out
}

// bandStats derives band width (percent of the middle band) and the position
// of close within the bands.
func bandStats(close, upper, middle, lower []float64) (width, percent []float64) {
	width = make([]float64, len(close))
	percent = make([]float64, len(close))
	for i := range close {
		span := upper[i] - lower[i]
		width[i] = 100 * span / middle[i]
		percent[i] = (close[i] - lower[i]) / span
	}
	return width, percent
}
