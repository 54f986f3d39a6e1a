package gota

import (
	"math/rand"
	"testing"
)

func nrandVals(n int) []float64 {
	r := rand.New(rand.NewSource(42))
	vals := make([]float64, n)
	for i := 0; i < n; i++ {
		vals[i] = 50 + r.Float64()*100
	}
	return vals
}

/*
   Whole-series benchmarks
   -----------------------
   Each indicator is run over a small (100), medium (1 000) and large
   (100 000) random series. The façade copies input and masks the lookback on
   every call, so the numbers include that overhead on top of go-talib.
*/

var benchSizes = []struct {
	name string
	n    int
}{
	{"Small", 100},
	{"Medium", 1000},
	{"Large", 100000},
}

func benchSeries(n int) (high, low, close, vol Series) {
	c := nrandVals(n)
	h := make([]float64, n)
	l := make([]float64, n)
	v := make([]float64, n)
	for i := range c {
		h[i] = c[i] + 1
		l[i] = c[i] - 1
		v[i] = 1000 + float64(i%17)
	}
	return NewSeries("high", h), NewSeries("low", l), NewSeries("close", c), NewSeries("volume", v)
}

func benchmarkIndicator(b *testing.B, fn func(ta *TechnicalAnalysis, high, low, close, vol Series) error) {
	ta, err := New()
	if err != nil {
		b.Fatalf("New: %v", err)
	}
	for _, size := range benchSizes {
		high, low, close, vol := benchSeries(size.n)
		b.Run(size.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if err := fn(ta, high, low, close, vol); err != nil {
					b.Fatalf("compute: %v", err)
				}
			}
		})
	}
}

func BenchmarkRSI(b *testing.B) {
	benchmarkIndicator(b, func(ta *TechnicalAnalysis, _, _, close, _ Series) error {
		_, err := ta.RSI(close, RSIParams{})
		return err
	})
}

func BenchmarkEMA(b *testing.B) {
	benchmarkIndicator(b, func(ta *TechnicalAnalysis, _, _, close, _ Series) error {
		_, err := ta.EMA(close, 20)
		return err
	})
}

func BenchmarkMACD(b *testing.B) {
	benchmarkIndicator(b, func(ta *TechnicalAnalysis, _, _, close, _ Series) error {
		_, err := ta.MACD(close, MACDParams{})
		return err
	})
}

func BenchmarkVWAP(b *testing.B) {
	benchmarkIndicator(b, func(ta *TechnicalAnalysis, high, low, close, vol Series) error {
		_, err := ta.VWAP(high, low, close, vol, VWAPParams{})
		return err
	})
}

func BenchmarkATR(b *testing.B) {
	benchmarkIndicator(b, func(ta *TechnicalAnalysis, high, low, close, _ Series) error {
		_, err := ta.ATR(high, low, close, ATRParams{})
		return err
	})
}

func BenchmarkCross(b *testing.B) {
	benchmarkIndicator(b, func(ta *TechnicalAnalysis, high, _, close, _ Series) error {
		_, err := ta.Cross(close, high, CrossParams{})
		return err
	})
}

func BenchmarkBBands(b *testing.B) {
	benchmarkIndicator(b, func(ta *TechnicalAnalysis, _, _, close, _ Series) error {
		_, err := ta.BBands(close, BBandsParams{})
		return err
	})
}
