package gota

// Zero-valued fields fall back to the TechnicalAnalysis config, whose own
// defaults are RSI 14, MACD 12/26/9, ATR 14, Bollinger 20 / 2.0 / SMA and a
// daily VWAP anchor.

// RSIParams configures RSI.
type RSIParams struct {
	Window int
}

// MACDParams configures MACD.
type MACDParams struct {
	Fast   int
	Slow   int
	Signal int
}

// VWAPParams configures VWAP.
type VWAPParams struct {
	Anchor Anchor
}

// ATRParams configures ATR.
type ATRParams struct {
	Window int
}

// CrossParams configures Cross. By default a cross is x moving above y; set
// Below to detect x moving below y instead.
type CrossParams struct {
	Below bool
}

// BBandsParams configures Bollinger Bands. MAType names the moving average
// under the middle band (SMA, EMA, WMA, DEMA, TEMA, TRIMA, KAMA, T3).
type BBandsParams struct {
	Window int
	Std    float64
	MAType string
}

func orDefault[T ~int | ~float64 | ~string](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
