package gota

import (
	"fmt"
	"strings"
	"time"

	"github.com/markcheno/go-talib"
	"github.com/rs/zerolog"

	"github.com/evdnx/gota/config"
	"github.com/evdnx/gota/indicator/core"
	"github.com/evdnx/gota/indicator/volume"
)

// TechnicalAnalysis computes common indicators over price and volume series.
// Every method is an independent pure function of its arguments; the receiver
// only carries the defaults for unset parameters, a logger and optional
// metrics, none of which change after New. It is safe for concurrent use.
type TechnicalAnalysis struct {
	cfg     config.IndicatorConfig
	log     zerolog.Logger
	metrics *Metrics
}

// New creates a TechnicalAnalysis with the documented defaults.
func New(opts ...Option) (*TechnicalAnalysis, error) {
	ta := &TechnicalAnalysis{
		cfg: config.DefaultConfig(),
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(ta)
	}
	if err := ta.cfg.Validate(); err != nil {
		return nil, err
	}
	return ta, nil
}

// Config returns the defaults applied to unset parameters.
func (ta *TechnicalAnalysis) Config() config.IndicatorConfig { return ta.cfg }

// RSI computes the Relative Strength Index of close (Wilder smoothing). The
// first Window values are NaN; the rest lie in [0, 100].
func (ta *TechnicalAnalysis) RSI(close Series, p RSIParams) (Series, error) {
	window := orDefault(p.Window, ta.cfg.RSIWindow)
	name := fmt.Sprintf("RSI_%d", window)

	var out Series
	err := ta.run(name, close.Len(), func() error {
		if err := needLen(close, window); err != nil {
			return err
		}
		values := talib.Rsi(close.Values, window)
		out = close.Derive(name, core.MaskLeading(values, window))
		return nil
	})
	return out, err
}

// EMA computes the Exponential Moving Average of values, seeded with the
// simple average of the first window samples. The first window-1 values are
// NaN.
func (ta *TechnicalAnalysis) EMA(values Series, window int) (Series, error) {
	name := fmt.Sprintf("EMA_%d", window)

	var out Series
	err := ta.run(name, values.Len(), func() error {
		if window == 0 {
			return ErrMissingWindow
		}
		if err := needLen(values, window-1); err != nil {
			return err
		}
		ema := talib.Ema(values.Values, window)
		out = values.Derive(name, core.MaskLeading(ema, window-1))
		return nil
	})
	return out, err
}

// MACD computes Moving Average Convergence/Divergence. The result has exactly
// three columns, in order: MACD, Histogram, Signal. The MACD line is
// EMA(fast)-EMA(slow) and is defined once the slower average is; Signal is the
// EMA of the defined MACD line, so it and Histogram start signal-1 rows later.
func (ta *TechnicalAnalysis) MACD(close Series, p MACDParams) (*Frame, error) {
	fast := orDefault(p.Fast, ta.cfg.MACDFast)
	slow := orDefault(p.Slow, ta.cfg.MACDSlow)
	signal := orDefault(p.Signal, ta.cfg.MACDSignal)
	suffix := fmt.Sprintf("_%d_%d_%d", fast, slow, signal)

	var out *Frame
	err := ta.run("MACD"+suffix, close.Len(), func() error {
		lineLookback := max(fast, slow) - 1
		lookback := lineLookback + signal - 1
		if err := needLen(close, lookback); err != nil {
			return err
		}
		macd, hist, sig := macdLines(close.Values, fast, slow, signal)
		frame, err := core.NewFrame(close.Index,
			[]string{"MACD" + suffix, "MACDh" + suffix, "MACDs" + suffix},
			core.MaskLeading(macd, lineLookback),
			core.MaskLeading(hist, lookback),
			core.MaskLeading(sig, lookback),
		)
		if err != nil {
			return err
		}
		if err := frame.Rename("MACD", "Histogram", "Signal"); err != nil {
			return err
		}
		out = frame
		return nil
	})
	return out, err
}

// VWAP computes the Volume Weighted Average Price from the typical price
// (high+low+close)/3. When close carries a time index the accumulation
// restarts at each anchor period; positional series accumulate throughout.
func (ta *TechnicalAnalysis) VWAP(high, low, close, vol Series, p VWAPParams) (Series, error) {
	anchorCode := orDefault(p.Anchor, Anchor(ta.cfg.VWAPAnchor))
	name := "VWAP_" + string(anchorCode)

	var out Series
	err := ta.run(name, close.Len(), func() error {
		anchor, err := volume.ParseAnchor(string(anchorCode))
		if err != nil {
			return err
		}
		if err := sameLen(high, low, close, vol); err != nil {
			return err
		}
		values, err := volume.Compute(high.Values, low.Values, close.Values, vol.Values, close.Index, anchor)
		if err != nil {
			return err
		}
		out = close.Derive(name, values)
		return nil
	})
	return out, err
}

// ATR computes the Average True Range with Wilder smoothing. The first Window
// values are NaN.
func (ta *TechnicalAnalysis) ATR(high, low, close Series, p ATRParams) (Series, error) {
	window := orDefault(p.Window, ta.cfg.ATRWindow)
	name := fmt.Sprintf("ATRr_%d", window)

	var out Series
	err := ta.run(name, close.Len(), func() error {
		if err := sameLen(high, low, close); err != nil {
			return err
		}
		if err := needLen(close, window); err != nil {
			return err
		}
		atr := talib.Atr(high.Values, low.Values, close.Values, window)
		out = close.Derive(name, core.MaskLeading(atr, window))
		return nil
	})
	return out, err
}

// Cross flags the positions where x crosses y. A cross above at i means
// x[i-1] <= y[i-1] and x[i] > y[i]; Below mirrors it. Position 0 and any
// comparison involving NaN are false.
func (ta *TechnicalAnalysis) Cross(x, y Series, p CrossParams) (BoolSeries, error) {
	dir := "XA"
	if p.Below {
		dir = "XB"
	}
	name := strings.Join([]string{nameOr(x.Name, "x"), dir, nameOr(y.Name, "y")}, "_")

	var out BoolSeries
	err := ta.run("CROSS", x.Len(), func() error {
		if err := sameLen(x, y); err != nil {
			return err
		}
		out = BoolSeries{Name: name, Index: x.Index, Values: crossed(x.Values, y.Values, p.Below)}
		return nil
	})
	return out, err
}

// BBands computes Bollinger Bands. The result has exactly five columns, in
// order: Lower_Band, Middle_Band, Upper_Band, Band_Width and Bollinger_Range.
// Band_Width is 100*(upper-lower)/middle and Bollinger_Range is the position
// of close inside the bands, (close-lower)/(upper-lower).
func (ta *TechnicalAnalysis) BBands(close Series, p BBandsParams) (*Frame, error) {
	window := orDefault(p.Window, ta.cfg.BBandsWindow)
	std := orDefault(p.Std, ta.cfg.BBandsStd)
	maName := strings.ToUpper(orDefault(p.MAType, ta.cfg.BBandsMAType))
	suffix := fmt.Sprintf("_%d_%.1f", window, std)

	var out *Frame
	err := ta.run("BBANDS"+suffix, close.Len(), func() error {
		ma, ok := maTypes[maName]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownMAType, maName)
		}
		lookback := max(window-1, ma.lookback(window))
		if err := needLen(close, lookback); err != nil {
			return err
		}
		upper, middle, lower := talib.BBands(close.Values, window, std, std, ma.typ)
		width, percent := bandStats(close.Values, upper, middle, lower)
		frame, err := core.NewFrame(close.Index,
			[]string{"BBL" + suffix, "BBM" + suffix, "BBU" + suffix, "BBB" + suffix, "BBP" + suffix},
			core.MaskLeading(lower, lookback),
			core.MaskLeading(middle, lookback),
			core.MaskLeading(upper, lookback),
			core.MaskLeading(width, lookback),
			core.MaskLeading(percent, lookback),
		)
		if err != nil {
			return err
		}
		if err := frame.Rename("Lower_Band", "Middle_Band", "Upper_Band", "Band_Width", "Bollinger_Range"); err != nil {
			return err
		}
		out = frame
		return nil
	})
	return out, err
}

// run executes one delegated computation. A panic inside the indicator library
// is returned as ErrComputation; nothing is retried.
func (ta *TechnicalAnalysis) run(name string, n int, fn func() error) (err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrComputation, r)
		}
		if err != nil {
			err = fmt.Errorf("%s: %w", name, err)
		}
		elapsed := time.Since(start)
		ta.metrics.observe(metricName(name), elapsed, err)
		if err != nil {
			ta.log.Warn().Err(err).Str("indicator", name).Int("len", n).Msg("indicator failed")
			return
		}
		ta.log.Debug().Str("indicator", name).Int("len", n).Dur("duration", elapsed).Msg("indicator computed")
	}()
	return fn()
}

// metricName strips the parameter suffix so label cardinality stays bounded.
func metricName(name string) string {
	if i := strings.IndexByte(name, '_'); i > 0 {
		return name[:i]
	}
	return name
}

// sameLen checks that every series has the length of the first.
func sameLen(series ...Series) error {
	for _, s := range series[1:] {
		if s.Len() != series[0].Len() {
			lens := make([]string, len(series))
			for i, s := range series {
				lens[i] = fmt.Sprintf("%s=%d", nameOr(s.Name, "?"), s.Len())
			}
			return fmt.Errorf("%w: %s", ErrLengthMismatch, strings.Join(lens, ", "))
		}
	}
	return nil
}

// needLen checks that s yields at least one value after lookback.
func needLen(s Series, lookback int) error {
	if s.Len() <= lookback {
		return fmt.Errorf("%w: need more than %d values, have %d", ErrInsufficientData, lookback, s.Len())
	}
	return nil
}

func nameOr(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}
