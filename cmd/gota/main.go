package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/evdnx/gota"
	"github.com/evdnx/gota/config"
	"github.com/evdnx/gota/internal/logger"
	"github.com/evdnx/gota/internal/ohlcv"
)

const defaultIndicators = "rsi,ema,macd,vwap,atr,bbands,cross"

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "gota: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	input      string
	indicators []string
	format     string
	configPath string
	emaWindow  int
	crossFast  int
	crossSlow  int
	metrics    bool
}

func parseFlags(args []string) (options, error) {
	var (
		o          options
		indicators string
	)
	fs := flag.NewFlagSet("gota", flag.ContinueOnError)
	fs.StringVar(&o.input, "input", "-", "OHLCV CSV file (time,open,high,low,close,volume); - reads stdin")
	fs.StringVar(&indicators, "indicators", defaultIndicators, "comma separated indicators to compute")
	fs.StringVar(&o.format, "format", "csv", "output format: csv, json or plot-csv")
	fs.StringVar(&o.configPath, "config", "", "YAML config with indicator defaults")
	fs.IntVar(&o.emaWindow, "ema-window", 20, "EMA window")
	fs.IntVar(&o.crossFast, "cross-fast", 12, "fast EMA window for cross")
	fs.IntVar(&o.crossSlow, "cross-slow", 26, "slow EMA window for cross")
	fs.BoolVar(&o.metrics, "metrics", false, "log per-indicator call counts on exit")
	if err := fs.Parse(args); err != nil {
		return o, err
	}

	for _, name := range strings.Split(indicators, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		if _, ok := computers[name]; !ok {
			return o, fmt.Errorf("unknown indicator %q", name)
		}
		o.indicators = append(o.indicators, name)
	}
	if len(o.indicators) == 0 {
		return o, fmt.Errorf("no indicators selected")
	}
	switch o.format {
	case "csv", "json", "plot-csv":
	default:
		return o, fmt.Errorf("unknown format %q", o.format)
	}
	return o, nil
}

func run(args []string, stdout io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	cfg, err := config.LoadWithEnv(opts.configPath)
	if err != nil {
		return err
	}
	log, closer, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return err
	}
	defer closer.Close()

	reg := prometheus.NewRegistry()
	metrics, err := gota.NewMetrics(reg)
	if err != nil {
		return err
	}
	ta, err := gota.New(gota.WithConfig(*cfg), gota.WithLogger(log), gota.WithMetrics(metrics))
	if err != nil {
		return err
	}

	bars, err := ohlcv.Load(opts.input)
	if err != nil {
		return err
	}
	log.Info().Str("input", opts.input).Int("bars", bars.Len()).Strs("indicators", opts.indicators).Msg("loaded bars")

	frame, err := compute(ta, bars, opts)
	if err != nil {
		return err
	}
	if opts.metrics {
		logMetrics(log, reg)
	}
	return write(stdout, frame, opts.format)
}

// compute runs the selected indicators and joins their columns after close.
func compute(ta *gota.TechnicalAnalysis, bars *ohlcv.Bars, opts options) (*gota.Frame, error) {
	frame, err := gota.NewFrame(bars.Index, nil)
	if err != nil {
		return nil, err
	}
	if err := frame.Join(bars.Close); err != nil {
		return nil, err
	}
	for _, name := range opts.indicators {
		cols, err := computers[name](ta, bars, opts)
		if err != nil {
			return nil, err
		}
		if err := frame.Join(cols...); err != nil {
			return nil, err
		}
	}
	return frame, nil
}

type computer func(*gota.TechnicalAnalysis, *ohlcv.Bars, options) ([]gota.Series, error)

var computers = map[string]computer{
	"rsi": func(ta *gota.TechnicalAnalysis, b *ohlcv.Bars, _ options) ([]gota.Series, error) {
		return one(ta.RSI(b.Close, gota.RSIParams{}))
	},
	"ema": func(ta *gota.TechnicalAnalysis, b *ohlcv.Bars, o options) ([]gota.Series, error) {
		return one(ta.EMA(b.Close, o.emaWindow))
	},
	"macd": func(ta *gota.TechnicalAnalysis, b *ohlcv.Bars, _ options) ([]gota.Series, error) {
		return columns(ta.MACD(b.Close, gota.MACDParams{}))
	},
	"vwap": func(ta *gota.TechnicalAnalysis, b *ohlcv.Bars, _ options) ([]gota.Series, error) {
		return one(ta.VWAP(b.High, b.Low, b.Close, b.Volume, gota.VWAPParams{}))
	},
	"atr": func(ta *gota.TechnicalAnalysis, b *ohlcv.Bars, _ options) ([]gota.Series, error) {
		return one(ta.ATR(b.High, b.Low, b.Close, gota.ATRParams{}))
	},
	"bbands": func(ta *gota.TechnicalAnalysis, b *ohlcv.Bars, _ options) ([]gota.Series, error) {
		return columns(ta.BBands(b.Close, gota.BBandsParams{}))
	},
	"cross": func(ta *gota.TechnicalAnalysis, b *ohlcv.Bars, o options) ([]gota.Series, error) {
		fast, err := ta.EMA(b.Close, o.crossFast)
		if err != nil {
			return nil, err
		}
		slow, err := ta.EMA(b.Close, o.crossSlow)
		if err != nil {
			return nil, err
		}
		up, err := ta.Cross(fast, slow, gota.CrossParams{})
		if err != nil {
			return nil, err
		}
		down, err := ta.Cross(fast, slow, gota.CrossParams{Below: true})
		if err != nil {
			return nil, err
		}
		return []gota.Series{up.Float(), down.Float()}, nil
	},
}

func one(s gota.Series, err error) ([]gota.Series, error) {
	if err != nil {
		return nil, err
	}
	return []gota.Series{s}, nil
}

func columns(f *gota.Frame, err error) ([]gota.Series, error) {
	if err != nil {
		return nil, err
	}
	out := make([]gota.Series, 0, len(f.Columns()))
	for i := range f.Columns() {
		out = append(out, f.ColumnAt(i))
	}
	return out, nil
}

func write(w io.Writer, frame *gota.Frame, format string) error {
	var (
		out string
		err error
	)
	switch format {
	case "json":
		out, err = gota.FormatPlotDataJSON(frame.PlotData(0, 60))
	case "plot-csv":
		out, err = gota.FormatPlotDataCSV(frame.PlotData(0, 60))
	default:
		out = frame.CSV()
	}
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

func logMetrics(log zerolog.Logger, reg *prometheus.Registry) {
	families, err := reg.Gather()
	if err != nil {
		log.Warn().Err(err).Msg("gather metrics")
		return
	}
	for _, mf := range families {
		if mf.GetName() != "gota_indicator_calls_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			ev := log.Info()
			for _, l := range m.GetLabel() {
				ev = ev.Str(l.GetName(), l.GetValue())
			}
			ev.Float64("calls", m.GetCounter().GetValue()).Msg("indicator calls")
		}
	}
}
