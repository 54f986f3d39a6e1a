package gota

import (
	"github.com/rs/zerolog"

	"github.com/evdnx/gota/config"
)

// Option configures a TechnicalAnalysis instance.
type Option func(*TechnicalAnalysis)

// WithLogger sets the logger used for per-call debug events.
func WithLogger(log zerolog.Logger) Option {
	return func(ta *TechnicalAnalysis) { ta.log = log }
}

// WithConfig replaces the default parameters applied to unset fields.
func WithConfig(cfg config.IndicatorConfig) Option {
	return func(ta *TechnicalAnalysis) { ta.cfg = cfg }
}

// WithMetrics records call counts and latencies.
func WithMetrics(m *Metrics) Option {
	return func(ta *TechnicalAnalysis) { ta.metrics = m }
}
