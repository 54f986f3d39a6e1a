package config

import (
	"fmt"
	"os"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// -----------------------------------------------------------------------------
// Exported constants (magic numbers made visible)
// -----------------------------------------------------------------------------
const (
	DefaultRSIWindow    = 14
	DefaultMACDFast     = 12
	DefaultMACDSlow     = 26
	DefaultMACDSignal   = 9
	DefaultATRWindow    = 14
	DefaultBBandsWindow = 20
	DefaultBBandsStd    = 2.0
)

var validate = validator.New()

// -----------------------------------------------------------------------------
// IndicatorConfig: default parameters applied when a call leaves them unset
// -----------------------------------------------------------------------------
type IndicatorConfig struct {
	RSIWindow  int `yaml:"rsi_window" default:"14" validate:"gte=1"`
	MACDFast   int `yaml:"macd_fast" default:"12" validate:"gte=1"`
	MACDSlow   int `yaml:"macd_slow" default:"26" validate:"gte=1"`
	MACDSignal int `yaml:"macd_signal" default:"9" validate:"gte=1"`
	ATRWindow  int `yaml:"atr_window" default:"14" validate:"gte=1"`

	BBandsWindow int     `yaml:"bbands_window" default:"20" validate:"gte=1"`
	BBandsStd    float64 `yaml:"bbands_std" default:"2.0" validate:"gt=0"`
	// BBandsMAType is the moving average under the middle band.
	BBandsMAType string `yaml:"bbands_ma_type" default:"SMA" validate:"oneof=SMA EMA WMA DEMA TEMA TRIMA KAMA T3"`

	// VWAPAnchor restarts the VWAP accumulation each day (D), week (W) or
	// month (M); N never restarts.
	VWAPAnchor string `yaml:"vwap_anchor" default:"D" validate:"oneof=N D W M"`

	Log LogConfig `yaml:"log"`
}

// LogConfig configures the zerolog logger built by the CLI.
type LogConfig struct {
	Level  string `yaml:"level" default:"info" validate:"oneof=trace debug info warn error fatal panic disabled"`
	Format string `yaml:"format" default:"console" validate:"oneof=json console"`
	Output string `yaml:"output" default:"stderr" validate:"required"`
}

// DefaultConfig returns the documented defaults for every indicator.
func DefaultConfig() IndicatorConfig {
	var c IndicatorConfig
	// defaults.Set only fails on malformed tags, which are fixed above.
	if err := defaults.Set(&c); err != nil {
		panic(fmt.Sprintf("config: bad default tags: %v", err))
	}
	return c
}

// Validate checks that the configuration values are sensible.
func (c IndicatorConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid indicator config: %w", err)
	}
	return nil
}

// Load reads a YAML file, fills unset fields with defaults and validates the
// result.
func Load(path string) (*IndicatorConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(b)
}

// Parse decodes YAML bytes the same way Load does.
func Parse(b []byte) (*IndicatorConfig, error) {
	var c IndicatorConfig
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides logging with environment
// variables. An empty path skips the file and starts from the defaults.
func LoadWithEnv(path string) (*IndicatorConfig, error) {
	var c *IndicatorConfig
	if path == "" {
		d := DefaultConfig()
		c = &d
	} else {
		var err error
		if c, err = Load(path); err != nil {
			return nil, err
		}
	}

	if v := os.Getenv("GOTA_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("GOTA_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv("GOTA_VWAP_ANCHOR"); v != "" {
		c.VWAPAnchor = v
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}
