// Package ohlcv reads bar data from CSV into aligned series.
package ohlcv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/evdnx/gota/indicator/core"
)

var ErrMissingColumn = errors.New("missing required column")

// Bars holds one column per OHLCV field, all sharing Index.
type Bars struct {
	Index  []time.Time
	Open   core.Series
	High   core.Series
	Low    core.Series
	Close  core.Series
	Volume core.Series
}

// Len returns the number of bars.
func (b *Bars) Len() int { return len(b.Index) }

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

var aliases = map[string]string{
	"time":      "time",
	"date":      "time",
	"datetime":  "time",
	"timestamp": "time",
	"open":      "open",
	"o":         "open",
	"high":      "high",
	"h":         "high",
	"low":       "low",
	"l":         "low",
	"close":     "close",
	"c":         "close",
	"adj close": "close",
	"volume":    "volume",
	"vol":       "volume",
	"v":         "volume",
}

// Load reads bars from a CSV file; "-" reads standard input.
func Load(path string) (*Bars, error) {
	if path == "-" {
		return Read(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bars: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses CSV with a header row. time, high, low, close and volume are
// required; open is optional. Prices are parsed as decimals so the text
// round-trips exactly before conversion.
func Read(r io.Reader) (*Bars, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int)
	for i, h := range header {
		if field, ok := aliases[strings.ToLower(strings.TrimSpace(h))]; ok {
			if _, dup := cols[field]; !dup {
				cols[field] = i
			}
		}
	}
	for _, req := range []string{"time", "high", "low", "close", "volume"} {
		if _, ok := cols[req]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, req)
		}
	}
	_, hasOpen := cols["open"]

	var (
		index                        []time.Time
		open, high, low, close, vols []decimal.Decimal
	)
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		ts, err := parseTime(rec[cols["time"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		index = append(index, ts)

		fields := []struct {
			name string
			dst  *[]decimal.Decimal
		}{
			{"high", &high}, {"low", &low}, {"close", &close}, {"volume", &vols},
		}
		if hasOpen {
			fields = append(fields, struct {
				name string
				dst  *[]decimal.Decimal
			}{"open", &open})
		}
		for _, f := range fields {
			d, err := decimal.NewFromString(strings.TrimSpace(rec[cols[f.name]]))
			if err != nil {
				return nil, fmt.Errorf("line %d: %s: %w", line, f.name, err)
			}
			*f.dst = append(*f.dst, d)
		}
	}

	bars := &Bars{Index: index}
	for _, c := range []struct {
		name string
		src  []decimal.Decimal
		dst  *core.Series
	}{
		{"high", high, &bars.High},
		{"low", low, &bars.Low},
		{"close", close, &bars.Close},
		{"volume", vols, &bars.Volume},
	} {
		s, err := core.SeriesFromDecimals(c.name, index, c.src)
		if err != nil {
			return nil, err
		}
		*c.dst = s
	}
	if hasOpen {
		s, err := core.SeriesFromDecimals("open", index, open)
		if err != nil {
			return nil, err
		}
		bars.Open = s
	}
	return bars, nil
}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		// Millisecond epochs are common in exchange exports.
		if secs > 1e11 {
			return time.UnixMilli(secs).UTC(), nil
		}
		return time.Unix(secs, 0).UTC(), nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised time %q", s)
}
