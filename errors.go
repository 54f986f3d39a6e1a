package gota

import (
	"errors"

	"github.com/evdnx/gota/indicator/core"
	"github.com/evdnx/gota/indicator/volume"
)

var (
	// ErrInsufficientData is returned when a series is too short to produce a
	// single defined value for the requested window.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrMissingWindow is returned when a required window is left at zero.
	ErrMissingWindow = errors.New("window is required")
	// ErrComputation wraps a failure raised inside the indicator library.
	ErrComputation = errors.New("indicator computation failed")
	// ErrUnknownMAType is returned for a moving-average name the library lacks.
	ErrUnknownMAType = errors.New("unknown moving average type")

	ErrLengthMismatch = core.ErrLengthMismatch
	ErrColumnCount    = core.ErrColumnCount
	ErrInvalidAnchor  = volume.ErrInvalidAnchor
)
