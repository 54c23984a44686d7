package service

import (
	"fmt"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// Default settings constants.
const (
	defaultPadding         = 20
	defaultPointSize       = 4
	defaultPointMaxMargin  = 4
	defaultTimeAxisWidth   = 2
	defaultLabelMargin     = 2
	defaultZoomDeltaFactor = 0.001
	defaultMinTimeRange    = time.Hour
	defaultResizeDebounce  = 100 * time.Millisecond
	defaultExactMatchColor = "#ffffff"
)

// Settings is the immutable plot configuration of a Controller.
type Settings struct {
	Padding         int           // plot padding on every side, also label area padding
	PointSize       int           // side of a drawn point in pixels
	PointMaxMargin  int           // largest gap tried between playcount rows
	TimeAxisWidth   int           // stroke width of the time axis
	LabelMargin     int           // minimum gap between two labels
	ZoomDeltaFactor float64       // wheel delta -> zoom factor multiplier
	MinTimeRange    time.Duration // smallest span a zoom may reach
	ResizeDebounce  time.Duration // quiet period before a resize redraws
	ExactMatchColor colorful.Color
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	exact, _ := colorful.Hex(defaultExactMatchColor)
	return Settings{
		Padding:         defaultPadding,
		PointSize:       defaultPointSize,
		PointMaxMargin:  defaultPointMaxMargin,
		TimeAxisWidth:   defaultTimeAxisWidth,
		LabelMargin:     defaultLabelMargin,
		ZoomDeltaFactor: defaultZoomDeltaFactor,
		MinTimeRange:    defaultMinTimeRange,
		ResizeDebounce:  defaultResizeDebounce,
		ExactMatchColor: exact,
	}
}

// Validate reports the first invalid field.
func (s Settings) Validate() error {
	switch {
	case s.Padding < 0:
		return fmt.Errorf("%w: padding must not be negative, got %d", ErrInvalidSettings, s.Padding)
	case s.PointSize <= 0:
		return fmt.Errorf("%w: point size must be positive, got %d", ErrInvalidSettings, s.PointSize)
	case s.PointMaxMargin < 0:
		return fmt.Errorf("%w: point max margin must not be negative, got %d", ErrInvalidSettings, s.PointMaxMargin)
	case s.TimeAxisWidth < 0:
		return fmt.Errorf("%w: time axis width must not be negative, got %d", ErrInvalidSettings, s.TimeAxisWidth)
	case s.LabelMargin < 0:
		return fmt.Errorf("%w: label margin must not be negative, got %d", ErrInvalidSettings, s.LabelMargin)
	case s.ZoomDeltaFactor <= 0:
		return fmt.Errorf("%w: zoom delta factor must be positive, got %g", ErrInvalidSettings, s.ZoomDeltaFactor)
	case s.MinTimeRange <= 0:
		return fmt.Errorf("%w: minimum time range must be positive, got %s", ErrInvalidSettings, s.MinTimeRange)
	case s.ResizeDebounce < 0:
		return fmt.Errorf("%w: resize debounce must not be negative, got %s", ErrInvalidSettings, s.ResizeDebounce)
	}
	return nil
}

// hoverTolerance is half a point, rounded up.
func (s Settings) hoverTolerance() int {
	return (s.PointSize + 1) / 2
}
