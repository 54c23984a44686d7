// Package config defines the explorer configuration and how it is loaded.
//
// Conventions:
// - New(ctx) returns the defaults; Load(ctx) layers a file and env vars on top.
// - Errors are wrapped with this package's sentinels for errors.Is.
package config

import (
	"context"
	"fmt"
	"time"
	_ "time/tzdata" // time_zone must resolve without system zoneinfo

	"github.com/lucasb-eyer/go-colorful"

	"github.com/okian/timeline/internal/domain/palette"
)

// Factor multiplies the HSL saturation and lightness of a colour.
type Factor struct {
	Saturation float64 `koanf:"saturation"`
	Lightness  float64 `koanf:"lightness"`
}

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFile receives logs while the terminal explorer owns the screen.
	LogFile string `koanf:"log_file"`

	// LogJSON switches log output to JSON lines.
	LogJSON bool `koanf:"log_json"`

	// ScrobblesPath is a scrobble JSON file or a directory of YYYY.json files.
	ScrobblesPath string `koanf:"scrobbles_path"`

	// GenresPath is the genre YAML file. Empty disables genres.
	GenresPath string `koanf:"genres_path"`

	// DataYear picks the year file when ScrobblesPath is a directory.
	// Empty picks the latest year.
	DataYear string `koanf:"data_year"`

	// TimeZone is the IANA zone scrobble dates are recorded in.
	TimeZone string `koanf:"time_zone"`

	// Plot geometry in pixels (terminal cells for the explorer).
	PlotPadding    int `koanf:"plot_padding"`
	PointSize      int `koanf:"point_size"`
	PointMaxMargin int `koanf:"point_max_margin"`
	TimeAxisWidth  int `koanf:"time_axis_width"`
	LabelMargin    int `koanf:"label_margin"`
	LegendHeight   int `koanf:"legend_height"`

	// ZoomDeltaFactor turns a wheel delta into a zoom factor.
	ZoomDeltaFactor float64 `koanf:"zoom_delta_factor"`

	// MinTimeRangeMS is the smallest span a zoom may reach.
	MinTimeRangeMS int64 `koanf:"min_time_range_ms"`

	// ResizeDebounceMS is the quiet period before a resize redraws.
	ResizeDebounceMS int `koanf:"resize_debounce_ms"`

	// MetricsAddr serves /metrics and /healthz when set, e.g. ":9090".
	MetricsAddr string `koanf:"metrics_addr"`

	// SVG export canvas size.
	SVGWidth  int `koanf:"svg_width"`
	SVGHeight int `koanf:"svg_height"`

	// GenreGroups maps a genre group to its [from, to] hex colour range.
	GenreGroups map[string][]string `koanf:"genre_groups"`

	// UnknownGenreColors is the [from, to] range for unmapped groups.
	UnknownGenreColors []string `koanf:"unknown_genre_colors"`

	// ColorFactors overrides HSL factors per variant: other, genre, artist, artistLabel.
	ColorFactors map[string]Factor `koanf:"color_factors"`

	ExactMatchColor string `koanf:"exact_match_color"`
	BackgroundColor string `koanf:"background_color"`
	TimeAxisColor   string `koanf:"time_axis_color"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:         "info",
		LogFile:          "timeline.log",
		ScrobblesPath:    "data/scrobbles",
		GenresPath:       "data/genres.yaml",
		TimeZone:         "UTC",
		PlotPadding:      2,
		PointSize:        1,
		PointMaxMargin:   1,
		TimeAxisWidth:    1,
		LabelMargin:      0,
		LegendHeight:     3,
		ZoomDeltaFactor:  0.1,
		MinTimeRangeMS:   int64(time.Hour / time.Millisecond),
		ResizeDebounceMS: 100,
		SVGWidth:         1600,
		SVGHeight:        900,
		GenreGroups: map[string][]string{
			"rock":       {"#4a1c1c", "#ff6b5b"},
			"metal":      {"#2b2b2b", "#c9c9c9"},
			"electronic": {"#0f2a4a", "#4fc3f7"},
			"pop":        {"#4a1c3f", "#ff8ad8"},
			"hip hop":    {"#3d3510", "#ffd54f"},
			"jazz":       {"#143d22", "#81c784"},
			"folk":       {"#3d2a14", "#d7a86e"},
			"classical":  {"#2a1f4a", "#b39ddb"},
		},
		UnknownGenreColors: []string{"#333333", "#cccccc"},
		ExactMatchColor:    "#ffffff",
		BackgroundColor:    "#101010",
		TimeAxisColor:      "#808080",
	}
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	switch {
	case c.ScrobblesPath == "":
		return fmt.Errorf("%w: scrobbles_path must not be empty", ErrInvalidConfig)
	case c.PlotPadding < 0:
		return fmt.Errorf("%w: plot_padding must not be negative", ErrInvalidConfig)
	case c.PointSize <= 0:
		return fmt.Errorf("%w: point_size must be positive", ErrInvalidConfig)
	case c.PointMaxMargin < 0:
		return fmt.Errorf("%w: point_max_margin must not be negative", ErrInvalidConfig)
	case c.TimeAxisWidth < 0:
		return fmt.Errorf("%w: time_axis_width must not be negative", ErrInvalidConfig)
	case c.LabelMargin < 0:
		return fmt.Errorf("%w: label_margin must not be negative", ErrInvalidConfig)
	case c.LegendHeight < 0:
		return fmt.Errorf("%w: legend_height must not be negative", ErrInvalidConfig)
	case c.ZoomDeltaFactor <= 0:
		return fmt.Errorf("%w: zoom_delta_factor must be positive", ErrInvalidConfig)
	case c.MinTimeRangeMS <= 0:
		return fmt.Errorf("%w: min_time_range_ms must be positive", ErrInvalidConfig)
	case c.ResizeDebounceMS < 0:
		return fmt.Errorf("%w: resize_debounce_ms must not be negative", ErrInvalidConfig)
	case c.SVGWidth <= 0 || c.SVGHeight <= 0:
		return fmt.Errorf("%w: svg_width and svg_height must be positive", ErrInvalidConfig)
	}

	if _, err := c.Location(); err != nil {
		return err
	}
	for name, hex := range map[string]string{
		"exact_match_color": c.ExactMatchColor,
		"background_color":  c.BackgroundColor,
		"time_axis_color":   c.TimeAxisColor,
	} {
		if _, err := colorful.Hex(hex); err != nil {
			return fmt.Errorf("%w: %s %q is not a hex colour", ErrInvalidConfig, name, hex)
		}
	}
	if _, err := c.PaletteOptions(); err != nil {
		return err
	}
	return nil
}

// Location resolves TimeZone.
func (c *Config) Location() (*time.Location, error) {
	if c.TimeZone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("%w: time_zone: %w", ErrInvalidConfig, err)
	}
	return loc, nil
}

// MinTimeRange returns MinTimeRangeMS as a duration.
func (c *Config) MinTimeRange() time.Duration {
	return time.Duration(c.MinTimeRangeMS) * time.Millisecond
}

// ResizeDebounce returns ResizeDebounceMS as a duration.
func (c *Config) ResizeDebounce() time.Duration {
	return time.Duration(c.ResizeDebounceMS) * time.Millisecond
}

// PaletteOptions converts the colour settings into palette options. Colour
// ranges must have exactly two entries.
func (c *Config) PaletteOptions() ([]palette.Option, error) {
	groups := make(map[string][2]string, len(c.GenreGroups))
	for name, hex := range c.GenreGroups {
		if len(hex) != 2 {
			return nil, fmt.Errorf("%w: genre_groups.%s needs two colours, got %d", ErrInvalidConfig, name, len(hex))
		}
		groups[name] = [2]string{hex[0], hex[1]}
	}

	opts := []palette.Option{palette.WithGroups(groups)}
	if len(c.UnknownGenreColors) > 0 {
		if len(c.UnknownGenreColors) != 2 {
			return nil, fmt.Errorf("%w: unknown_genre_colors needs two colours", ErrInvalidConfig)
		}
		opts = append(opts, palette.WithUnknownRange(c.UnknownGenreColors[0], c.UnknownGenreColors[1]))
	}

	for name, f := range c.ColorFactors {
		v := palette.Variant(name)
		switch v {
		case palette.VariantOther, palette.VariantGenre, palette.VariantArtist, palette.VariantLabel:
		default:
			return nil, fmt.Errorf("%w: color_factors: unknown variant %q", ErrInvalidConfig, name)
		}
		if f.Saturation <= 0 || f.Lightness <= 0 {
			return nil, fmt.Errorf("%w: color_factors.%s must be positive", ErrInvalidConfig, name)
		}
		opts = append(opts, palette.WithFactors(v, palette.Factors{Saturation: f.Saturation, Lightness: f.Lightness}))
	}

	// Build once so bad hex colours surface at load time.
	if _, err := palette.New(opts...); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return opts, nil
}
