// Package dataset loads scrobble files, maps artists to genres and enriches
// every event with its colours.
package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/okian/timeline/internal/domain/model"
	"github.com/okian/timeline/internal/domain/palette"
	"github.com/okian/timeline/internal/domain/summary"
	"github.com/okian/timeline/pkg/logger"
	"github.com/okian/timeline/pkg/metrics"
)

var yearFile = regexp.MustCompile(`^(\d{4})\.json$`) //nolint:gochecknoglobals // compiled once

// Source names the files of one dataset.
type Source struct {
	Scrobbles string // JSON array of compressed scrobbles
	Genres    string // YAML genre file, optional
	Year      string // set when Scrobbles was picked from a year directory
}

// Dataset is everything the explorer needs about one scrobble list.
// Events are sorted by timestamp and their Index matches their position.
type Dataset struct {
	Source   Source
	Events   []*model.Event
	Summary  *summary.Summary
	Palette  *palette.Palette
	Genres   []summary.GenreStat
	Location *time.Location
}

// First returns the earliest event.
func (d *Dataset) First() *model.Event { return d.Events[0] }

// Last returns the latest event.
func (d *Dataset) Last() *model.Event { return d.Events[len(d.Events)-1] }

// Loader reads and enriches datasets.
type Loader struct {
	cache       *Cache
	location    *time.Location
	logger      logger.Logger
	paletteOpts []palette.Option
}

// NewLoader creates a Loader with configuration options.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		location: time.UTC,
		logger:   logger.Get().Named("dataset"), // will be updated by options
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Load reads src and returns an enriched Dataset.
func (l *Loader) Load(ctx context.Context, src Source) (*Dataset, error) {
	start := time.Now()

	raw, cached, err := l.readScrobbles(src.Scrobbles)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadDataset, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDataset, src.Scrobbles)
	}

	var genres genreFile
	if src.Genres != "" {
		if genres, err = l.readGenres(src.Genres); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadDataset, err)
		}
	}

	events, err := l.buildEvents(raw, genres.byArtist())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadDataset, err)
	}

	sum := summary.New(events)
	pal, err := palette.New(l.paletteOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadDataset, err)
	}

	if unknown := pal.UnknownGroups(events); len(unknown) > 0 {
		metrics.RecordUnknownGenreGroups(len(unknown))
		for _, group := range unknown {
			l.logger.Warn(ctx, "genre group not found in config, using unknown colors", logger.String("group", group))
		}
	}

	stats, unknownGenres := summary.GenreStats(events, pal.HasGroup)
	for _, genre := range unknownGenres {
		l.logger.Warn(ctx, "genre not found in config", logger.String("genre", genre))
	}

	durationMs := float64(time.Since(start).Microseconds()) / 1000
	metrics.RecordDatasetLoad(durationMs, len(events))
	l.logger.Info(ctx, "dataset loaded",
		logger.String("scrobbles", src.Scrobbles),
		logger.Int("events", len(events)),
		logger.Int("genres", len(stats)),
		logger.Bool("cached", cached),
		logger.Float64("duration_ms", durationMs),
	)

	return &Dataset{
		Source:   src,
		Events:   events,
		Summary:  sum,
		Palette:  pal,
		Genres:   stats,
		Location: l.location,
	}, nil
}

// readScrobbles reports whether the entries came from the cache.
func (l *Loader) readScrobbles(path string) ([]rawScrobble, bool, error) {
	if cached, ok := l.cache.getScrobbles(path); ok {
		return cached, true, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("read scrobbles: %w", err)
	}
	var raw []rawScrobble
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, false, fmt.Errorf("decode scrobbles %s: %w", path, err)
	}

	l.cache.putScrobbles(path, raw)
	return raw, false, nil
}

func (l *Loader) readGenres(path string) (genreFile, error) {
	if cached, ok := l.cache.getGenres(path); ok {
		return cached, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read genres: %w", err)
	}
	var f genreFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("decode genres %s: %w", path, err)
	}

	l.cache.putGenres(path, f)
	return f, nil
}

// buildEvents converts raw entries, sorts them chronologically and assigns
// each its position as Index.
func (l *Loader) buildEvents(raw []rawScrobble, genres map[string]artistGenre) ([]*model.Event, error) {
	events := make([]*model.Event, 0, len(raw))
	for _, r := range raw {
		ts, err := ParseDateTime(r.Date, l.location)
		if err != nil {
			return nil, err
		}

		e := &model.Event{
			Timestamp: ts,
			Date:      r.Date,
			Artist:    model.Artist{Name: r.ArtistName, Playcount: r.ArtistPlaycount},
			Album:     model.Album{Name: r.AlbumName, Playcount: r.AlbumPlaycount},
			Track:     model.Track{Name: r.TrackName, Playcount: r.TrackPlaycount},
		}
		if g, ok := genres[r.ArtistName]; ok {
			e.Artist.Genre = g.genre
			e.Artist.GenreGroup = g.group
		}
		events = append(events, e)
	}

	sort.SliceStable(events, func(i, j int) bool { return events[i].Timestamp < events[j].Timestamp })
	for i, e := range events {
		e.Index = i
	}

	return events, nil
}

// Years lists the years available in dir as "YYYY.json" files, ascending.
func Years(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list years: %w", err)
	}

	var years []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if m := yearFile.FindStringSubmatch(entry.Name()); m != nil {
			years = append(years, m[1])
		}
	}
	sort.Strings(years)
	return years, nil
}

// ResolveSource turns the configured paths into a Source. When scrobbles is a
// directory, year picks the file inside it; an empty year picks the latest.
// The available years are returned for navigation.
func ResolveSource(scrobbles, genres, year string) (Source, []string, error) {
	info, err := os.Stat(scrobbles)
	if err != nil {
		return Source{}, nil, fmt.Errorf("%w: %w", ErrLoadDataset, err)
	}
	if !info.IsDir() {
		return Source{Scrobbles: scrobbles, Genres: genres}, nil, nil
	}

	years, err := Years(scrobbles)
	if err != nil {
		return Source{}, nil, fmt.Errorf("%w: %w", ErrLoadDataset, err)
	}
	if len(years) == 0 {
		return Source{}, nil, fmt.Errorf("%w: no year files in %s", ErrEmptyDataset, scrobbles)
	}

	if year == "" {
		year = years[len(years)-1]
	}
	idx := sort.SearchStrings(years, year)
	if idx == len(years) || years[idx] != year {
		return Source{}, years, fmt.Errorf("%w: %s", ErrYearNotFound, year)
	}

	return Source{
		Scrobbles: filepath.Join(scrobbles, year+".json"),
		Genres:    genres,
		Year:      year,
	}, years, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
