// Package summary aggregates counts and playcount maxima over a scrobble list.
package summary

import (
	"math"
	"sort"

	"github.com/okian/timeline/internal/domain/model"
)

const msInDay = 24 * 60 * 60 * 1000

// Totals are the latest known playcounts of a scrobble's artist, album and track.
type Totals struct {
	Artist int
	Album  int
	Track  int
}

// Counts describes the dataset as a whole.
type Counts struct {
	Artists   int
	Albums    int
	Tracks    int
	Scrobbles int
	PerDay    float64 // scrobbles per day, one decimal
}

type artistEntry struct {
	playcount int
	albums    map[string]int
	tracks    map[string]int
}

// Summary is built once per dataset and never updated.
type Summary struct {
	registry           map[string]*artistEntry
	counts             Counts
	maxArtistPlaycount int
	maxAlbumPlaycount  int
}

// New aggregates events, which must be in chronological order.
// Later scrobbles overwrite earlier playcounts since playcounts only grow.
func New(events []*model.Event) *Summary {
	s := &Summary{registry: make(map[string]*artistEntry)}

	for _, e := range events {
		entry, ok := s.registry[e.Artist.Name]
		if !ok {
			// Tracks are not nested into albums: the same track can appear on
			// several albums.
			entry = &artistEntry{
				albums: make(map[string]int),
				tracks: make(map[string]int),
			}
			s.registry[e.Artist.Name] = entry
		}

		entry.playcount = e.Artist.Playcount
		if e.Album.Name != "" {
			entry.albums[e.Album.Name] = e.Album.Playcount
		}
		entry.tracks[e.Track.Name] = e.Track.Playcount
	}

	s.counts.Artists = len(s.registry)
	for _, entry := range s.registry {
		s.counts.Albums += len(entry.albums)
		s.counts.Tracks += len(entry.tracks)

		if entry.playcount > s.maxArtistPlaycount {
			s.maxArtistPlaycount = entry.playcount
		}
		for _, playcount := range entry.albums {
			if playcount > s.maxAlbumPlaycount {
				s.maxAlbumPlaycount = playcount
			}
		}
	}

	s.counts.Scrobbles = len(events)
	s.counts.PerDay = perDay(events)

	return s
}

func perDay(events []*model.Event) float64 {
	if len(events) == 0 {
		return 0
	}
	span := events[len(events)-1].Timestamp - events[0].Timestamp
	days := math.Ceil(float64(span) / msInDay)
	if days < 1 {
		days = 1
	}
	return math.Round(10*float64(len(events))/days) / 10
}

// Counts returns the dataset counts.
func (s *Summary) Counts() Counts { return s.counts }

// MaxArtistPlaycount returns the largest artist playcount of the dataset.
func (s *Summary) MaxArtistPlaycount() int { return s.maxArtistPlaycount }

// MaxAlbumPlaycount returns the largest album playcount of the dataset.
func (s *Summary) MaxAlbumPlaycount() int { return s.maxAlbumPlaycount }

// Totals returns the final playcounts for the scrobble's artist, album and track.
// Unknown names yield zero values.
func (s *Summary) Totals(e *model.Event) Totals {
	entry, ok := s.registry[e.Artist.Name]
	if !ok {
		return Totals{}
	}
	return Totals{
		Artist: entry.playcount,
		Album:  entry.albums[e.Album.Name],
		Track:  entry.tracks[e.Track.Name],
	}
}

// ArtistNames returns every artist name sorted alphabetically.
func (s *Summary) ArtistNames() []string {
	names := make([]string, 0, len(s.registry))
	for name := range s.registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
