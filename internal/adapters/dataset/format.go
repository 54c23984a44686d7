package dataset

import (
	"encoding/json"
	"fmt"
)

const scrobbleFields = 7

// rawScrobble is one compressed scrobble:
// [date, track, trackPlaycount, album, albumPlaycount, artist, artistPlaycount].
type rawScrobble struct {
	Date            string
	TrackName       string
	TrackPlaycount  int
	AlbumName       string
	AlbumPlaycount  int
	ArtistName      string
	ArtistPlaycount int
}

// UnmarshalJSON decodes the positional tuple.
func (r *rawScrobble) UnmarshalJSON(b []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(b, &parts); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedEntry, err)
	}
	if len(parts) != scrobbleFields {
		return fmt.Errorf("%w: want %d fields, got %d", ErrMalformedEntry, scrobbleFields, len(parts))
	}

	targets := []any{
		&r.Date,
		&r.TrackName,
		&r.TrackPlaycount,
		&r.AlbumName,
		&r.AlbumPlaycount,
		&r.ArtistName,
		&r.ArtistPlaycount,
	}
	for i, target := range targets {
		if err := json.Unmarshal(parts[i], target); err != nil {
			return fmt.Errorf("%w: field %d: %w", ErrMalformedEntry, i, err)
		}
	}
	return nil
}

// genreFile maps genre group -> genre -> artist names.
type genreFile map[string]map[string][]string

// artistGenre is where an artist sits in the genre file.
type artistGenre struct {
	genre string
	group string
}

// byArtist inverts the file. An artist listed twice keeps its last entry in
// group and genre name order.
func (f genreFile) byArtist() map[string]artistGenre {
	out := make(map[string]artistGenre)
	for _, group := range sortedKeys(f) {
		genres := f[group]
		for _, genre := range sortedKeys(genres) {
			for _, artist := range genres[genre] {
				out[artist] = artistGenre{genre: genre, group: group}
			}
		}
	}
	return out
}
