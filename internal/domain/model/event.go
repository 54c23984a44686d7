// Package model contains domain models passed between layers.
package model

import "github.com/lucasb-eyer/go-colorful"

// Artist carries the artist's playcount at the time of the scrobble.
// Genre and GenreGroup are empty when the artist is not mapped to a genre.
type Artist struct {
	Name       string
	Playcount  int
	Genre      string
	GenreGroup string
}

// Album carries the album's playcount at the time of the scrobble.
// Name can be empty for tracks without an album.
type Album struct {
	Name      string
	Playcount int
}

// Track carries the track's playcount at the time of the scrobble.
type Track struct {
	Name      string
	Playcount int
}

// Colors holds the precomputed colour variants of a scrobble.
type Colors struct {
	Base   colorful.Color // regular point colour
	Genre  colorful.Color // point colour while its genre is highlighted
	Artist colorful.Color // point colour while its artist is highlighted
	Label  colorful.Color // artist label colour
}

// Event is one scrobble. It is immutable once the dataset is enriched.
type Event struct {
	Timestamp int64  // unix milliseconds
	Date      string // "YYYY-MM-DD HH:MM:SS" as recorded
	Index     int    // position in the full chronological sequence
	Artist    Artist
	Album     Album
	Track     Track
	Colors    Colors
}

// Point is an event drawn at pixel coordinates of the current scale configuration.
type Point struct {
	X     int
	Y     int
	Color colorful.Color
	Event *Event
}

// Pixel is a drawn coordinate, used to restore highlighted points.
type Pixel struct {
	X int
	Y int
}

// Box is an axis-aligned rectangle in pixels. Max bounds are exclusive.
type Box struct {
	MinX int
	MinY int
	MaxX int
	MaxY int
}

// Width returns the horizontal extent of b.
func (b Box) Width() int { return b.MaxX - b.MinX }

// Height returns the vertical extent of b.
func (b Box) Height() int { return b.MaxY - b.MinY }

// Window is the visible part of the sequence: an inclusive index range and
// the time span (unix ms) it was derived from.
type Window struct {
	First int
	Last  int
	From  int64
	To    int64
}

// Span returns the window's time span in milliseconds.
func (w Window) Span() int64 { return w.To - w.From }

// Contains reports whether index lies inside the window.
func (w Window) Contains(index int) bool {
	return index >= w.First && index <= w.Last
}
