package dataset

import (
	"net/url"
	"strings"

	"github.com/okian/timeline/internal/domain/model"
)

const lastfmMusicBase = "https://www.last.fm/music/"

// componentUnescaper restores the characters a URI component keeps literal.
var componentUnescaper = strings.NewReplacer( //nolint:gochecknoglobals // immutable replacer
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EscapeComponent escapes a single path or query component, encoding spaces as "+".
func EscapeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

// Links are the last.fm pages of a scrobble.
type Links struct {
	Artist string
	Album  string
	Track  string
}

// LastfmLinks builds the last.fm links of e. Album is empty when the
// scrobble has no album.
func LastfmLinks(e *model.Event) Links {
	artist := lastfmMusicBase + EscapeComponent(e.Artist.Name)
	links := Links{
		Artist: artist,
		Track:  artist + "/_/" + EscapeComponent(e.Track.Name),
	}
	if e.Album.Name != "" {
		links.Album = artist + "/" + EscapeComponent(e.Album.Name)
	}
	return links
}
