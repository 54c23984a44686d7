package dataset

import (
	"github.com/okian/timeline/pkg/metrics"
)

// Cache keeps decoded files by path for the lifetime of one explorer session.
// It is created by the caller and handed to the Loader, so two sessions
// never share entries. Not safe for concurrent use.
type Cache struct {
	scrobbles map[string][]rawScrobble
	genres    map[string]genreFile
}

// NewCache returns an empty Cache.
func NewCache() *Cache {
	return &Cache{
		scrobbles: make(map[string][]rawScrobble),
		genres:    make(map[string]genreFile),
	}
}

func (c *Cache) getScrobbles(path string) ([]rawScrobble, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c.scrobbles[path]
	metrics.RecordDatasetCacheLookup(ok)
	return v, ok
}

func (c *Cache) putScrobbles(path string, v []rawScrobble) {
	if c != nil {
		c.scrobbles[path] = v
	}
}

func (c *Cache) getGenres(path string) (genreFile, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c.genres[path]
	metrics.RecordDatasetCacheLookup(ok)
	return v, ok
}

func (c *Cache) putGenres(path string, v genreFile) {
	if c != nil {
		c.genres[path] = v
	}
}

// Len returns the number of cached files.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return len(c.scrobbles) + len(c.genres)
}

// Clear drops every entry.
func (c *Cache) Clear() {
	if c == nil {
		return
	}
	c.scrobbles = make(map[string][]rawScrobble)
	c.genres = make(map[string]genreFile)
}
