package summary

import (
	"github.com/keilerkonzept/topk"

	"github.com/okian/timeline/internal/domain/model"
)

// Sketch sizing constants.
const (
	minSketchWidth     = 64
	sketchWidthPerItem = 16
	sketchDepth        = 4
)

// ArtistCount is an artist and how many of its scrobbles fall in a window.
type ArtistCount struct {
	Name  string
	Count int
}

// TopArtists returns the k artists scrobbled most often among events.
// Counts come from a HeavyKeeper sketch and are approximate for large inputs.
func TopArtists(events []*model.Event, k int) []ArtistCount {
	if k <= 0 || len(events) == 0 {
		return nil
	}

	sketch := topk.New(k,
		topk.WithWidth(max(minSketchWidth, k*sketchWidthPerItem)),
		topk.WithDepth(sketchDepth),
	)
	for _, e := range events {
		sketch.Incr(e.Artist.Name)
	}

	items := sketch.SortedSlice()
	out := make([]ArtistCount, 0, len(items))
	for _, item := range items {
		if item.Count == 0 {
			continue
		}
		out = append(out, ArtistCount{Name: item.Item, Count: int(item.Count)})
	}
	return out
}
