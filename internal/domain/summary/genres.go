package summary

import (
	"sort"

	"github.com/okian/timeline/internal/domain/model"
)

// GenreStat is one legend entry.
type GenreStat struct {
	Name        string
	Group       string
	ArtistCount int
	Playcount   int     // sum of the latest playcount of each artist
	Share       float64 // Playcount relative to the scrobble count, in percent
}

// GenreStats builds legend entries sorted by playcount, highest first.
// Genres whose group is not known to the palette are left out and returned
// separately so the caller can report them.
func GenreStats(events []*model.Event, knownGroup func(group string) bool) (stats []GenreStat, unknown []string) {
	type record struct {
		group       string
		artistCount int
		playcount   int
		order       int
	}

	genres := make(map[string]*record)
	artistPlaycounts := make(map[string]int)

	for _, e := range events {
		genre := e.Artist.Genre
		if genre == "" {
			continue
		}

		r, ok := genres[genre]
		if !ok {
			r = &record{group: e.Artist.GenreGroup, order: len(genres)}
			genres[genre] = r
		}

		if prev, seen := artistPlaycounts[e.Artist.Name]; seen {
			r.playcount += e.Artist.Playcount - prev
		} else {
			r.artistCount++
			r.playcount += e.Artist.Playcount
		}
		artistPlaycounts[e.Artist.Name] = e.Artist.Playcount
	}

	names := make([]string, 0, len(genres))
	for name := range genres {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return genres[names[i]].order < genres[names[j]].order })

	for _, name := range names {
		r := genres[name]
		if knownGroup != nil && !knownGroup(r.group) {
			unknown = append(unknown, name)
			continue
		}
		share := 0.0
		if len(events) > 0 {
			share = 100 * float64(r.playcount) / float64(len(events))
		}
		stats = append(stats, GenreStat{
			Name:        name,
			Group:       r.group,
			ArtistCount: r.artistCount,
			Playcount:   r.playcount,
			Share:       share,
		})
	}

	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Playcount > stats[j].Playcount })

	return stats, unknown
}
