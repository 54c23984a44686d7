package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/okian/timeline/internal/adapters/dataset"
	"github.com/okian/timeline/internal/domain/model"
	"github.com/okian/timeline/internal/domain/palette"
	"github.com/okian/timeline/internal/domain/summary"
)

// infoLines is the fixed height of the info panel.
const infoLines = 4

// Info shows the dataset summary until a scrobble is selected, then the
// selected scrobble with its playcounts.
type Info struct {
	intro     []string
	lines     []string
	showIntro bool
	selected  *model.Event
}

// NewInfo builds the intro text of ds.
func NewInfo(ds *dataset.Dataset) *Info {
	c := ds.Summary.Counts()
	from := dataset.DatePart(ds.First().Date)
	to := dataset.DatePart(ds.Last().Date)
	return &Info{
		intro: []string{
			fmt.Sprintf("%d scrobbles (%.1f per day), %s to %s", c.Scrobbles, c.PerDay, from, to),
			fmt.Sprintf("%d artists, %d albums, %d tracks", c.Artists, c.Albums, c.Tracks),
			"hover a point to select it, drag to pan, scroll to zoom",
		},
		showIntro: true,
	}
}

// RenderScrobbleInfo shows e. Each playcount is shown as at-the-time/total.
func (i *Info) RenderScrobbleInfo(e *model.Event, t summary.Totals) {
	i.selected = e
	i.lines = i.lines[:0]
	i.lines = append(i.lines, fmt.Sprintf("artist  %s (%d/%d)", e.Artist.Name, e.Artist.Playcount, t.Artist))
	if e.Album.Name != "" {
		i.lines = append(i.lines, fmt.Sprintf("album   %s (%d/%d)", e.Album.Name, e.Album.Playcount, t.Album))
	}
	i.lines = append(i.lines, fmt.Sprintf("track   %s (%d/%d)", e.Track.Name, e.Track.Playcount, t.Track))
	i.lines = append(i.lines, fmt.Sprintf("date    %s  %s", e.Date, genreText(e.Artist)))
}

// ShowIntroMessage switches back to the summary.
func (i *Info) ShowIntroMessage() {
	i.showIntro = true
	i.selected = nil
}

// HideIntroMessage hides the summary.
func (i *Info) HideIntroMessage() { i.showIntro = false }

// Lines returns the text currently shown.
func (i *Info) Lines() []string {
	if i.showIntro {
		return i.intro
	}
	return i.lines
}

// View renders the panel in width cells.
func (i *Info) View(width int) string {
	lines := i.Lines()
	out := make([]string, infoLines)
	for n := range out {
		if n < len(lines) {
			out[n] = truncate(lines[n], width)
		}
	}
	return infoStyle.Render(strings.Join(out, "\n"))
}

// Copy returns the text copied to the clipboard for the selected scrobble.
func (i *Info) Copy() (string, bool) {
	e := i.selected
	if e == nil || i.showIntro {
		return "", false
	}
	links := dataset.LastfmLinks(e)
	var b strings.Builder
	fmt.Fprintf(&b, "%s - %s\n", e.Artist.Name, e.Track.Name)
	fmt.Fprintf(&b, "%s\n", e.Date)
	fmt.Fprintf(&b, "%s\n", links.Artist)
	if links.Album != "" {
		fmt.Fprintf(&b, "%s\n", links.Album)
	}
	fmt.Fprintf(&b, "%s\n", links.Track)
	return b.String(), true
}

func genreText(a model.Artist) string {
	switch {
	case a.Genre == "":
		return ""
	case a.GenreGroup == "" || a.GenreGroup == a.Genre:
		return a.Genre
	default:
		return a.Genre + " / " + a.GenreGroup
	}
}

type legendEntry struct {
	stat        summary.GenreStat
	color       colorful.Color
	highlighted colorful.Color
}

type legendSpan struct {
	row, from, to int
	genre         string
}

// Legend lists the genres of a dataset, most played first, and marks the
// highlighted one.
type Legend struct {
	entries     []legendEntry
	highlighted string
	spans       []legendSpan
}

// NewLegend builds the legend of ds.
func NewLegend(ds *dataset.Dataset) *Legend {
	l := &Legend{entries: make([]legendEntry, 0, len(ds.Genres))}
	for _, g := range ds.Genres {
		l.entries = append(l.entries, legendEntry{
			stat:        g,
			color:       ds.Palette.GroupSwatch(g.Group, palette.VariantOther),
			highlighted: ds.Palette.GroupSwatch(g.Group, palette.VariantGenre),
		})
	}
	return l
}

// HighlightGenre marks genre.
func (l *Legend) HighlightGenre(genre string) { l.highlighted = genre }

// RemoveGenreHighlight clears the mark.
func (l *Legend) RemoveGenreHighlight() { l.highlighted = "" }

// Highlighted returns the marked genre.
func (l *Legend) Highlighted() string { return l.highlighted }

// View lays the entries out in rows of width cells and remembers where each
// entry went for GenreAt. Entries that do not fit are dropped.
func (l *Legend) View(width, rows int) string {
	l.spans = l.spans[:0]
	if rows <= 0 {
		return ""
	}
	lines := make([]string, rows)
	row, x := 0, 0
	for _, e := range l.entries {
		text := fmt.Sprintf("■ %s %d", e.stat.Name, e.stat.ArtistCount)
		w := lipgloss.Width(text)
		if x > 0 && x+1+w > width {
			row++
			x = 0
		}
		if row >= rows || w > width {
			break
		}
		if x > 0 {
			lines[row] += " "
			x++
		}

		col := e.color
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(col.Clamped().Hex()))
		if e.stat.Name == l.highlighted {
			style = style.Foreground(lipgloss.Color(e.highlighted.Clamped().Hex())).Bold(true).Reverse(true)
		}
		lines[row] += style.Render(text)
		l.spans = append(l.spans, legendSpan{row: row, from: x, to: x + w, genre: e.stat.Name})
		x += w
	}
	return strings.Join(lines, "\n")
}

// GenreAt returns the genre rendered at (x, row) by the last View.
func (l *Legend) GenreAt(x, row int) (string, bool) {
	for _, s := range l.spans {
		if s.row == row && x >= s.from && x < s.to {
			return s.genre, true
		}
	}
	return "", false
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}
