package service

import (
	"context"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/okian/timeline/internal/domain/label"
	"github.com/okian/timeline/internal/domain/model"
	"github.com/okian/timeline/pkg/logger"
	"github.com/okian/timeline/pkg/metrics"
)

// selectScrobble moves the selection to e and highlights it.
func (c *Controller) selectScrobble(ctx context.Context, e *model.Event, via string) {
	c.highlightScrobble(ctx, e)
	metrics.RecordSelection("scrobble")
	c.logger.Debug(ctx, "scrobble selected",
		logger.Int("index", e.Index),
		logger.String("artist", e.Artist.Name),
		logger.String("via", via),
	)
}

// highlightScrobble draws the genre of e without its artist, then the
// artist with same-track points on top, then labels, time label and info.
func (c *Controller) highlightScrobble(ctx context.Context, e *model.Event) {
	start := time.Now()
	c.removeHighlight()

	c.state = StateScrobbleSelected
	c.selected = e
	c.selectedGenre = e.Artist.Genre

	var (
		anchors []label.Anchor
		colors  = make(map[string]colorful.Color)
	)
	if genre := e.Artist.Genre; genre != "" {
		latest, order := c.paintGroup(c.byGenre.Get(genre), func(p model.Point) (colorful.Color, bool) {
			return p.Event.Colors.Genre, p.Event.Artist.Name != e.Artist.Name
		})
		for _, name := range order {
			p := latest[name]
			anchors = append(anchors, c.anchor(p))
			colors[name] = p.Event.Colors.Label
		}
		c.legend.HighlightGenre(genre)
	} else {
		c.legend.RemoveGenreHighlight()
	}

	var (
		exact  []model.Point
		newest model.Point
		found  bool
	)
	for _, p := range c.byArtist.Get(e.Artist.Name) {
		newest, found = p, true
		if p.Event.Track.Name == e.Track.Name {
			exact = append(exact, p)
			continue
		}
		c.paint(p, p.Event.Colors.Artist)
	}
	for _, p := range exact {
		c.paint(p, c.settings.ExactMatchColor)
	}

	placed, shifted := 0, 0
	if found {
		pl := c.placer.Place(c.anchor(newest))
		c.renderLabel(pl, newest.Event.Colors.Label, true)
		placed++
		if pl.Shifted {
			shifted++
		}
	}
	for _, pl := range c.placer.PlaceAll(anchors) {
		c.renderLabel(pl, colors[pl.Anchor.Text], false)
		placed++
		if pl.Shifted {
			shifted++
		}
	}

	if c.window.Contains(e.Index) {
		c.timeLabels.RenderTimeLabel(TimeLabelSelected, c.scales.TimeToX(e.Timestamp), c.formatTime(e.Timestamp))
	} else {
		c.timeLabels.ClearTimeLabel(TimeLabelSelected)
	}
	c.info.HideIntroMessage()
	c.info.RenderScrobbleInfo(e, c.summary.Totals(e))

	c.recordHighlight(ctx, start, placed, shifted)
}

// highlightGenre draws every visible scrobble of genre with one label per artist.
func (c *Controller) highlightGenre(ctx context.Context, genre string) {
	start := time.Now()
	c.removeHighlight()

	c.state = StateGenreSelected
	c.selected = nil
	c.selectedGenre = genre

	latest, order := c.paintGroup(c.byGenre.Get(genre), func(p model.Point) (colorful.Color, bool) {
		return p.Event.Colors.Genre, true
	})

	anchors := make([]label.Anchor, 0, len(order))
	colors := make(map[string]colorful.Color, len(order))
	for _, name := range order {
		p := latest[name]
		anchors = append(anchors, c.anchor(p))
		colors[name] = p.Event.Colors.Label
	}

	placed, shifted := 0, 0
	for _, pl := range c.placer.PlaceAll(anchors) {
		c.renderLabel(pl, colors[pl.Anchor.Text], false)
		placed++
		if pl.Shifted {
			shifted++
		}
	}

	c.legend.HighlightGenre(genre)
	c.timeLabels.ClearTimeLabel(TimeLabelSelected)
	c.info.ShowIntroMessage()

	c.recordHighlight(ctx, start, placed, shifted)
}

// paintGroup paints the points accepted by colorOf and returns the most
// recent accepted point per artist with the artists in first-seen order.
func (c *Controller) paintGroup(points []model.Point, colorOf func(model.Point) (colorful.Color, bool)) (map[string]model.Point, []string) {
	latest := make(map[string]model.Point)
	var order []string
	for _, p := range points {
		col, ok := colorOf(p)
		if !ok {
			continue
		}
		c.paint(p, col)
		name := p.Event.Artist.Name
		if _, seen := latest[name]; !seen {
			order = append(order, name)
		}
		latest[name] = p
	}
	return latest, order
}

// clearSelection removes every highlight and returns to Idle.
func (c *Controller) clearSelection(ctx context.Context) {
	c.removeHighlight()
	c.state = StateIdle
	c.selected = nil
	c.selectedGenre = ""
	c.timeLabels.ClearTimeLabel(TimeLabelSelected)
	c.legend.RemoveGenreHighlight()
	c.info.ShowIntroMessage()
	c.logger.Debug(ctx, "selection cleared")
}

// removeHighlight redraws every highlighted pixel with the colour of the
// point stored there and drops all labels.
func (c *Controller) removeHighlight() {
	for _, px := range c.highlighted {
		if p, ok := c.points.GetExact(px.X, px.Y); ok {
			c.renderer.DrawPoint(px.X, px.Y, p.Color)
		}
	}
	c.highlighted = c.highlighted[:0]
	c.labels.RemoveAllLabels()
	c.placer.Reset()
}

func (c *Controller) paint(p model.Point, col colorful.Color) {
	c.renderer.DrawPoint(p.X, p.Y, col)
	c.highlighted = append(c.highlighted, model.Pixel{X: p.X, Y: p.Y})
}

func (c *Controller) anchor(p model.Point) label.Anchor {
	name := p.Event.Artist.Name
	w, h := c.labels.MeasureLabel(name)
	return label.Anchor{X: p.X, Y: p.Y, Width: w, Height: h, Text: name}
}

func (c *Controller) renderLabel(pl label.Placement, col colorful.Color, primary bool) {
	c.labels.RenderLabel(pl.Box.MinX, pl.Box.MinY, c.placer.AreaWidth(), pl.Anchor.Text, col, primary)
}

func (c *Controller) recordHighlight(ctx context.Context, start time.Time, placed, shifted int) {
	durationMs := float64(time.Since(start).Microseconds()) / 1000
	metrics.UpdateHighlightedPixels(len(c.highlighted))
	metrics.RecordHighlightDuration(durationMs)
	metrics.RecordLabelsPlaced(placed, shifted)
	c.logger.Debug(ctx, "highlighted",
		logger.String("state", c.state.String()),
		logger.Int("pixels", len(c.highlighted)),
		logger.Int("labels", placed),
		logger.Int("shifted", shifted),
	)
}
