// Package service provides the interaction controller that ties the point
// index, the sequence view, the scales and the label placer to the surfaces
// an adapter draws on.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/timeline/internal/adapters/dataset"
	"github.com/okian/timeline/internal/domain/group"
	"github.com/okian/timeline/internal/domain/label"
	"github.com/okian/timeline/internal/domain/model"
	"github.com/okian/timeline/internal/domain/pointindex"
	"github.com/okian/timeline/internal/domain/scale"
	"github.com/okian/timeline/internal/domain/sequence"
	"github.com/okian/timeline/internal/domain/summary"
	"github.com/okian/timeline/pkg/logger"
	"github.com/okian/timeline/pkg/metrics"
)

// State is the selection state of a Controller.
type State int

// Selection states.
const (
	StateIdle State = iota
	StateScrobbleSelected
	StateGenreSelected
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateScrobbleSelected:
		return "scrobble_selected"
	case StateGenreSelected:
		return "genre_selected"
	default:
		return "unknown"
	}
}

// Key is a navigation key.
type Key int

// Navigation keys.
const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyEscape
)

// Redraw reasons reported to metrics.
const (
	reasonDraw   = "draw"
	reasonResize = "resize"
)

// Snapshot is a read-only view of the controller state.
type Snapshot struct {
	State             State
	SelectedIndex     int // -1 when no scrobble is selected
	SelectedGenre     string
	Window            model.Window
	HighlightedPixels int
	Points            int
	Dragging          bool
}

// Controller owns the draw loop and the selection state machine. It is not
// safe for concurrent use: every call must come from the UI loop.
type Controller struct {
	settings Settings
	summary  *summary.Summary

	// Core components
	view     *sequence.View[*model.Event]
	points   *pointindex.Index
	byGenre  *group.Index[string, model.Point]
	byArtist *group.Index[string, model.Point]
	engine   *scale.Engine
	placer   *label.Placer

	// Surfaces
	renderer   Renderer
	labels     LabelSurface
	timeLabels TimeLabels
	info       InfoPanel
	legend     Legend
	colors     Colorizer

	// Derived on every draw
	scales scale.Scales
	window model.Window
	bounds [2]int64

	// Highlight state
	state         State
	selected      *model.Event
	selectedGenre string
	highlighted   []model.Pixel

	// Pointer state
	dragging   bool
	dragX      int
	dragWindow model.Window

	resizeGen  uint64
	settledGen uint64

	formatTime func(ts int64) string
	logger     logger.Logger
}

// Option applies a configuration option to the Controller.
type Option func(*Controller)

// WithLogger sets a custom logger for the controller.
func WithLogger(log logger.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.logger = log
		}
	}
}

// WithTimeFormat sets how time axis labels render a timestamp.
func WithTimeFormat(format func(ts int64) string) Option {
	return func(c *Controller) {
		if format != nil {
			c.formatTime = format
		}
	}
}

// New validates settings and builds a Controller over events, which must be
// sorted by timestamp with Index matching their position. A nil sum is
// computed from events.
func New(settings Settings, events []*model.Event, sum *summary.Summary, deps Deps, opts ...Option) (*Controller, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, ErrNoEvents
	}
	if deps.Renderer == nil {
		return nil, fmt.Errorf("%w: renderer", ErrMissingCollaborator)
	}
	if deps.Labels == nil {
		return nil, fmt.Errorf("%w: label surface", ErrMissingCollaborator)
	}
	if deps.TimeLabels == nil {
		deps.TimeLabels = nopTimeLabels{}
	}
	if deps.Info == nil {
		deps.Info = nopInfoPanel{}
	}
	if deps.Legend == nil {
		deps.Legend = nopLegend{}
	}
	if sum == nil {
		sum = summary.New(events)
	}

	first, last := events[0], events[len(events)-1]
	c := &Controller{
		settings: settings,
		summary:  sum,
		view:     sequence.New(events),
		points:   pointindex.New(),
		byGenre:  group.New[string, model.Point](),
		byArtist: group.New[string, model.Point](),
		engine: scale.NewEngine(
			scale.WithPadding(settings.Padding),
			scale.WithPointSize(settings.PointSize),
			scale.WithPointMaxMargin(settings.PointMaxMargin),
			scale.WithTimeAxisWidth(settings.TimeAxisWidth),
			scale.WithMaxPlaycounts(sum.MaxArtistPlaycount(), sum.MaxAlbumPlaycount()),
		),
		placer: label.New(
			label.WithMargin(settings.LabelMargin),
			label.WithPadding(settings.Padding),
			label.WithOffset(settings.PointSize),
		),
		renderer:   deps.Renderer,
		labels:     deps.Labels,
		timeLabels: deps.TimeLabels,
		info:       deps.Info,
		legend:     deps.Legend,
		colors:     deps.Colors,
		window:     model.Window{First: 0, Last: len(events) - 1, From: first.Timestamp, To: last.Timestamp},
		bounds:     [2]int64{first.Timestamp, last.Timestamp},
		state:      StateIdle,
		formatTime: func(ts int64) string { return dataset.FormatTimeLabel(ts, nil) },
		logger:     logger.Get().Named("controller"), // will be updated by options
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Draw redraws everything for the current window and canvas size, then
// re-applies the current selection.
func (c *Controller) Draw(ctx context.Context) {
	c.draw(ctx, reasonDraw)
	c.reapply(ctx)
}

// draw rebuilds the point and group indices while drawing every visible
// event. Any highlight is dropped.
func (c *Controller) draw(ctx context.Context, reason string) {
	start := time.Now()

	width, height := c.renderer.Dimensions()
	c.scales = c.engine.Compute(c.window, width, height)
	c.placer.SetAreaWidth(width)
	c.placer.Reset()
	c.labels.RemoveAllLabels()
	c.points.Reset()
	c.byGenre.Reset()
	c.byArtist.Reset()
	c.highlighted = c.highlighted[:0]

	c.renderer.DrawBackground()
	drawn := 0
	c.view.ForEachVisible(func(e *model.Event) {
		if c.colors != nil {
			e.Colors, _ = c.colors.Colors(e.Artist.GenreGroup, c.scales.PlaycountToColorPosition(e.Album.Playcount))
		}
		p := model.Point{
			X:     c.scales.TimeToX(e.Timestamp),
			Y:     c.scales.PlaycountToY(e.Artist.Playcount),
			Color: e.Colors.Base,
			Event: e,
		}
		c.renderer.DrawPoint(p.X, p.Y, p.Color)
		c.points.Put(p)
		c.byGenre.Put(p, genreKey)
		c.byArtist.Put(p, artistKey)
		drawn++
	})

	first, _ := c.view.FirstVisible()
	last, _ := c.view.LastVisible()
	anchors := [2]int{c.scales.TimeToX(first.Timestamp), c.scales.TimeToX(last.Timestamp)}
	left, right := c.scales.XRange()
	c.renderer.DrawTimeAxis(left, right, anchors)
	c.timeLabels.RenderTimeLabel(TimeLabelFirst, anchors[0], c.formatTime(first.Timestamp))
	c.timeLabels.RenderTimeLabel(TimeLabelLast, anchors[1], c.formatTime(last.Timestamp))

	durationMs := float64(time.Since(start).Microseconds()) / 1000
	metrics.RecordRedraw(reason, durationMs, drawn)
	metrics.UpdateWindow(drawn, c.window.Span())
	metrics.UpdateHighlightedPixels(0)
	c.logger.Debug(ctx, "redrawn",
		logger.String("reason", reason),
		logger.Int("points", drawn),
		logger.Int("pixels", c.points.Len()),
		logger.Int("genres", c.byGenre.Len()),
		logger.Int("artists", c.byArtist.Len()),
		logger.Int("width", width),
		logger.Int("height", height),
		logger.Float64("duration_ms", durationMs),
	)
}

// reapply restores the highlight of the current state after a redraw.
func (c *Controller) reapply(ctx context.Context) {
	switch c.state {
	case StateScrobbleSelected:
		// Only drawn points are indexed, so an off-window selection
		// highlights nothing on the plot but keeps its info.
		if c.selected != nil {
			c.highlightScrobble(ctx, c.selected)
			return
		}
		c.clearSelection(ctx)
	case StateGenreSelected:
		c.highlightGenre(ctx, c.selectedGenre)
	default:
		c.timeLabels.ClearTimeLabel(TimeLabelSelected)
		c.info.ShowIntroMessage()
	}
}

// PointerMove hit-tests the pointer and selects the scrobble under it.
// While dragging it pans instead. It reports whether anything changed.
func (c *Controller) PointerMove(ctx context.Context, x, y int) bool {
	if c.dragging {
		return c.Drag(ctx, x)
	}

	p, ok := c.points.GetWithTolerance(x, y, c.settings.hoverTolerance())
	metrics.RecordHitTest(ok)
	if !ok {
		return false
	}
	if c.state == StateScrobbleSelected && c.selected != nil && c.selected.Index == p.Event.Index {
		return false
	}

	c.selectScrobble(ctx, p.Event, "hover")
	return true
}

// PointerDown starts a drag at x.
func (c *Controller) PointerDown(_ context.Context, x int) {
	c.dragging = true
	c.dragX = x
	c.dragWindow = c.window
}

// PointerUp ends a drag.
func (c *Controller) PointerUp(_ context.Context) {
	c.dragging = false
}

// PointerOut ends a drag when the pointer leaves the plot.
func (c *Controller) PointerOut(_ context.Context) {
	c.dragging = false
}

// SelectEvent selects the event at index of the full sequence. Events
// outside the visible window cannot be selected.
func (c *Controller) SelectEvent(ctx context.Context, index int) (bool, error) {
	e, ok := c.view.At(index)
	if !ok {
		return false, fmt.Errorf("%w: %d", ErrUnknownEvent, index)
	}
	if !c.window.Contains(index) {
		return false, nil
	}
	if c.state == StateScrobbleSelected && c.selected == e {
		return false, nil
	}

	c.selectScrobble(ctx, e, "index")
	return true, nil
}

// SelectArtist selects the most recent visible scrobble of an artist.
func (c *Controller) SelectArtist(ctx context.Context, name string) bool {
	points := c.byArtist.Get(name)
	if len(points) == 0 {
		return false
	}

	c.selectScrobble(ctx, points[len(points)-1].Event, "artist")
	return true
}

// SelectGenre highlights every visible scrobble of genre. Selecting the
// highlighted genre again clears it.
func (c *Controller) SelectGenre(ctx context.Context, genre string) bool {
	if genre == "" {
		return false
	}
	if c.state == StateGenreSelected && c.selectedGenre == genre {
		c.clearSelection(ctx)
		metrics.RecordSelection("clear")
		return true
	}

	c.highlightGenre(ctx, genre)
	metrics.RecordSelection("genre")
	c.logger.Debug(ctx, "genre selected", logger.String("genre", genre))
	return true
}

// Key handles a navigation key. Up and Down step to the chronological
// neighbour, Right and Left to the neighbour by the same artist, Escape
// clears the selection.
func (c *Controller) Key(ctx context.Context, k Key) bool {
	if k == KeyEscape {
		if c.state == StateIdle {
			return false
		}
		c.clearSelection(ctx)
		metrics.RecordSelection("clear")
		return true
	}

	if c.state != StateScrobbleSelected || c.selected == nil {
		return false
	}

	sameArtist := func(e *model.Event) bool { return e.Artist.Name == c.selected.Artist.Name }

	var (
		next *model.Event
		ok   bool
	)
	switch k {
	case KeyUp:
		next, ok = c.view.AdjacentVisible(c.selected.Index, 1, nil)
	case KeyDown:
		next, ok = c.view.AdjacentVisible(c.selected.Index, -1, nil)
	case KeyRight:
		next, ok = c.view.AdjacentVisible(c.selected.Index, 1, sameArtist)
	case KeyLeft:
		next, ok = c.view.AdjacentVisible(c.selected.Index, -1, sameArtist)
	}
	if !ok {
		return false
	}

	c.selectScrobble(ctx, next, "key")
	return true
}

// RequestResize records a canvas size change and returns its generation.
// Only the latest generation settles.
func (c *Controller) RequestResize() uint64 {
	c.resizeGen++
	metrics.RecordResizeRequest()
	return c.resizeGen
}

// ResizeDebounce returns how long adapters wait before settling a resize.
func (c *Controller) ResizeDebounce() time.Duration {
	return c.settings.ResizeDebounce
}

// SettleResize redraws for the new canvas size if gen is still the latest
// request, and returns to Idle.
func (c *Controller) SettleResize(ctx context.Context, gen uint64) bool {
	if gen != c.resizeGen || gen == c.settledGen {
		return false
	}
	c.settledGen = gen

	c.state = StateIdle
	c.selected = nil
	c.selectedGenre = ""
	c.dragging = false
	c.draw(ctx, reasonResize)
	c.clearSelection(ctx)

	metrics.RecordResizeSettled()
	c.logger.Debug(ctx, "resize settled",
		logger.Int64("generation", int64(gen)),
		logger.Int("width", c.scales.Width),
		logger.Int("height", c.scales.Height),
	)
	return true
}

// Selected returns the selected scrobble.
func (c *Controller) Selected() (*model.Event, bool) {
	if c.state != StateScrobbleSelected || c.selected == nil {
		return nil, false
	}
	return c.selected, true
}

// Window returns the visible window.
func (c *Controller) Window() model.Window { return c.window }

// Scales returns the scales of the last draw.
func (c *Controller) Scales() scale.Scales { return c.scales }

// Visible returns the events of the visible window. Callers must not modify it.
func (c *Controller) Visible() []*model.Event {
	return c.view.All()[c.window.First : c.window.Last+1]
}

// TopArtists returns the k artists scrobbled most in the visible window.
func (c *Controller) TopArtists(k int) []summary.ArtistCount {
	return summary.TopArtists(c.Visible(), k)
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{
		State:             c.state,
		SelectedIndex:     -1,
		SelectedGenre:     c.selectedGenre,
		Window:            c.window,
		HighlightedPixels: len(c.highlighted),
		Points:            c.points.Len(),
		Dragging:          c.dragging,
	}
	if c.selected != nil {
		s.SelectedIndex = c.selected.Index
	}
	return s
}

func genreKey(p model.Point) string  { return p.Event.Artist.Genre }
func artistKey(p model.Point) string { return p.Event.Artist.Name }
