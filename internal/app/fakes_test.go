package service_test

import (
	"time"

	"github.com/lucasb-eyer/go-colorful"

	service "github.com/okian/timeline/internal/app"
	"github.com/okian/timeline/internal/domain/model"
	"github.com/okian/timeline/internal/domain/summary"
	"github.com/okian/timeline/pkg/logger"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

var (
	baseColor   = colorful.Color{R: 0.2, G: 0.2, B: 0.2}
	genreColor  = colorful.Color{R: 0.4, G: 0.4, B: 0.4}
	artistColor = colorful.Color{R: 0.6, G: 0.6, B: 0.6}
	labelColor  = colorful.Color{R: 0.8, G: 0.8, B: 0.8}
	white       = colorful.Color{R: 1, G: 1, B: 1}
)

var day0 = time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()

const dayMs = int64(24 * time.Hour / time.Millisecond)

type scrobble struct {
	artist    string
	genre     string
	track     string
	playcount int
}

// events builds one scrobble per day starting at day0.
func events(list ...scrobble) []*model.Event {
	out := make([]*model.Event, len(list))
	for i, s := range list {
		out[i] = &model.Event{
			Timestamp: day0 + int64(i)*dayMs,
			Index:     i,
			Artist:    model.Artist{Name: s.artist, Playcount: s.playcount, Genre: s.genre, GenreGroup: "rock"},
			Album:     model.Album{Name: s.artist + " album", Playcount: s.playcount},
			Track:     model.Track{Name: s.track, Playcount: 1},
			Colors:    model.Colors{Base: baseColor, Genre: genreColor, Artist: artistColor, Label: labelColor},
		}
	}
	return out
}

type fakeRenderer struct {
	width, height int
	pixels        map[model.Pixel]colorful.Color
	backgrounds   int
	axis          [2]int
	anchors       [2]int
}

func newRenderer(w, h int) *fakeRenderer {
	return &fakeRenderer{width: w, height: h, pixels: make(map[model.Pixel]colorful.Color)}
}

func (r *fakeRenderer) DrawBackground() {
	r.backgrounds++
	r.pixels = make(map[model.Pixel]colorful.Color)
}

func (r *fakeRenderer) DrawPoint(x, y int, c colorful.Color) {
	r.pixels[model.Pixel{X: x, Y: y}] = c
}

func (r *fakeRenderer) DrawTimeAxis(left, right int, anchors [2]int) {
	r.axis = [2]int{left, right}
	r.anchors = anchors
}

func (r *fakeRenderer) Dimensions() (int, int) { return r.width, r.height }

type renderedLabel struct {
	x, y    int
	text    string
	color   colorful.Color
	primary bool
}

type fakeLabels struct {
	labels []renderedLabel
}

func (l *fakeLabels) RenderLabel(x, y, _ int, text string, c colorful.Color, primary bool) {
	l.labels = append(l.labels, renderedLabel{x: x, y: y, text: text, color: c, primary: primary})
}

func (l *fakeLabels) RemoveAllLabels() { l.labels = nil }

func (l *fakeLabels) MeasureLabel(text string) (int, int) { return 6 * len(text), 8 }

type fakeTimeLabels struct {
	text map[service.TimeLabelKind]string
	x    map[service.TimeLabelKind]int
}

func newTimeLabels() *fakeTimeLabels {
	return &fakeTimeLabels{
		text: make(map[service.TimeLabelKind]string),
		x:    make(map[service.TimeLabelKind]int),
	}
}

func (t *fakeTimeLabels) RenderTimeLabel(kind service.TimeLabelKind, x int, text string) {
	t.text[kind] = text
	t.x[kind] = x
}

func (t *fakeTimeLabels) ClearTimeLabel(kind service.TimeLabelKind) {
	delete(t.text, kind)
	delete(t.x, kind)
}

type fakeInfo struct {
	event  *model.Event
	totals summary.Totals
	intro  bool
}

func (i *fakeInfo) RenderScrobbleInfo(e *model.Event, t summary.Totals) {
	i.event = e
	i.totals = t
}

func (i *fakeInfo) ShowIntroMessage() {
	i.event = nil
	i.intro = true
}

func (i *fakeInfo) HideIntroMessage() { i.intro = false }

type fakeLegend struct {
	genre string
}

func (l *fakeLegend) HighlightGenre(genre string) { l.genre = genre }
func (l *fakeLegend) RemoveGenreHighlight()       { l.genre = "" }

// grayColorizer paints the base colour as a gray of the scale position.
type grayColorizer struct {
	positions map[string]float64
}

func (g *grayColorizer) Colors(group string, position float64) (model.Colors, bool) {
	if g.positions == nil {
		g.positions = make(map[string]float64)
	}
	g.positions[group] = position
	gray := colorful.Color{R: position, G: position, B: position}
	return model.Colors{Base: gray, Genre: genreColor, Artist: artistColor, Label: labelColor}, true
}

type harness struct {
	renderer   *fakeRenderer
	labels     *fakeLabels
	timeLabels *fakeTimeLabels
	info       *fakeInfo
	legend     *fakeLegend
}

func newHarness() *harness {
	return &harness{
		renderer:   newRenderer(400, 200),
		labels:     &fakeLabels{},
		timeLabels: newTimeLabels(),
		info:       &fakeInfo{},
		legend:     &fakeLegend{},
	}
}

func (h *harness) deps() service.Deps {
	return service.Deps{
		Renderer:   h.renderer,
		Labels:     h.labels,
		TimeLabels: h.timeLabels,
		Info:       h.info,
		Legend:     h.legend,
	}
}

// pixelOf returns where e is drawn under the current scales.
func pixelOf(c *service.Controller, e *model.Event) model.Pixel {
	s := c.Scales()
	return model.Pixel{X: s.TimeToX(e.Timestamp), Y: s.PlaycountToY(e.Artist.Playcount)}
}
