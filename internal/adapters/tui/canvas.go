package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	service "github.com/okian/timeline/internal/app"
	"github.com/okian/timeline/internal/domain/model"
)

// Glyphs used on the plot.
const (
	pointGlyph  = '●'
	axisGlyph   = '─'
	anchorGlyph = '┬'
	emptyGlyph  = ' '
)

type cell struct {
	r     rune
	color colorful.Color
	bold  bool
	set   bool
}

type textLabel struct {
	x, y    int
	text    string
	color   colorful.Color
	primary bool
}

type timeText struct {
	x    int
	text string
}

// Canvas is a grid of terminal cells the controller draws on. One pixel of
// the scales is one cell. It implements the renderer, label surface and time
// label interfaces of the controller.
type Canvas struct {
	width     int
	height    int
	padding   int
	pointSize int
	axisColor colorful.Color

	points  map[model.Pixel]colorful.Color
	axis    [2]int
	anchors [2]int
	labels  []textLabel
	times   map[service.TimeLabelKind]timeText

	styles map[styleKey]lipgloss.Style
}

type styleKey struct {
	hex  string
	bold bool
}

// NewCanvas creates a canvas of width x height cells.
func NewCanvas(width, height, padding, pointSize int, axisColor colorful.Color) *Canvas {
	return &Canvas{
		width:     max(width, 0),
		height:    max(height, 0),
		padding:   padding,
		pointSize: max(pointSize, 1),
		axisColor: axisColor,
		points:    make(map[model.Pixel]colorful.Color),
		times:     make(map[service.TimeLabelKind]timeText),
		styles:    make(map[styleKey]lipgloss.Style),
	}
}

// SetSize changes the canvas size. Nothing is redrawn until the controller
// settles the resize.
func (c *Canvas) SetSize(width, height int) {
	c.width, c.height = max(width, 0), max(height, 0)
}

// DrawBackground clears the plot.
func (c *Canvas) DrawBackground() {
	c.points = make(map[model.Pixel]colorful.Color)
	c.axis = [2]int{}
	c.anchors = [2]int{}
}

// DrawPoint paints the point centred at (x, y).
func (c *Canvas) DrawPoint(x, y int, col colorful.Color) {
	c.points[model.Pixel{X: x, Y: y}] = col
}

// DrawTimeAxis records the axis span and the first and last event columns.
func (c *Canvas) DrawTimeAxis(leftX, rightX int, anchors [2]int) {
	c.axis = [2]int{leftX, rightX}
	c.anchors = anchors
}

// Dimensions returns the canvas size in cells.
func (c *Canvas) Dimensions() (int, int) { return c.width, c.height }

// RenderLabel records a label with its top-left corner at (x, y).
func (c *Canvas) RenderLabel(x, y, _ int, text string, col colorful.Color, primary bool) {
	c.labels = append(c.labels, textLabel{x: x, y: y, text: text, color: col, primary: primary})
}

// RemoveAllLabels drops every label.
func (c *Canvas) RemoveAllLabels() { c.labels = c.labels[:0] }

// MeasureLabel returns the cells text occupies on one row.
func (c *Canvas) MeasureLabel(text string) (int, int) {
	return lipgloss.Width(text), 1
}

// RenderTimeLabel records a date on the row under the axis.
func (c *Canvas) RenderTimeLabel(kind service.TimeLabelKind, x int, text string) {
	c.times[kind] = timeText{x: x, text: text}
}

// ClearTimeLabel drops a date label.
func (c *Canvas) ClearTimeLabel(kind service.TimeLabelKind) {
	delete(c.times, kind)
}

func (c *Canvas) axisY() int { return c.height - c.padding }

// grid composes points, axis, dates and labels, in that order.
func (c *Canvas) grid() [][]cell {
	g := make([][]cell, c.height)
	for y := range g {
		g[y] = make([]cell, c.width)
	}
	put := func(x, y int, r rune, col colorful.Color, bold bool) {
		if y < 0 || y >= c.height || x < 0 || x >= c.width {
			return
		}
		g[y][x] = cell{r: r, color: col, bold: bold, set: true}
	}
	text := func(x, y int, s string, col colorful.Color, bold bool) {
		for i, r := range []rune(s) {
			put(x+i, y, r, col, bold)
		}
	}

	half := c.pointSize / 2
	for px, col := range c.points {
		for dy := 0; dy < c.pointSize; dy++ {
			for dx := 0; dx < c.pointSize; dx++ {
				put(px.X-half+dx, px.Y-half+dy, pointGlyph, col, false)
			}
		}
	}

	axisY := c.axisY()
	if c.axis[1] > c.axis[0] {
		for x := c.axis[0]; x <= c.axis[1]; x++ {
			put(x, axisY, axisGlyph, c.axisColor, false)
		}
		put(c.anchors[0], axisY, anchorGlyph, c.axisColor, false)
		put(c.anchors[1], axisY, anchorGlyph, c.axisColor, false)
	}

	for _, kind := range []service.TimeLabelKind{service.TimeLabelFirst, service.TimeLabelLast, service.TimeLabelSelected} {
		tl, ok := c.times[kind]
		if !ok {
			continue
		}
		w := lipgloss.Width(tl.text)
		x := tl.x
		switch kind {
		case service.TimeLabelLast:
			x -= w - 1
		case service.TimeLabelSelected:
			x -= w / 2
		}
		x = min(max(x, 0), max(c.width-w, 0))
		text(x, axisY+1, tl.text, c.axisColor, kind == service.TimeLabelSelected)
	}

	for _, l := range c.labels {
		text(l.x, l.y, l.text, l.color, l.primary)
	}
	return g
}

// Plain returns the canvas as unstyled text, one line per row.
func (c *Canvas) Plain() string {
	var b strings.Builder
	for y, row := range c.grid() {
		if y > 0 {
			b.WriteByte('\n')
		}
		for _, cl := range row {
			if cl.set {
				b.WriteRune(cl.r)
			} else {
				b.WriteRune(emptyGlyph)
			}
		}
	}
	return b.String()
}

// Render returns the canvas with colours. Runs of cells sharing a style are
// rendered together.
func (c *Canvas) Render() string {
	var b strings.Builder
	for y, row := range c.grid() {
		if y > 0 {
			b.WriteByte('\n')
		}
		var (
			run   []rune
			runOf styleKey
			inRun bool
		)
		flush := func() {
			if len(run) == 0 {
				return
			}
			if inRun {
				b.WriteString(c.style(runOf).Render(string(run)))
			} else {
				b.WriteString(string(run))
			}
			run = run[:0]
		}
		for _, cl := range row {
			if !cl.set {
				if inRun {
					flush()
					inRun = false
				}
				run = append(run, emptyGlyph)
				continue
			}
			key := styleKey{hex: cl.color.Clamped().Hex(), bold: cl.bold}
			if !inRun || key != runOf {
				flush()
				runOf, inRun = key, true
			}
			run = append(run, cl.r)
		}
		flush()
	}
	return b.String()
}

// At returns the glyph and colour drawn at (x, y).
func (c *Canvas) At(x, y int) (rune, colorful.Color, bool) {
	if y < 0 || y >= c.height || x < 0 || x >= c.width {
		return 0, colorful.Color{}, false
	}
	cl := c.grid()[y][x]
	return cl.r, cl.color, cl.set
}

func (c *Canvas) style(k styleKey) lipgloss.Style {
	if s, ok := c.styles[k]; ok {
		return s
	}
	s := lipgloss.NewStyle().Foreground(lipgloss.Color(k.hex)).Bold(k.bold)
	c.styles[k] = s
	return s
}
