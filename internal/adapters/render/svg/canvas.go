// Package svg renders the timeline into a standalone SVG document.
package svg

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"sort"
	"unicode/utf8"

	"github.com/lucasb-eyer/go-colorful"

	service "github.com/okian/timeline/internal/app"
	"github.com/okian/timeline/internal/domain/model"
)

// Default canvas configuration constants.
const (
	defaultWidth     = 1600
	defaultHeight    = 900
	defaultPadding   = 20
	defaultPointSize = 4
	defaultAxisWidth = 2
	defaultFontSize  = 12
	charWidthRatio   = 0.6 // average glyph width of a sans-serif face per font size
	fontFamily       = "sans-serif"
)

type label struct {
	x, y    int
	text    string
	color   colorful.Color
	primary bool
}

type timeLabel struct {
	x    int
	text string
}

// Canvas keeps what the controller drew and writes it as SVG. It implements
// the renderer, label surface and time label interfaces of the controller.
type Canvas struct {
	width      int
	height     int
	padding    int
	pointSize  int
	axisWidth  int
	fontSize   int
	background colorful.Color
	axisColor  colorful.Color

	order  []model.Pixel
	points map[model.Pixel]colorful.Color
	axis   [2]int
	labels []label
	times  map[service.TimeLabelKind]timeLabel
}

// New creates a Canvas with configuration options.
func New(opts ...Option) *Canvas {
	c := &Canvas{
		width:      defaultWidth,
		height:     defaultHeight,
		padding:    defaultPadding,
		pointSize:  defaultPointSize,
		axisWidth:  defaultAxisWidth,
		fontSize:   defaultFontSize,
		background: colorful.Color{R: 0.06, G: 0.06, B: 0.06},
		axisColor:  colorful.Color{R: 0.5, G: 0.5, B: 0.5},
		points:     make(map[model.Pixel]colorful.Color),
		times:      make(map[service.TimeLabelKind]timeLabel),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// DrawBackground drops everything drawn so far.
func (c *Canvas) DrawBackground() {
	c.order = c.order[:0]
	c.points = make(map[model.Pixel]colorful.Color)
}

// DrawPoint paints the point at (x, y). Repainting a pixel keeps the
// z-order of its first paint.
func (c *Canvas) DrawPoint(x, y int, col colorful.Color) {
	px := model.Pixel{X: x, Y: y}
	if _, ok := c.points[px]; !ok {
		c.order = append(c.order, px)
	}
	c.points[px] = col
}

// DrawTimeAxis records the axis span.
func (c *Canvas) DrawTimeAxis(leftX, rightX int, _ [2]int) {
	c.axis = [2]int{leftX, rightX}
}

// Dimensions returns the canvas size.
func (c *Canvas) Dimensions() (int, int) { return c.width, c.height }

// RenderLabel records a label with its top-left corner at (x, y).
func (c *Canvas) RenderLabel(x, y, _ int, text string, col colorful.Color, primary bool) {
	c.labels = append(c.labels, label{x: x, y: y, text: text, color: col, primary: primary})
}

// RemoveAllLabels drops every label.
func (c *Canvas) RemoveAllLabels() { c.labels = c.labels[:0] }

// MeasureLabel estimates the box of text, padded by the point size.
func (c *Canvas) MeasureLabel(text string) (int, int) {
	w := int(math.Ceil(float64(utf8.RuneCountInString(text)) * float64(c.fontSize) * charWidthRatio))
	return w + 2*c.pointSize, c.fontSize + 2*c.pointSize
}

// RenderTimeLabel records a date under the axis.
func (c *Canvas) RenderTimeLabel(kind service.TimeLabelKind, x int, text string) {
	c.times[kind] = timeLabel{x: x, text: text}
}

// ClearTimeLabel drops a date label.
func (c *Canvas) ClearTimeLabel(kind service.TimeLabelKind) {
	delete(c.times, kind)
}

// Len returns the number of painted pixels.
func (c *Canvas) Len() int { return len(c.order) }

// WriteTo writes the SVG document.
func (c *Canvas) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	bw := bufio.NewWriter(cw)

	axisY := c.height - c.padding
	half := c.pointSize / 2

	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		c.width, c.height, c.width, c.height)
	fmt.Fprintf(bw, `<rect width="100%%" height="100%%" fill="%s"/>`+"\n", hex(c.background))

	bw.WriteString("<g shape-rendering=\"crispEdges\">\n")
	for _, px := range c.order {
		fmt.Fprintf(bw, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`+"\n",
			px.X-half, px.Y-half, c.pointSize, c.pointSize, hex(c.points[px]))
	}
	bw.WriteString("</g>\n")

	if c.axisWidth > 0 && c.axis[1] > c.axis[0] {
		fmt.Fprintf(bw, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="%d"/>`+"\n",
			c.axis[0], axisY, c.axis[1], axisY, hex(c.axisColor), c.axisWidth)
	}

	kinds := make([]service.TimeLabelKind, 0, len(c.times))
	for kind := range c.times {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	for _, kind := range kinds {
		tl := c.times[kind]
		anchor := "middle"
		switch kind {
		case service.TimeLabelFirst:
			anchor = "start"
		case service.TimeLabelLast:
			anchor = "end"
		}
		fmt.Fprintf(bw, `<text x="%d" y="%d" font-family="%s" font-size="%d" fill="%s" text-anchor="%s" class="time-%s">%s</text>`+"\n",
			tl.x, axisY+c.axisWidth+c.fontSize, fontFamily, c.fontSize, hex(c.axisColor), anchor, kind, escape(tl.text))
	}

	for _, l := range c.labels {
		weight := "normal"
		if l.primary {
			weight = "bold"
		}
		fmt.Fprintf(bw, `<text x="%d" y="%d" font-family="%s" font-size="%d" font-weight="%s" fill="%s">%s</text>`+"\n",
			l.x+c.pointSize, l.y+c.pointSize+c.fontSize, fontFamily, c.fontSize, weight, hex(l.color), escape(l.text))
	}

	bw.WriteString("</svg>\n")
	if err := bw.Flush(); err != nil {
		return cw.n, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return cw.n, nil
}

func hex(c colorful.Color) string { return c.Clamped().Hex() }

func escape(s string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
