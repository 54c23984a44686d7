package scale

import "github.com/okian/timeline/internal/domain/model"

// Default engine configuration constants.
const (
	defaultPadding        = 20
	defaultPointSize      = 4
	defaultPointMaxMargin = 4
	defaultTimeAxisWidth  = 2
)

// Scales is the full set of mappings for one window and canvas size.
type Scales struct {
	X     Linear // timestamp (ms) -> x pixel
	Y     Linear // artist playcount -> y pixel
	Color Linear // album playcount -> [0, 1]

	Width      int
	Height     int
	Margin     int // vertical gap between adjacent playcount rows
	PlotTop    int
	PlotBottom int
}

// TimeToX maps a timestamp to its x pixel.
func (s Scales) TimeToX(ts int64) int { return s.X.MapInt(float64(ts)) }

// PlaycountToY maps an artist playcount to its y pixel.
func (s Scales) PlaycountToY(playcount int) int { return s.Y.MapInt(float64(playcount)) }

// PlaycountToColorPosition maps an album playcount to a colour scale position.
func (s Scales) PlaycountToColorPosition(playcount int) float64 {
	return s.Color.Map(float64(playcount))
}

// XToTime maps an x pixel back to a timestamp.
func (s Scales) XToTime(x float64) float64 { return s.X.Invert(x) }

// XRange returns the left and right pixel bounds of the time axis.
func (s Scales) XRange() (int, int) {
	r0, r1 := s.X.Range()
	return int(r0), int(r1)
}

// Engine builds Scales. Every call recomputes everything; there is no
// incremental update.
type Engine struct {
	padding            int
	pointSize          int
	pointMaxMargin     int
	timeAxisWidth      int
	maxArtistPlaycount int
	maxAlbumPlaycount  int
}

// NewEngine creates an engine with configuration options.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		padding:            defaultPadding,
		pointSize:          defaultPointSize,
		pointMaxMargin:     defaultPointMaxMargin,
		timeAxisWidth:      defaultTimeAxisWidth,
		maxArtistPlaycount: 1,
		maxAlbumPlaycount:  1,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Compute derives the scales for window w on a width x height canvas.
func (e *Engine) Compute(w model.Window, width, height int) Scales {
	padding := float64(e.padding)
	pointSize := float64(e.pointSize)

	x := NewLinear(
		float64(w.From), float64(w.To),
		padding, float64(width)-padding,
	).Rounded()

	// Rows are spaced by the largest margin that still fits, so the gaps
	// between adjacent playcounts stay equal after rounding.
	plotBottom := float64(height) - padding - float64(e.timeAxisWidth)/2 - pointSize
	plotMaxHeight := plotBottom - padding
	plotHeight := plotMaxHeight
	margin := 0
	for m := e.pointMaxMargin; m >= 0; m-- {
		next := float64(e.maxArtistPlaycount-1) * (pointSize + float64(m))
		if next <= plotMaxHeight {
			plotHeight = next
			margin = m
			break
		}
	}
	plotTop := plotBottom - plotHeight

	y := NewLinear(
		1, float64(e.maxArtistPlaycount),
		plotBottom, plotTop,
	).Rounded()

	color := NewLinear(
		1, float64(e.maxAlbumPlaycount),
		0, 1,
	).Clamped()

	return Scales{
		X:          x,
		Y:          y,
		Color:      color,
		Width:      width,
		Height:     height,
		Margin:     margin,
		PlotTop:    int(roundHalfUp(plotTop)),
		PlotBottom: int(roundHalfUp(plotBottom)),
	}
}
