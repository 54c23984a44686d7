package service

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/okian/timeline/internal/domain/model"
	"github.com/okian/timeline/internal/domain/summary"
)

// Renderer draws the plot. Implementations own the pixels; the controller
// only tells them what goes where.
type Renderer interface {
	DrawBackground()
	DrawPoint(x, y int, c colorful.Color)
	// DrawTimeAxis draws the axis between leftX and rightX. anchors are the
	// x positions of the first and last visible events.
	DrawTimeAxis(leftX, rightX int, anchors [2]int)
	Dimensions() (width, height int)
}

// LabelSurface shows artist labels. x and y are the top-left corner of the
// placed box.
type LabelSurface interface {
	RenderLabel(x, y, areaWidth int, text string, c colorful.Color, primary bool)
	RemoveAllLabels()
	MeasureLabel(text string) (width, height int)
}

// TimeLabelKind identifies one of the time axis labels.
type TimeLabelKind int

// Time axis labels.
const (
	TimeLabelFirst TimeLabelKind = iota
	TimeLabelLast
	TimeLabelSelected
)

func (k TimeLabelKind) String() string {
	switch k {
	case TimeLabelFirst:
		return "first"
	case TimeLabelLast:
		return "last"
	case TimeLabelSelected:
		return "selected"
	default:
		return "unknown"
	}
}

// TimeLabels shows dates under the time axis.
type TimeLabels interface {
	RenderTimeLabel(kind TimeLabelKind, x int, text string)
	ClearTimeLabel(kind TimeLabelKind)
}

// InfoPanel shows the selected scrobble or the intro message.
type InfoPanel interface {
	RenderScrobbleInfo(e *model.Event, totals summary.Totals)
	ShowIntroMessage()
	HideIntroMessage()
}

// Legend lists genres and marks the highlighted one.
type Legend interface {
	HighlightGenre(genre string)
	RemoveGenreHighlight()
}

// Colorizer derives the colours of a scrobble from its genre group and its
// position on the album playcount colour scale.
type Colorizer interface {
	Colors(group string, position float64) (model.Colors, bool)
}

// Deps are the surfaces a Controller draws on. Renderer and Labels are
// required; the rest default to no-ops. Without Colors, events keep the
// colours they carry.
type Deps struct {
	Renderer   Renderer
	Labels     LabelSurface
	TimeLabels TimeLabels
	Info       InfoPanel
	Legend     Legend
	Colors     Colorizer
}

type nopTimeLabels struct{}

func (nopTimeLabels) RenderTimeLabel(TimeLabelKind, int, string) {}
func (nopTimeLabels) ClearTimeLabel(TimeLabelKind)               {}

type nopInfoPanel struct{}

func (nopInfoPanel) RenderScrobbleInfo(*model.Event, summary.Totals) {}
func (nopInfoPanel) ShowIntroMessage()                               {}
func (nopInfoPanel) HideIntroMessage()                               {}

type nopLegend struct{}

func (nopLegend) HighlightGenre(string) {}
func (nopLegend) RemoveGenreHighlight() {}
