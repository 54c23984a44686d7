// Package label places text labels above anchor points so that labels with
// overlapping horizontal spans never overlap vertically.
//
// Placement is greedy and order dependent: earlier boxes are never moved, so
// dense stacks may grow past the top of the plot area.
package label

import (
	"sort"

	"github.com/okian/timeline/internal/domain/model"
)

// Default placer configuration constants.
const (
	defaultMargin    = 2
	defaultPadding   = 20
	defaultAreaWidth = 800
	defaultOffset    = 4
)

// Anchor is a label request: the point it belongs to and the measured size
// of its rendered text.
type Anchor struct {
	X      int
	Y      int
	Width  int
	Height int
	Text   string
}

// Placement is the final position of an anchor's label.
type Placement struct {
	Anchor  Anchor
	Box     model.Box
	Shifted bool // moved up to avoid an earlier box
}

// Placer keeps the boxes occupied since the last Reset.
type Placer struct {
	margin    int
	padding   int
	areaWidth int
	offset    int
	boxes     []model.Box
}

// New creates a Placer with configuration options.
func New(opts ...Option) *Placer {
	p := &Placer{
		margin:    defaultMargin,
		padding:   defaultPadding,
		areaWidth: defaultAreaWidth,
		offset:    defaultOffset,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// SetAreaWidth updates the plot area width after a resize.
func (p *Placer) SetAreaWidth(width int) {
	if width > 0 {
		p.areaWidth = width
	}
}

// AreaWidth returns the plot area width labels are clamped to.
func (p *Placer) AreaWidth() int { return p.areaWidth }

// Reset forgets every occupied box. Called whenever the label layer is cleared.
func (p *Placer) Reset() { p.boxes = p.boxes[:0] }

// Boxes returns a copy of the occupied boxes in placement order.
func (p *Placer) Boxes() []model.Box {
	out := make([]model.Box, len(p.boxes))
	copy(out, p.boxes)
	return out
}

// Place positions a single label and records its box.
func (p *Placer) Place(a Anchor) Placement {
	box := p.horizontal(a)
	box.MaxY = a.Y - p.offset
	box.MinY = box.MaxY - a.Height

	shifted := false
	for {
		hit, ok := p.nearestCollision(box)
		if !ok {
			break
		}
		box.MaxY = hit.MinY - p.margin
		box.MinY = box.MaxY - a.Height
		shifted = true
	}

	p.boxes = append(p.boxes, box)
	return Placement{Anchor: a, Box: box, Shifted: shifted}
}

// PlaceAll places a batch of labels topmost anchor first. Anchors with the
// same y keep their input order. Placements are returned in placement order.
func (p *Placer) PlaceAll(anchors []Anchor) []Placement {
	ordered := make([]Anchor, len(anchors))
	copy(ordered, anchors)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Y < ordered[j].Y
	})

	out := make([]Placement, 0, len(ordered))
	for _, a := range ordered {
		out = append(out, p.Place(a))
	}
	return out
}

// horizontal centres the box under the anchor and keeps it inside the
// padded area. When the label is wider than the area it sticks to the left.
func (p *Placer) horizontal(a Anchor) model.Box {
	half := (a.Width + 1) / 2
	minX := a.X - half
	if right := p.areaWidth - p.padding; minX+a.Width > right {
		minX = right - a.Width
	}
	if minX < p.padding {
		minX = p.padding
	}
	return model.Box{MinX: minX, MaxX: minX + a.Width}
}

// nearestCollision returns the colliding box closest above the bottom of b.
// Every shift lowers MaxY below the colliding box, so the loop in Place ends.
func (p *Placer) nearestCollision(b model.Box) (model.Box, bool) {
	var (
		hit   model.Box
		found bool
	)
	for _, prior := range p.boxes {
		if !overlaps(b.MinX, b.MaxX, prior.MinX, prior.MaxX, p.margin) {
			continue
		}
		if !overlaps(b.MinY, b.MaxY, prior.MinY, prior.MaxY, p.margin) {
			continue
		}
		if !found || prior.MinY > hit.MinY {
			hit = prior
			found = true
		}
	}
	return hit, found
}

// overlaps reports whether [a1, a2] and [b1, b2] come closer than margin.
func overlaps(a1, a2, b1, b2, margin int) bool {
	return a1 < b2+margin && b1 < a2+margin
}
