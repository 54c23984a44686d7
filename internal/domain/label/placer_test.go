package label_test

import (
	"math/rand/v2"
	"testing"

	"github.com/okian/timeline/internal/domain/label"
	"github.com/okian/timeline/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func newPlacer() *label.Placer {
	return label.New(
		label.WithMargin(2),
		label.WithPadding(10),
		label.WithAreaWidth(200),
		label.WithOffset(3),
	)
}

func collide(a, b model.Box, margin int) bool {
	h := a.MinX < b.MaxX+margin && b.MinX < a.MaxX+margin
	v := a.MinY < b.MaxY+margin && b.MinY < a.MaxY+margin
	return h && v
}

func TestPlace(t *testing.T) {
	Convey("Given an empty placer", t, func() {
		p := newPlacer()

		Convey("When a label fits in the middle of the area", func() {
			pl := p.Place(label.Anchor{X: 100, Y: 80, Width: 20, Height: 8, Text: "Kyuss"})

			Convey("Then it is centred above the anchor", func() {
				So(pl.Box, ShouldResemble, model.Box{MinX: 90, MinY: 69, MaxX: 110, MaxY: 77})
				So(pl.Shifted, ShouldBeFalse)
				So(p.Boxes(), ShouldHaveLength, 1)
			})
		})

		Convey("When a label would overflow the left edge", func() {
			pl := p.Place(label.Anchor{X: 12, Y: 80, Width: 30, Height: 8})

			Convey("Then it is flush with the left padding", func() {
				So(pl.Box.MinX, ShouldEqual, 10)
				So(pl.Box.MaxX, ShouldEqual, 40)
			})
		})

		Convey("When a label would overflow the right edge", func() {
			pl := p.Place(label.Anchor{X: 195, Y: 80, Width: 30, Height: 8})

			Convey("Then it is flush with the right padding", func() {
				So(pl.Box.MaxX, ShouldEqual, 190)
				So(pl.Box.MinX, ShouldEqual, 160)
			})
		})

		Convey("When a label is wider than the area", func() {
			pl := p.Place(label.Anchor{X: 100, Y: 80, Width: 400, Height: 8})

			Convey("Then it sticks to the left padding", func() {
				So(pl.Box.MinX, ShouldEqual, 10)
			})
		})
	})

	Convey("Given a label already placed", t, func() {
		p := newPlacer()
		first := p.Place(label.Anchor{X: 100, Y: 80, Width: 20, Height: 8})

		Convey("When a second label collides with it", func() {
			second := p.Place(label.Anchor{X: 105, Y: 82, Width: 20, Height: 8})

			Convey("Then it sits just above the first one", func() {
				So(second.Shifted, ShouldBeTrue)
				So(second.Box.MaxY, ShouldEqual, first.Box.MinY-2)
				So(second.Box.Height(), ShouldEqual, 8)
			})
		})

		Convey("When a second label is horizontally clear", func() {
			second := p.Place(label.Anchor{X: 160, Y: 80, Width: 20, Height: 8})

			Convey("Then it keeps its natural position", func() {
				So(second.Shifted, ShouldBeFalse)
				So(second.Box.MaxY, ShouldEqual, 77)
			})
		})

		Convey("When the placer is reset", func() {
			p.Reset()
			again := p.Place(label.Anchor{X: 100, Y: 80, Width: 20, Height: 8})

			Convey("Then earlier boxes no longer push labels up", func() {
				So(again.Shifted, ShouldBeFalse)
				So(again.Box, ShouldResemble, first.Box)
			})
		})
	})

	Convey("Given three labels stacked on one anchor", t, func() {
		p := newPlacer()
		a := label.Anchor{X: 100, Y: 100, Width: 20, Height: 8}
		b1 := p.Place(a).Box
		b2 := p.Place(a).Box
		b3 := p.Place(a).Box

		Convey("Then each one climbs above the previous", func() {
			So(b2.MaxY, ShouldEqual, b1.MinY-2)
			So(b3.MaxY, ShouldEqual, b2.MinY-2)
		})
	})
}

func TestPlaceAll(t *testing.T) {
	Convey("Given anchors out of vertical order", t, func() {
		p := newPlacer()
		anchors := []label.Anchor{
			{X: 100, Y: 120, Width: 20, Height: 8, Text: "low"},
			{X: 100, Y: 40, Width: 20, Height: 8, Text: "top"},
			{X: 100, Y: 80, Width: 20, Height: 8, Text: "mid-a"},
			{X: 120, Y: 80, Width: 20, Height: 8, Text: "mid-b"},
		}

		placements := p.PlaceAll(anchors)

		Convey("Then the topmost anchor is placed first and ties keep input order", func() {
			So(placements, ShouldHaveLength, 4)
			So(placements[0].Anchor.Text, ShouldEqual, "top")
			So(placements[1].Anchor.Text, ShouldEqual, "mid-a")
			So(placements[2].Anchor.Text, ShouldEqual, "mid-b")
			So(placements[3].Anchor.Text, ShouldEqual, "low")
		})

		Convey("Then the input slice is left untouched", func() {
			So(anchors[0].Text, ShouldEqual, "low")
		})
	})

	Convey("Given random batches in random orders", t, func() {
		rng := rand.New(rand.NewPCG(7, 11))

		Convey("Then no two placed boxes collide within the margin", func() {
			for round := 0; round < 50; round++ {
				p := newPlacer()
				anchors := make([]label.Anchor, 25)
				for i := range anchors {
					anchors[i] = label.Anchor{
						X:      rng.IntN(200),
						Y:      60 + rng.IntN(120),
						Width:  5 + rng.IntN(40),
						Height: 4 + rng.IntN(8),
					}
				}
				rng.Shuffle(len(anchors), func(i, j int) { anchors[i], anchors[j] = anchors[j], anchors[i] })

				p.PlaceAll(anchors)
				boxes := p.Boxes()
				clean := true
				for i := range boxes {
					for j := i + 1; j < len(boxes); j++ {
						if collide(boxes[i], boxes[j], 2) {
							clean = false
						}
					}
				}
				So(clean, ShouldBeTrue)
			}
		})
	})
}
