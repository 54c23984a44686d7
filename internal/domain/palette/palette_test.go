package palette_test

import (
	"errors"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/okian/timeline/internal/domain/model"
	"github.com/okian/timeline/internal/domain/palette"
	. "github.com/smartystreets/goconvey/convey"
)

func gray(v float64) colorful.Color { return colorful.Color{R: v, G: v, B: v} }

func TestPalette(t *testing.T) {
	Convey("Given a palette with one black to white group", t, func() {
		p, err := palette.New(
			palette.WithGroup("rock", "#000000", "#ffffff"),
			palette.WithUnknownRange("#ff0000", "#ff0000"),
			palette.WithFactors(palette.VariantOther, palette.Factors{Saturation: 1, Lightness: 0.8}),
			palette.WithFactors(palette.VariantArtist, palette.Factors{Saturation: 3, Lightness: 3}),
		)
		So(err, ShouldBeNil)

		Convey("Then the base colour follows the scale position", func() {
			low, ok := p.Base("rock", 0)
			So(ok, ShouldBeTrue)
			So(low.AlmostEqualRgb(gray(0)), ShouldBeTrue)

			mid, _ := p.Base("rock", 0.5)
			So(mid.AlmostEqualRgb(gray(0.5)), ShouldBeTrue)

			high, _ := p.Base("rock", 1.5)
			So(high.AlmostEqualRgb(gray(1)), ShouldBeTrue)
		})

		Convey("Then variants scale lightness", func() {
			colors, ok := p.Colors("rock", 0.5)
			So(ok, ShouldBeTrue)
			So(colors.Base.AlmostEqualRgb(gray(0.4)), ShouldBeTrue)
		})

		Convey("Then factors never push lightness above one", func() {
			c := p.Apply(gray(0.5), palette.VariantArtist)
			So(c.AlmostEqualRgb(gray(1)), ShouldBeTrue)
		})

		Convey("Then an unknown group falls back to the unknown range", func() {
			c, ok := p.Base("polka", 0.5)
			So(ok, ShouldBeFalse)
			red, _ := colorful.Hex("#ff0000")
			So(c.AlmostEqualRgb(red), ShouldBeTrue)
			So(p.HasGroup("polka"), ShouldBeFalse)
			So(p.HasGroup("rock"), ShouldBeTrue)
			So(p.Groups(), ShouldResemble, []string{"rock"})
		})

		Convey("When events are checked against the groups", func() {
			events := []*model.Event{
				{Artist: model.Artist{GenreGroup: "rock"}, Album: model.Album{Playcount: 1}},
				{Artist: model.Artist{GenreGroup: "polka"}, Album: model.Album{Playcount: 1}},
				{Artist: model.Artist{GenreGroup: "polka"}, Album: model.Album{Playcount: 2}},
				{Artist: model.Artist{}, Album: model.Album{Playcount: 1}},
			}
			unknown := p.UnknownGroups(events)

			Convey("Then unknown groups are reported once", func() {
				So(unknown, ShouldResemble, []string{"polka"})
			})
		})
	})

	Convey("Given an invalid hex colour", t, func() {
		_, err := palette.New(palette.WithGroup("rock", "#zz0000", "#ffffff"))

		Convey("Then construction fails with ErrInvalidColor", func() {
			So(err, ShouldNotBeNil)
			So(errors.Is(err, palette.ErrInvalidColor), ShouldBeTrue)
		})
	})
}
