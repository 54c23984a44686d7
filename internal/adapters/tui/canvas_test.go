package tui_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/okian/timeline/internal/adapters/tui"
	service "github.com/okian/timeline/internal/app"
	"github.com/okian/timeline/internal/domain/model"
	"github.com/okian/timeline/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

var (
	grey  = colorful.Color{R: 0.5, G: 0.5, B: 0.5}
	base  = colorful.Color{R: 0.2, G: 0.2, B: 0.2}
	label = colorful.Color{R: 0.8, G: 0.8, B: 0.8}
)

func cellSettings() service.Settings {
	s := service.DefaultSettings()
	s.Padding = 2
	s.PointSize = 1
	s.PointMaxMargin = 1
	s.TimeAxisWidth = 1
	s.LabelMargin = 0
	s.ZoomDeltaFactor = 0.1
	return s
}

func dailyEvents(names ...string) []*model.Event {
	start := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	out := make([]*model.Event, len(names))
	for i, name := range names {
		out[i] = &model.Event{
			Timestamp: start + int64(i)*int64(24*time.Hour/time.Millisecond),
			Index:     i,
			Artist:    model.Artist{Name: name, Playcount: 1, Genre: "stoner rock", GenreGroup: "rock"},
			Track:     model.Track{Name: "Green Machine", Playcount: 1},
			Colors:    model.Colors{Base: base, Genre: base, Artist: grey, Label: label},
		}
	}
	return out
}

func TestCanvas(t *testing.T) {
	Convey("Given a 40x12 canvas driven by the controller", t, func() {
		canvas := tui.NewCanvas(40, 12, 2, 1, grey)
		events := dailyEvents("Kyuss", "Sleep", "Kyuss")
		c, err := service.New(cellSettings(), events, nil, service.Deps{
			Renderer:   canvas,
			Labels:     canvas,
			TimeLabels: canvas,
		})
		So(err, ShouldBeNil)
		ctx := context.Background()
		c.Draw(ctx)
		rows := strings.Split(canvas.Plain(), "\n")

		Convey("Then every row is as wide as the canvas", func() {
			So(len(rows), ShouldEqual, 12)
			for _, row := range rows {
				So([]rune(row), ShouldHaveLength, 40)
			}
		})

		Convey("Then each event is a point in its base colour", func() {
			sc := c.Scales()
			for _, e := range events {
				r, col, ok := canvas.At(sc.TimeToX(e.Timestamp), sc.PlaycountToY(1))
				So(ok, ShouldBeTrue)
				So(r, ShouldEqual, '●')
				So(col, ShouldResemble, base)
			}
		})

		Convey("Then the axis spans the plot with anchors at both ends", func() {
			So(rows[10], ShouldEqual, "  ┬"+strings.Repeat("─", 35)+"┬ ")
		})

		Convey("Then the first date is left aligned and the last right aligned", func() {
			So(rows[11], ShouldEqual, "  Jan 01 00:00"+strings.Repeat(" ", 13)+"Jan 03 00:00 ")
		})

		Convey("Then the rendered output carries the same text", func() {
			So(canvas.Render(), ShouldContainSubstring, "Jan 01 00:00")
		})

		Convey("When a scrobble is selected", func() {
			_, err := c.SelectEvent(ctx, 0)
			So(err, ShouldBeNil)

			Convey("Then the artist label and the selected date are drawn", func() {
				plain := canvas.Plain()
				So(plain, ShouldContainSubstring, "Kyuss")
				So(strings.Count(plain, "Jan 01 00:00"), ShouldBeGreaterThanOrEqualTo, 1)
			})

			Convey("When the selection is cleared", func() {
				So(c.Key(ctx, service.KeyEscape), ShouldBeTrue)

				Convey("Then the labels are gone", func() {
					So(canvas.Plain(), ShouldNotContainSubstring, "Kyuss")
				})
			})
		})

		Convey("When the canvas is resized", func() {
			canvas.SetSize(20, 6)

			Convey("Then the dimensions follow", func() {
				w, h := canvas.Dimensions()
				So(w, ShouldEqual, 20)
				So(h, ShouldEqual, 6)
			})
		})
	})

	Convey("Given labels to measure", t, func() {
		canvas := tui.NewCanvas(10, 5, 1, 1, grey)

		Convey("Then a label is one row as wide as its cells", func() {
			w, h := canvas.MeasureLabel("Björk")
			So(w, ShouldEqual, 5)
			So(h, ShouldEqual, 1)
		})

		Convey("Then cells outside the canvas are not addressable", func() {
			_, _, ok := canvas.At(10, 0)
			So(ok, ShouldBeFalse)
		})
	})
}
