package svg_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/okian/timeline/internal/adapters/render/svg"
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

func scrobbles() []*model.Event {
	start := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	colors := model.Colors{
		Base:   colorful.Color{R: 0.2, G: 0.2, B: 0.2},
		Genre:  colorful.Color{R: 0.4, G: 0.4, B: 0.4},
		Artist: colorful.Color{R: 0.6, G: 0.6, B: 0.6},
		Label:  colorful.Color{R: 0.8, G: 0.8, B: 0.8},
	}
	names := []string{"Kyuss", "Sleep & Friends", "Kyuss"}
	out := make([]*model.Event, len(names))
	for i, name := range names {
		out[i] = &model.Event{
			Timestamp: start + int64(i)*int64(time.Hour/time.Millisecond),
			Index:     i,
			Artist:    model.Artist{Name: name, Playcount: i + 1, Genre: "stoner rock"},
			Track:     model.Track{Name: "Thumb"},
			Colors:    colors,
		}
	}
	return out
}

func TestCanvas(t *testing.T) {
	Convey("Given a canvas driven by the controller", t, func() {
		canvas := svg.New(svg.WithSize(400, 200), svg.WithPadding(20), svg.WithPointSize(4))
		c, err := service.New(service.DefaultSettings(), scrobbles(), nil, service.Deps{
			Renderer:   canvas,
			Labels:     canvas,
			TimeLabels: canvas,
		})
		So(err, ShouldBeNil)
		ctx := context.Background()
		c.Draw(ctx)

		Convey("When the plot is written", func() {
			var buf bytes.Buffer
			n, err := canvas.WriteTo(&buf)
			doc := buf.String()

			Convey("Then it is a complete SVG document", func() {
				So(err, ShouldBeNil)
				So(n, ShouldEqual, int64(buf.Len()))
				So(doc, ShouldStartWith, `<svg xmlns="http://www.w3.org/2000/svg" width="400" height="200"`)
				So(doc, ShouldEndWith, "</svg>\n")
			})

			Convey("Then every point is a square centred on its pixel", func() {
				So(canvas.Len(), ShouldEqual, 3)
				So(doc, ShouldContainSubstring, `<rect x="18" y="173" width="4" height="4" fill="#333333"/>`)
			})

			Convey("Then the axis and the first and last dates are drawn", func() {
				So(doc, ShouldContainSubstring, `<line x1="20" y1="180" x2="380" y2="180"`)
				So(doc, ShouldContainSubstring, `class="time-first">Jan 01 00:00</text>`)
				So(doc, ShouldContainSubstring, `class="time-last">Jan 01 02:00</text>`)
			})
		})

		Convey("When a scrobble is selected before writing", func() {
			_, err := c.SelectEvent(ctx, 0)
			So(err, ShouldBeNil)

			var buf bytes.Buffer
			_, err = canvas.WriteTo(&buf)
			So(err, ShouldBeNil)
			doc := buf.String()

			Convey("Then labels are written with escaped text", func() {
				So(doc, ShouldContainSubstring, `font-weight="bold" fill="#cccccc">Kyuss</text>`)
				So(doc, ShouldContainSubstring, `>Sleep &amp; Friends</text>`)
			})

			Convey("Then the repainted pixels keep one element each", func() {
				So(strings.Count(doc, "<rect x="), ShouldEqual, 3)
				So(doc, ShouldContainSubstring, `fill="#ffffff"/>`)
				So(doc, ShouldContainSubstring, `class="time-selected">Jan 01 00:00</text>`)
			})
		})
	})

	Convey("Given a label to measure", t, func() {
		canvas := svg.New(svg.WithFontSize(10), svg.WithPointSize(2))

		Convey("Then the width follows the rune count", func() {
			w, h := canvas.MeasureLabel("Björk")
			So(w, ShouldEqual, 30+4)
			So(h, ShouldEqual, 14)
		})
	})
}
