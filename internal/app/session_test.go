package service_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/okian/timeline/internal/adapters/dataset"
	service "github.com/okian/timeline/internal/app"
	"github.com/okian/timeline/internal/domain/summary"
	"github.com/okian/timeline/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNewSession(t *testing.T) {
	Convey("Given a loaded dataset", t, func() {
		evs := events(
			scrobble{artist: "A", track: "a", playcount: 1},
			scrobble{artist: "B", track: "b", playcount: 1},
		)
		ds := &dataset.Dataset{
			Source:   dataset.Source{Scrobbles: "2019.json", Year: "2019"},
			Events:   evs,
			Summary:  summary.New(evs),
			Location: time.FixedZone("UTC+2", 2*60*60),
		}
		h := newHarness()

		Convey("When a session is started", func() {
			s, err := service.NewSession(context.Background(), ds, service.DefaultSettings(), h.deps())
			So(err, ShouldBeNil)

			Convey("Then it has a unique id", func() {
				_, err := uuid.Parse(s.ID)
				So(err, ShouldBeNil)
				other, err := service.NewSession(context.Background(), ds, service.DefaultSettings(), newHarness().deps())
				So(err, ShouldBeNil)
				So(other.ID, ShouldNotEqual, s.ID)
			})

			Convey("Then the plot is drawn once", func() {
				So(h.renderer.backgrounds, ShouldEqual, 1)
				So(h.renderer.pixels, ShouldHaveLength, 2)
				So(s.Controller.Snapshot().Points, ShouldEqual, 2)
			})

			Convey("Then time labels use the dataset time zone", func() {
				So(h.timeLabels.text[service.TimeLabelFirst], ShouldEqual, "Jan 01 02:00")
			})
		})

		Convey("When the session logs", func() {
			var buf bytes.Buffer
			So(logger.Init(logger.WithOutput(&buf), logger.WithJSON()), ShouldBeNil)
			Reset(func() { _ = logger.Init() })

			s, err := service.NewSession(context.Background(), ds, service.DefaultSettings(), h.deps())
			So(err, ShouldBeNil)

			Convey("Then its records carry the session id", func() {
				So(buf.String(), ShouldContainSubstring, "session started")
				So(buf.String(), ShouldContainSubstring, `"session_id":"`+s.ID+`"`)
			})
		})

		Convey("When a status board follows the session", func() {
			board := service.NewStatusBoard()
			So(board.GetStatus()["state"], ShouldEqual, "starting")

			s, err := service.NewSession(context.Background(), ds, service.DefaultSettings(), h.deps())
			So(err, ShouldBeNil)
			board.Publish(s)
			status := board.GetStatus()

			Convey("Then it reports the dataset and the idle state", func() {
				So(status["session_id"], ShouldEqual, s.ID)
				So(status["year"], ShouldEqual, "2019")
				So(status["events"], ShouldEqual, 2)
				So(status["state"], ShouldEqual, "idle")
				So(status, ShouldNotContainKey, "selected_artist")
				So(strings.HasPrefix(status["window_from"].(string), "2019-01-01"), ShouldBeTrue)
			})

			Convey("When a scrobble is selected", func() {
				_, err := s.Controller.SelectEvent(context.Background(), 1)
				So(err, ShouldBeNil)
				board.Publish(s)

				Convey("Then the selection is reported", func() {
					status := board.GetStatus()
					So(status["selected_artist"], ShouldEqual, "B")
					So(status["selected_track"], ShouldEqual, "b")
					So(status["state"], ShouldEqual, "scrobble_selected")
				})
			})

			Convey("Then the returned status is a copy", func() {
				status["state"] = "changed"
				So(board.GetStatus()["state"], ShouldEqual, "idle")
			})

			Convey("Then nil sessions and boards are ignored", func() {
				board.Publish(nil)
				So(board.GetStatus()["session_id"], ShouldEqual, s.ID)
				var none *service.StatusBoard
				So(func() { none.Publish(s) }, ShouldNotPanic)
			})
		})

		Convey("When the settings are invalid", func() {
			settings := service.DefaultSettings()
			settings.ZoomDeltaFactor = 0
			_, err := service.NewSession(context.Background(), ds, settings, h.deps())

			Convey("Then the validation error is returned", func() {
				So(errors.Is(err, service.ErrInvalidSettings), ShouldBeTrue)
			})
		})
	})

	Convey("Given no dataset", t, func() {
		_, err := service.NewSession(context.Background(), nil, service.DefaultSettings(), newHarness().deps())

		Convey("Then ErrNoEvents is returned", func() {
			So(errors.Is(err, service.ErrNoEvents), ShouldBeTrue)
		})
	})
}

func TestSettings(t *testing.T) {
	Convey("Given the default settings", t, func() {
		s := service.DefaultSettings()

		Convey("Then they are valid", func() {
			So(s.Validate(), ShouldBeNil)
			So(s.ExactMatchColor, ShouldResemble, white)
		})

		Convey("Then each bad field is reported", func() {
			bad := []func(*service.Settings){
				func(s *service.Settings) { s.Padding = -1 },
				func(s *service.Settings) { s.PointSize = 0 },
				func(s *service.Settings) { s.PointMaxMargin = -1 },
				func(s *service.Settings) { s.TimeAxisWidth = -1 },
				func(s *service.Settings) { s.LabelMargin = -1 },
				func(s *service.Settings) { s.ZoomDeltaFactor = 0 },
				func(s *service.Settings) { s.MinTimeRange = 0 },
				func(s *service.Settings) { s.ResizeDebounce = -time.Second },
			}
			for _, mutate := range bad {
				settings := service.DefaultSettings()
				mutate(&settings)
				So(errors.Is(settings.Validate(), service.ErrInvalidSettings), ShouldBeTrue)
			}
		})
	})
}

func TestStateNames(t *testing.T) {
	Convey("States and time label kinds have readable names", t, func() {
		So(service.StateIdle.String(), ShouldEqual, "idle")
		So(service.StateScrobbleSelected.String(), ShouldEqual, "scrobble_selected")
		So(service.StateGenreSelected.String(), ShouldEqual, "genre_selected")
		So(service.TimeLabelSelected.String(), ShouldEqual, "selected")
	})
}
