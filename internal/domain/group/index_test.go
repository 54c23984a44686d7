package group_test

import (
	"testing"

	"github.com/okian/timeline/internal/domain/group"
	"github.com/okian/timeline/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func genreOf(p model.Point) string { return p.Event.Artist.Genre }

func drawn(index int, artist, genre string) model.Point {
	return model.Point{
		X: index,
		Event: &model.Event{
			Index:  index,
			Artist: model.Artist{Name: artist, Genre: genre},
		},
	}
}

func TestGroupIndex(t *testing.T) {
	Convey("Given points from two genres and one without genre", t, func() {
		idx := group.New[string, model.Point]()
		idx.Put(drawn(0, "Kyuss", "stoner rock"), genreOf)
		idx.Put(drawn(1, "Burzum", "black metal"), genreOf)
		idx.Put(drawn(2, "Unknown Band", ""), genreOf)
		idx.Put(drawn(3, "Sleep", "stoner rock"), genreOf)

		Convey("Then each group keeps draw order", func() {
			list := idx.Get("stoner rock")
			So(len(list), ShouldEqual, 2)
			So(list[0].Event.Index, ShouldEqual, 0)
			So(list[1].Event.Index, ShouldEqual, 3)
		})

		Convey("Then points without a key are excluded", func() {
			So(idx.Len(), ShouldEqual, 2)
			So(idx.Get(""), ShouldBeEmpty)
		})

		Convey("Then a missing key yields an empty non-nil list", func() {
			list := idx.Get("polka")
			So(list, ShouldNotBeNil)
			So(list, ShouldBeEmpty)
		})

		Convey("When the index is reset", func() {
			idx.Reset()

			Convey("Then every group is gone", func() {
				So(idx.Len(), ShouldEqual, 0)
				So(idx.Get("stoner rock"), ShouldBeEmpty)
			})
		})
	})
}
