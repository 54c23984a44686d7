package sequence_test

import (
	"testing"

	"github.com/okian/timeline/internal/domain/sequence"
	. "github.com/smartystreets/goconvey/convey"
)

func isEven(v int) bool { return v%2 == 0 }
func isOdd(v int) bool  { return v%2 == 1 }

func TestView(t *testing.T) {
	Convey("Given a view over [0 1 2]", t, func() {
		view := sequence.New([]int{0, 1, 2})

		Convey("Then boundaries come from the full list", func() {
			So(view.All(), ShouldResemble, []int{0, 1, 2})

			first, ok := view.First()
			So(ok, ShouldBeTrue)
			So(first, ShouldEqual, 0)

			last, ok := view.Last()
			So(ok, ShouldBeTrue)
			So(last, ShouldEqual, 2)
		})

		Convey("Then the whole list is visible", func() {
			first, last := view.VisibleRange()
			So(first, ShouldEqual, 0)
			So(last, ShouldEqual, 2)
		})

		Convey("When the view is reset", func() {
			view.Reset()

			Convey("Then it is empty and lookups miss", func() {
				So(view.All(), ShouldBeEmpty)
				_, ok := view.First()
				So(ok, ShouldBeFalse)
				_, ok = view.LastVisible()
				So(ok, ShouldBeFalse)
			})
		})
	})
}

func TestViewFind(t *testing.T) {
	Convey("Given a view over [0 1 2 3]", t, func() {
		view := sequence.New([]int{0, 1, 2, 3})

		Convey("When finding the first value above 1", func() {
			v, ok := view.FindFirst(func(v int) bool { return v > 1 })

			Convey("Then it returns 2", func() {
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, 2)
			})
		})

		Convey("When finding the last value above 1", func() {
			v, ok := view.FindLast(func(v int) bool { return v > 1 })

			Convey("Then it returns 3", func() {
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, 3)
			})
		})

		Convey("When nothing matches", func() {
			_, okFirst := view.FindFirst(func(v int) bool { return v > 10 })
			_, okLast := view.FindLast(func(v int) bool { return v > 10 })

			Convey("Then both lookups miss without error", func() {
				So(okFirst, ShouldBeFalse)
				So(okLast, ShouldBeFalse)
			})
		})

		Convey("When the window is narrowed to [1, 2]", func() {
			view.SetVisibleRange(1, 2)

			Convey("Then visible boundaries follow the window", func() {
				first, _ := view.FirstVisible()
				last, _ := view.LastVisible()
				So(first, ShouldEqual, 1)
				So(last, ShouldEqual, 2)
			})

			Convey("Then iteration covers only the window", func() {
				var seen []int
				view.ForEachVisible(func(v int) { seen = append(seen, v) })
				So(seen, ShouldResemble, []int{1, 2})
			})

			Convey("Then finds still scan the full list", func() {
				v, ok := view.FindLast(isOdd)
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, 3)
			})
		})
	})
}

func TestViewAdjacentVisible(t *testing.T) {
	Convey("Given a view over [0 1 2 3] with window [1, 2]", t, func() {
		view := sequence.New([]int{0, 1, 2, 3})
		view.SetVisibleRange(1, 2)

		Convey("When searching to the right for an even value", func() {
			v, ok := view.AdjacentVisible(1, +1, isEven)

			Convey("Then the nearest match is found", func() {
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, 2)
			})
		})

		Convey("When searching to the left from outside the window", func() {
			v, ok := view.AdjacentVisible(3, -1, isOdd)

			Convey("Then the nearest visible match is found", func() {
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, 1)
			})
		})

		Convey("When stepping past the window edge", func() {
			_, okRight := view.AdjacentVisible(2, +1, nil)
			_, okLeft := view.AdjacentVisible(1, -1, nil)

			Convey("Then nothing is returned", func() {
				So(okRight, ShouldBeFalse)
				So(okLeft, ShouldBeFalse)
			})
		})

		Convey("When no visible item matches", func() {
			_, ok := view.AdjacentVisible(1, +1, func(v int) bool { return v > 100 })

			Convey("Then the lookup misses", func() {
				So(ok, ShouldBeFalse)
			})
		})
	})

	Convey("Given a window of size 1", t, func() {
		view := sequence.New([]int{0, 1, 2})
		view.SetVisibleRange(1, 1)

		Convey("Then adjacency always misses", func() {
			_, okRight := view.AdjacentVisible(1, +1, nil)
			_, okLeft := view.AdjacentVisible(1, -1, nil)
			So(okRight, ShouldBeFalse)
			So(okLeft, ShouldBeFalse)
		})
	})

	Convey("Given a fully visible view of ten items", t, func() {
		list := make([]int, 10)
		for i := range list {
			list[i] = i
		}
		view := sequence.New(list)

		Convey("Then stepping forward and back returns to the start", func() {
			for i := 1; i < 9; i++ {
				next, ok := view.AdjacentVisible(i, +1, nil)
				So(ok, ShouldBeTrue)
				back, ok := view.AdjacentVisible(next, -1, nil)
				So(ok, ShouldBeTrue)
				So(back, ShouldEqual, i)
			}
		})

		Convey("Then a zero direction never moves", func() {
			_, ok := view.AdjacentVisible(4, 0, nil)
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Given a view over [0..9] with window [1, 2]", t, func() {
		view := sequence.New([]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9})
		view.SetVisibleRange(1, 2)

		Convey("When stepping left from far right of the window", func() {
			v, ok := view.AdjacentVisible(8, -1, nil)

			Convey("Then the last visible item is returned", func() {
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, 2)
			})
		})

		Convey("When stepping right from left of the window", func() {
			v, ok := view.AdjacentVisible(0, +1, nil)

			Convey("Then the first visible item is returned", func() {
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, 1)
			})
		})

		Convey("When stepping away from the window", func() {
			_, okRight := view.AdjacentVisible(8, +1, nil)
			_, okLeft := view.AdjacentVisible(0, -1, nil)

			Convey("Then both miss", func() {
				So(okRight, ShouldBeFalse)
				So(okLeft, ShouldBeFalse)
			})
		})
	})
}
