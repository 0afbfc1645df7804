package rank_test

import (
	"errors"
	"testing"

	"github.com/jvolf/kifu/internal/domain/rank"
	"github.com/smartystreets/goconvey/convey"
)

func TestGradeLadder(t *testing.T) {
	convey.Convey("Given the kyu/dan ladder", t, func() {
		convey.Convey("Then dan grades sit above kyu grades", func() {
			convey.So(rank.Dan(1), convey.ShouldBeGreaterThan, rank.Kyu(1))
			convey.So(rank.Kyu(1), convey.ShouldBeGreaterThan, rank.Kyu(2))
			convey.So(rank.Dan(2), convey.ShouldBeGreaterThan, rank.Dan(1))
		})

		convey.Convey("Then the zero value is Unknown", func() {
			var g rank.Grade
			convey.So(g.IsUnknown(), convey.ShouldBeTrue)
			convey.So(rank.Kyu(5).IsUnknown(), convey.ShouldBeFalse)
		})

		convey.Convey("Then IsDan splits the ladder at shodan", func() {
			convey.So(rank.Dan(1).IsDan(), convey.ShouldBeTrue)
			convey.So(rank.Kyu(1).IsDan(), convey.ShouldBeFalse)
		})
	})
}

func TestGradeRating(t *testing.T) {
	convey.Convey("Given the rating anchors", t, func() {
		convey.Convey("Then shodan anchors at 2100 with 100-point steps", func() {
			convey.So(rank.Dan(1).Rating(), convey.ShouldEqual, 2100)
			convey.So(rank.Dan(3).Rating(), convey.ShouldEqual, 2300)
			convey.So(rank.Kyu(1).Rating(), convey.ShouldEqual, 2000)
			convey.So(rank.Kyu(10).Rating(), convey.ShouldEqual, 1100)
		})

		convey.Convey("Then deep kyu anchors clamp at the minimum", func() {
			convey.So(rank.Kyu(30).Rating(), convey.ShouldEqual, 100)
			convey.So(rank.Kyu(25).Rating(), convey.ShouldEqual, 100)
		})

		convey.Convey("Then Unknown has no anchor", func() {
			convey.So(rank.Unknown.Rating(), convey.ShouldEqual, 0)
		})

		convey.Convey("Then floors sit one band below the anchor", func() {
			convey.So(rank.Dan(1).Floor(100), convey.ShouldEqual, 2000)
			convey.So(rank.Kyu(30).Floor(100), convey.ShouldEqual, 100)
			convey.So(rank.Unknown.Floor(100), convey.ShouldEqual, 0)
		})
	})
}

func TestGradeText(t *testing.T) {
	convey.Convey("Given the textual grade forms", t, func() {
		convey.Convey("When rendering", func() {
			convey.So(rank.Kyu(5).String(), convey.ShouldEqual, "5k")
			convey.So(rank.Dan(2).String(), convey.ShouldEqual, "2d")
			convey.So(rank.Unknown.String(), convey.ShouldEqual, "?")
		})

		convey.Convey("When parsing valid inputs", func() {
			for input, want := range map[string]rank.Grade{
				"5k":    rank.Kyu(5),
				"5 kyu": rank.Kyu(5),
				"2d":    rank.Dan(2),
				"2 Dan": rank.Dan(2),
				"?":     rank.Unknown,
				"":      rank.Unknown,
			} {
				g, err := rank.Parse(input)
				convey.So(err, convey.ShouldBeNil)
				convey.So(g, convey.ShouldEqual, want)
			}
		})

		convey.Convey("When parsing invalid inputs", func() {
			for _, input := range []string{"banana", "0k", "31k", "10d", "xd"} {
				_, err := rank.Parse(input)
				convey.So(errors.Is(err, rank.ErrBadGrade), convey.ShouldBeTrue)
			}
		})

		convey.Convey("Then parse round-trips the short form", func() {
			for _, g := range []rank.Grade{rank.Kyu(15), rank.Kyu(1), rank.Dan(1), rank.Dan(9)} {
				parsed, err := rank.Parse(g.String())
				convey.So(err, convey.ShouldBeNil)
				convey.So(parsed, convey.ShouldEqual, g)
			}
		})
	})
}
