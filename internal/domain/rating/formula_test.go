package rating_test

import (
	"math"
	"testing"

	"github.com/jvolf/kifu/internal/domain/rating"
	"github.com/smartystreets/goconvey/convey"
)

const eps = 1e-9

func TestExpectedScore(t *testing.T) {
	convey.Convey("Given the expected-score curve", t, func() {
		f := rating.NewFormula()

		convey.Convey("Then equal ratings expect an even game", func() {
			convey.So(f.Expected(1500, 1500), convey.ShouldAlmostEqual, 0.5, eps)
		})

		convey.Convey("Then a 400-point edge expects about 10:1", func() {
			convey.So(f.Expected(1900, 1500), convey.ShouldAlmostEqual, 10.0/11.0, eps)
		})

		convey.Convey("Then the curve is complementary", func() {
			convey.So(f.Expected(1700, 1520)+f.Expected(1520, 1700), convey.ShouldAlmostEqual, 1.0, eps)
		})
	})
}

func TestDelta(t *testing.T) {
	convey.Convey("Given the per-match delta", t, func() {
		f := rating.NewFormula(rating.WithKFactor(32))

		convey.Convey("Then an even win moves half the step size", func() {
			convey.So(f.Delta(1500, 1500, 1, 1), convey.ShouldAlmostEqual, 16, eps)
			convey.So(f.Delta(1500, 1500, 0, 1), convey.ShouldAlmostEqual, -16, eps)
			convey.So(f.Delta(1500, 1500, 0.5, 1), convey.ShouldAlmostEqual, 0, eps)
		})

		convey.Convey("Then the two sides move by equal and opposite amounts", func() {
			da := f.Delta(1620, 1480, 1, 1)
			db := f.Delta(1480, 1620, 0, 1)
			convey.So(da+db, convey.ShouldAlmostEqual, 0, eps)
		})

		convey.Convey("Then upsets pay more than expected wins", func() {
			upset := f.Delta(1400, 1800, 1, 1)
			expected := f.Delta(1800, 1400, 1, 1)
			convey.So(upset, convey.ShouldBeGreaterThan, expected)
		})

		convey.Convey("Then a zero factor yields a zero delta", func() {
			convey.So(f.Delta(1400, 1800, 1, 0), convey.ShouldEqual, 0)
		})

		convey.Convey("Then the delta never exceeds the step size", func() {
			convey.So(math.Abs(f.Delta(100, 3000, 1, 1)), convey.ShouldBeLessThanOrEqualTo, 32)
		})
	})
}

func TestUpdate(t *testing.T) {
	convey.Convey("Given the update functions", t, func() {
		f := rating.NewFormula(
			rating.WithKFactor(32),
			rating.WithProvisionalKFactor(64),
		)

		convey.Convey("Then Update applies the delta", func() {
			convey.So(f.Update(1500, 1500, 1, 1), convey.ShouldAlmostEqual, 1516, eps)
		})

		convey.Convey("Then the provisional update converges twice as fast", func() {
			convey.So(f.UpdateProvisional(1500, 1500, 1, 1), convey.ShouldAlmostEqual, 1532, eps)
		})

		convey.Convey("Then non-positive option values are ignored", func() {
			g := rating.NewFormula(rating.WithKFactor(-5))
			convey.So(g.Update(1500, 1500, 1, 1), convey.ShouldAlmostEqual, 1516, eps)
		})
	})
}
