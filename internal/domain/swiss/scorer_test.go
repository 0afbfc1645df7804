package swiss_test

import (
	"testing"
	"time"

	"github.com/jvolf/kifu/internal/domain/model"
	"github.com/jvolf/kifu/internal/domain/swiss"
	"github.com/smartystreets/goconvey/convey"
)

var t0 = time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)

func game(id string, round int, a, b model.PlayerID, sa, sb float64) model.Match {
	m := model.NewMatch(id, t0.Add(time.Duration(round)*time.Hour), a, b, sa, sb)
	m.Tournament = "open"
	m.Round = round
	return m
}

func byRank(rows []swiss.PlayerScore) map[model.PlayerID]*swiss.PlayerScore {
	out := make(map[model.PlayerID]*swiss.PlayerScore, len(rows))
	for i := range rows {
		out[rows[i].Player] = &rows[i]
	}
	return out
}

func TestScoreTallies(t *testing.T) {
	convey.Convey("Given a two-round tournament with a draw", t, func() {
		matches := []model.Match{
			game("g-1", 1, "a", "b", 2, 1),
			game("g-2", 1, "c", "d", 1, 1),
			game("g-3", 2, "a", "c", 3, 0),
			game("g-4", 2, "b", "d", 2, 0),
		}

		scores, err := swiss.Score(matches)
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("Then wins count outright and draws count half", func() {
			convey.So(scores["a"].Wins, convey.ShouldEqual, 2)
			convey.So(scores["a"].WinCount, convey.ShouldEqual, 2)
			convey.So(scores["c"].Wins, convey.ShouldEqual, 0.5)
			convey.So(scores["c"].Draws, convey.ShouldEqual, 1)
			convey.So(scores["d"].Wins, convey.ShouldEqual, 0.5)
			convey.So(scores["d"].Losses, convey.ShouldEqual, 1)
		})

		convey.Convey("Then points accumulate from the player's perspective", func() {
			convey.So(scores["a"].PointsFor, convey.ShouldEqual, 5)
			convey.So(scores["a"].PointsAgainst, convey.ShouldEqual, 1)
		})

		convey.Convey("Then SOS sums the opponents' Swiss scores", func() {
			// a played b (1 win) and c (0.5).
			convey.So(scores["a"].SOS, convey.ShouldEqual, 1.5)
			// b played a (2) and d (0.5).
			convey.So(scores["b"].SOS, convey.ShouldEqual, 2.5)
		})

		convey.Convey("Then SOSOS sums the opponents' SOS", func() {
			// b's SOS is 2.5, c's SOS is 2.5 (a 2, d 0.5).
			convey.So(scores["a"].SOSOS, convey.ShouldEqual, 5)
		})

		convey.Convey("Then a malformed match refuses the whole tournament", func() {
			bad := append(matches, game("g-5", 3, "a", "a", 1, 0))
			_, err := swiss.Score(bad)
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}

func TestByes(t *testing.T) {
	convey.Convey("Given a player with a bye win", t, func() {
		matches := []model.Match{
			game("g-1", 1, "a", "b", 1, 0),
			game("g-2", 1, "c", "", 1, 0),
			game("g-3", 2, "a", "c", 1, 0),
		}

		scores, err := swiss.Score(matches)
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("Then the bye counts as a win without an opponent", func() {
			convey.So(scores["c"].Wins, convey.ShouldEqual, 1)
			convey.So(len(scores["c"].Opponents), convey.ShouldEqual, 1)
		})

		convey.Convey("Then the bye never inflates an opponent's SOS", func() {
			// a's SOS counts b (0) and c (1): the bye itself added no
			// phantom opponent score.
			convey.So(scores["a"].SOS, convey.ShouldEqual, 1)
		})
	})
}

func TestSharedFirstPlace(t *testing.T) {
	convey.Convey("Given three undefeated players and one punching bag", t, func() {
		matches := []model.Match{
			game("g-1", 1, "a", "d", 1, 0),
			game("g-2", 2, "b", "d", 1, 0),
			game("g-3", 3, "c", "d", 1, 0),
		}

		rows, err := swiss.Standings(matches)
		convey.So(err, convey.ShouldBeNil)
		ranks := byRank(rows)

		convey.Convey("Then every undefeated player shares first place", func() {
			convey.So(ranks["a"].Position, convey.ShouldEqual, 1)
			convey.So(ranks["b"].Position, convey.ShouldEqual, 1)
			convey.So(ranks["c"].Position, convey.ShouldEqual, 1)
		})

		convey.Convey("Then numbering continues from the true index", func() {
			convey.So(ranks["d"].Position, convey.ShouldEqual, 4)
		})
	})
}

func TestDefeatedTieBreaks(t *testing.T) {
	convey.Convey("Given a 2-0 winner over two symmetric 1-1 players", t, func() {
		matches := []model.Match{
			game("g-1", 1, "a", "b", 1, 0),
			game("g-2", 1, "c", "d", 1, 0),
			game("g-3", 2, "a", "c", 1, 0),
			game("g-4", 2, "b", "d", 1, 0),
		}

		rows, err := swiss.Standings(matches)
		convey.So(err, convey.ShouldBeNil)
		ranks := byRank(rows)

		convey.Convey("Then the undefeated winner stands alone at the top", func() {
			convey.So(ranks["a"].Position, convey.ShouldEqual, 1)
			convey.So(ranks["a"].Undefeated(), convey.ShouldBeTrue)
		})

		convey.Convey("Then the symmetric 1-1 players share a position", func() {
			convey.So(ranks["b"].Position, convey.ShouldEqual, 2)
			convey.So(ranks["c"].Position, convey.ShouldEqual, 2)
			convey.So(ranks["d"].Position, convey.ShouldEqual, 4)
		})
	})

	convey.Convey("Given no undefeated player at all", t, func() {
		matches := []model.Match{
			game("g-1", 1, "a", "b", 1, 0),
			game("g-2", 2, "b", "a", 1, 0),
			game("g-3", 3, "a", "b", 1, 0),
		}

		rows, err := swiss.Standings(matches)
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("Then the best defeated player takes position one", func() {
			convey.So(rows[0].Player, convey.ShouldEqual, model.PlayerID("a"))
			convey.So(rows[0].Position, convey.ShouldEqual, 1)
			convey.So(rows[0].Undefeated(), convey.ShouldBeFalse)
			convey.So(rows[1].Position, convey.ShouldEqual, 2)
		})
	})
}

func TestStandingsDeterminism(t *testing.T) {
	convey.Convey("Given fully tied players", t, func() {
		// Two disjoint pairs with identical outcomes: both winners and
		// both losers are indistinguishable up to the name tie-break.
		matches := []model.Match{
			game("g-1", 1, "w1", "l1", 1, 0),
			game("g-2", 1, "w2", "l2", 1, 0),
		}

		convey.Convey("When using the name tie-break", func() {
			name := func(id model.PlayerID) string {
				return map[model.PlayerID]string{
					"w1": "Zoe", "w2": "Ann", "l1": "Bob", "l2": "Cid",
				}[id]
			}
			rows, err := swiss.Standings(matches, swiss.WithNamer(name))
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then order is deterministic by display name", func() {
				convey.So(rows[0].Player, convey.ShouldEqual, model.PlayerID("w2"))
				convey.So(rows[1].Player, convey.ShouldEqual, model.PlayerID("w1"))
				convey.So(rows[2].Player, convey.ShouldEqual, model.PlayerID("l1"))
				convey.So(rows[3].Player, convey.ShouldEqual, model.PlayerID("l2"))
			})

			convey.Convey("And both undefeated winners share first", func() {
				convey.So(rows[0].Position, convey.ShouldEqual, 1)
				convey.So(rows[1].Position, convey.ShouldEqual, 1)
				convey.So(rows[2].Position, convey.ShouldEqual, 3)
				convey.So(rows[3].Position, convey.ShouldEqual, 3)
			})
		})
	})
}
