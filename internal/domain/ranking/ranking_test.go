package ranking_test

import (
	"errors"
	"testing"

	"github.com/okian/squadform/internal/dataset"
	"github.com/okian/squadform/internal/domain/metric"
	"github.com/okian/squadform/internal/domain/model"
	"github.com/okian/squadform/internal/domain/ranking"
	"github.com/okian/squadform/internal/domain/roster"
	. "github.com/smartystreets/goconvey/convey"
)

func squad() []model.PlayerRecord {
	records, err := roster.Synthesize(dataset.Squad(), metric.Default())
	So(err, ShouldBeNil)
	return records
}

func ids(ranked []model.RankedPlayer) []string {
	out := make([]string, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.Player.ID)
	}
	return out
}

func ranks(ranked []model.RankedPlayer) []int {
	out := make([]int, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.Rank)
	}
	return out
}

func TestTopOverall(t *testing.T) {
	Convey("Given the built-in squad", t, func() {
		records := squad()

		Convey("When asking for the top five", func() {
			top, err := ranking.TopOverall(records, 5)
			So(err, ShouldBeNil)

			Convey("Then the best season averages come first", func() {
				So(ids(top), ShouldResemble, []string{"player-5", "player-2", "player-0", "player-1", "player-7"})
				So(ranks(top), ShouldResemble, []int{1, 2, 3, 4, 5})
				So(top[0].Player.FirstName, ShouldEqual, "Hannah")
			})

			Convey("Then the input is left untouched", func() {
				So(records[0].ID, ShouldEqual, "player-0")
			})
		})

		Convey("When asking for more than the roster holds", func() {
			top, err := ranking.TopOverall(records, 100)
			So(err, ShouldBeNil)

			Convey("Then everyone is returned, ties in roster order with a shared rank", func() {
				So(len(top), ShouldEqual, 12)
				So(ids(top), ShouldResemble, []string{
					"player-5", "player-2", "player-0", "player-1", "player-7",
					"player-6", "player-8",
					"player-3", "player-4", "player-10",
					"player-11", "player-9",
				})
				So(ranks(top), ShouldResemble, []int{1, 2, 3, 4, 5, 6, 6, 7, 7, 7, 8, 9})
			})

			Convey("Then averages never increase", func() {
				for i := 1; i < len(top); i++ {
					So(top[i].Player.SeasonAverage, ShouldBeLessThanOrEqualTo, top[i-1].Player.SeasonAverage)
				}
			})
		})

		Convey("When the limit is not positive", func() {
			_, err := ranking.TopOverall(records, 0)
			So(errors.Is(err, ranking.ErrInvalidLimit), ShouldBeTrue)

			_, err = ranking.TopOverall(records, -3)
			So(errors.Is(err, ranking.ErrInvalidLimit), ShouldBeTrue)
		})
	})

	Convey("Given a staff member with the highest season average", t, func() {
		records, err := roster.Synthesize([]model.RawPlayerInput{
			{FirstName: "A", LastName: "B", Position: "forward", Quarters: []float64{100, 100, 100, 100}},
			{FirstName: "Marko", LastName: "TRAINER", IsStaff: true, Quarters: []float64{150, 150, 150, 150}},
			{FirstName: "C", LastName: "D", Position: "defender", Quarters: []float64{110, 110, 110, 110}},
		}, metric.Default())
		So(err, ShouldBeNil)

		Convey("Then the ranking holds players only", func() {
			top, err := ranking.TopOverall(records, 5)
			So(err, ShouldBeNil)
			So(ids(top), ShouldResemble, []string{"player-2", "player-0"})
			So(ranks(top), ShouldResemble, []int{1, 2})
		})
	})

	Convey("Given only staff", t, func() {
		records, err := roster.Synthesize([]model.RawPlayerInput{
			{FirstName: "Marko", LastName: "TRAINER", IsStaff: true, Quarters: []float64{100, 100, 100, 100}},
		}, metric.Default())
		So(err, ShouldBeNil)

		top, err := ranking.TopOverall(records, 5)
		So(err, ShouldBeNil)
		So(top, ShouldBeEmpty)
	})

	Convey("Given an empty roster", t, func() {
		top, err := ranking.TopOverall(nil, 5)
		So(err, ShouldBeNil)
		So(top, ShouldBeEmpty)
	})
}

func TestLeaderFor(t *testing.T) {
	Convey("Given the built-in squad", t, func() {
		records := squad()

		Convey("When looking up the speed leader", func() {
			p, err := ranking.LeaderFor(records, "speed")
			So(err, ShouldBeNil)
			So(p.ID, ShouldEqual, "player-2")
			So(p.Metrics["speed"].Latest(), ShouldEqual, 121.0)
		})

		Convey("When looking up an unknown metric", func() {
			_, err := ranking.LeaderFor(records, "agility")
			So(errors.Is(err, ranking.ErrUnknownMetric), ShouldBeTrue)
		})
	})

	Convey("Given two players tied on Q4", t, func() {
		records, err := roster.Synthesize([]model.RawPlayerInput{
			{FirstName: "A", LastName: "B", Position: "forward", Quarters: []float64{100, 100, 100, 110}},
			{FirstName: "C", LastName: "D", Position: "forward", Quarters: []float64{100, 100, 100, 110}},
		}, metric.Default())
		So(err, ShouldBeNil)
		// Align the synthetic series so both players share the same Q4 speed.
		records[1].Metrics = records[0].Metrics

		Convey("Then the first in roster order wins", func() {
			p, err := ranking.LeaderFor(records, "speed")
			So(err, ShouldBeNil)
			So(p.ID, ShouldEqual, "player-0")
		})
	})

	Convey("Given a staff member with the highest score", t, func() {
		records, err := roster.Synthesize([]model.RawPlayerInput{
			{FirstName: "A", LastName: "B", Position: "forward", Quarters: []float64{100, 100, 100, 100}},
			{FirstName: "Marko", LastName: "TRAINER", IsStaff: true, Quarters: []float64{200, 200, 200, 200}},
		}, metric.Default())
		So(err, ShouldBeNil)

		Convey("Then staff are never leaders", func() {
			p, err := ranking.LeaderFor(records, "speed")
			So(err, ShouldBeNil)
			So(p.ID, ShouldEqual, "player-0")
		})
	})

	Convey("Given only staff", t, func() {
		records, err := roster.Synthesize([]model.RawPlayerInput{
			{FirstName: "Marko", LastName: "TRAINER", IsStaff: true, Quarters: []float64{100, 100, 100, 100}},
		}, metric.Default())
		So(err, ShouldBeNil)

		Convey("Then there is no eligible player", func() {
			_, err := ranking.LeaderFor(records, "speed")
			So(errors.Is(err, ranking.ErrNoEligiblePlayers), ShouldBeTrue)
		})
	})
}

func TestLeaders(t *testing.T) {
	Convey("Given the built-in squad", t, func() {
		records := squad()
		reg := metric.Default()

		Convey("When listing all leaders", func() {
			leaders, err := ranking.Leaders(records, reg)
			So(err, ShouldBeNil)

			Convey("Then there is one per metric in registry order", func() {
				So(len(leaders), ShouldEqual, reg.Len())
				for i, key := range reg.Keys() {
					So(leaders[i].Metric, ShouldEqual, key)
					So(leaders[i].Value, ShouldEqual, leaders[i].Player.Metrics[key].Latest())
				}
			})

			Convey("Then known leaders are found", func() {
				So(leaders[0].Player.ID, ShouldEqual, "player-2")
				So(leaders[0].Value, ShouldEqual, 121.0)
				So(leaders[1].Player.ID, ShouldEqual, "player-0")
				So(leaders[1].Value, ShouldEqual, 123.0)
			})
		})
	})

	Convey("Given an empty roster", t, func() {
		_, err := ranking.Leaders(nil, metric.Default())
		So(errors.Is(err, ranking.ErrNoEligiblePlayers), ShouldBeTrue)
	})
}
