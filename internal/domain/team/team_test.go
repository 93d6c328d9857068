package team_test

import (
	"errors"
	"testing"

	"github.com/okian/squadform/internal/dataset"
	"github.com/okian/squadform/internal/domain/metric"
	"github.com/okian/squadform/internal/domain/model"
	"github.com/okian/squadform/internal/domain/roster"
	"github.com/okian/squadform/internal/domain/team"
	. "github.com/smartystreets/goconvey/convey"
)

func synth(raw []model.RawPlayerInput) []model.PlayerRecord {
	records, err := roster.Synthesize(raw, metric.Default())
	So(err, ShouldBeNil)
	return records
}

func averages(a model.TeamAggregate) []float64 {
	out := make([]float64, 0, model.PeriodCount)
	for _, q := range a.QuarterlyAverages {
		out = append(out, q.Value)
	}
	return out
}

func TestAggregate(t *testing.T) {
	Convey("Given the built-in squad", t, func() {
		records := synth(dataset.Squad())

		Convey("When aggregating", func() {
			agg, err := team.Aggregate(records)
			So(err, ShouldBeNil)

			Convey("Then quarterly averages round half up", func() {
				// Q3 mean is exactly 93.5.
				So(averages(agg), ShouldResemble, []float64{100, 111, 94, 113})
				So(agg.QuarterlyAverages[model.Q3].Period, ShouldEqual, model.Q3)
			})

			Convey("Then every metric has a best value", func() {
				So(len(agg.BestValues), ShouldEqual, 6)
				So(agg.BestValues["speed"], ShouldEqual, 121.0)
			})

			Convey("Then each best value is the max Q4 over players", func() {
				for key, best := range agg.BestValues {
					for _, p := range records {
						So(p.Metrics[key].Latest(), ShouldBeLessThanOrEqualTo, best)
					}
				}
			})
		})
	})

	Convey("Given a single player", t, func() {
		records := synth([]model.RawPlayerInput{{
			FirstName: "Ajdin", LastName: "CVIKO", Position: "midfield",
			Quarters: []float64{100, 115, 86, 119},
		}})

		Convey("Then averages equal the player's series", func() {
			agg, err := team.Aggregate(records)
			So(err, ShouldBeNil)
			So(averages(agg), ShouldResemble, []float64{100, 115, 86, 119})
			So(agg.BestValues["speed"], ShouldEqual, 119.0)
			So(agg.BestValues["technique"], ShouldEqual, 123.0)
		})
	})

	Convey("Given a roster with staff", t, func() {
		records := synth([]model.RawPlayerInput{
			{FirstName: "Ajdin", LastName: "CVIKO", Position: "midfield", Quarters: []float64{100, 115, 86, 119}},
			{FirstName: "Marko", LastName: "TRAINER", IsStaff: true, Quarters: []float64{100, 100, 100, 200}},
		})

		Convey("Then staff count toward neither averages nor best values", func() {
			agg, err := team.Aggregate(records)
			So(err, ShouldBeNil)
			So(averages(agg), ShouldResemble, []float64{100, 115, 86, 119})
			So(agg.BestValues["speed"], ShouldEqual, 119.0)
		})
	})

	Convey("Given only staff", t, func() {
		records := synth([]model.RawPlayerInput{
			{FirstName: "Marko", LastName: "TRAINER", IsStaff: true, Quarters: []float64{100, 100, 100, 100}},
		})

		Convey("Then there is nothing to aggregate", func() {
			_, err := team.Aggregate(records)
			So(errors.Is(err, team.ErrEmptyRoster), ShouldBeTrue)
			So(team.BestValues(records), ShouldBeEmpty)
		})
	})

	Convey("Given an empty roster", t, func() {
		_, err := team.Aggregate(nil)
		So(errors.Is(err, team.ErrEmptyRoster), ShouldBeTrue)
	})
}

func TestSummarize(t *testing.T) {
	Convey("Given the built-in squad", t, func() {
		records := synth(dataset.Squad())

		Convey("When summarizing", func() {
			s, err := team.Summarize(records)
			So(err, ShouldBeNil)

			Convey("Then it reports size, average and top performer", func() {
				So(s.SquadSize, ShouldEqual, 12)
				So(s.StaffCount, ShouldEqual, 1)
				So(s.SeasonAverage, ShouldEqual, 104.0)
				So(s.TopPerformer, ShouldEqual, "player-5")
			})
		})
	})

	Convey("Given a roster with staff", t, func() {
		records := synth([]model.RawPlayerInput{
			{FirstName: "A", LastName: "B", Position: "forward", Quarters: []float64{100, 100, 100, 100}},
			{FirstName: "C", LastName: "D", Position: "defender", Quarters: []float64{100, 100, 100, 100}},
			{FirstName: "Marko", LastName: "TRAINER", IsStaff: true, Quarters: []float64{200, 200, 200, 200}},
		})

		Convey("Then staff are counted separately and ties keep roster order", func() {
			s, err := team.Summarize(records)
			So(err, ShouldBeNil)
			So(s.SquadSize, ShouldEqual, 2)
			So(s.StaffCount, ShouldEqual, 1)
			So(s.SeasonAverage, ShouldEqual, 100.0)
			So(s.TopPerformer, ShouldEqual, "player-0")
		})
	})

	Convey("Given no players", t, func() {
		_, err := team.Summarize(nil)
		So(errors.Is(err, team.ErrEmptyRoster), ShouldBeTrue)
	})
}
