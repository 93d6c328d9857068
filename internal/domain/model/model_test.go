package model_test

import (
	"encoding/json"
	"testing"

	"github.com/okian/squadform/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSeries(t *testing.T) {
	Convey("Given a series built from four values", t, func() {
		s := model.NewSeries([4]float64{100, 115, 86, 119})

		Convey("Then samples are in period order", func() {
			for i, p := range model.Periods {
				So(s[i].Period, ShouldEqual, p)
			}
			So(s.Value(model.Q3), ShouldEqual, 86)
			So(s.Latest(), ShouldEqual, 119)
			So(s.Mean(), ShouldEqual, 105)
		})

		Convey("Then it encodes quarters by name", func() {
			b, err := json.Marshal(s)
			So(err, ShouldBeNil)
			So(string(b), ShouldEqual,
				`[{"quarter":"Q1","value":100},{"quarter":"Q2","value":115},{"quarter":"Q3","value":86},{"quarter":"Q4","value":119}]`)
		})
	})
}

func TestPeriodText(t *testing.T) {
	Convey("Given period text forms", t, func() {
		var p model.Period
		So(p.UnmarshalText([]byte("q3")), ShouldBeNil)
		So(p, ShouldEqual, model.Q3)
		So(p.UnmarshalText([]byte("Q5")), ShouldNotBeNil)

		_, err := model.Period(7).MarshalText()
		So(err, ShouldNotBeNil)
		So(model.Period(7).String(), ShouldEqual, "Period(7)")
	})
}

func TestTrendOf(t *testing.T) {
	Convey("Given Q3 and Q4 values", t, func() {
		So(model.TrendOf(model.NewSeries([4]float64{100, 115, 86, 119})), ShouldEqual, model.TrendUp)
		So(model.TrendOf(model.NewSeries([4]float64{100, 100, 110, 101})), ShouldEqual, model.TrendDown)
		So(model.TrendOf(model.NewSeries([4]float64{100, 100, 104, 104})), ShouldEqual, model.TrendStable)
	})
}

func TestParsePosition(t *testing.T) {
	Convey("Given position names", t, func() {
		p, err := model.ParsePosition(" Goalkeeper ")
		So(err, ShouldBeNil)
		So(p, ShouldEqual, model.Goalkeeper)

		_, err = model.ParsePosition("libero")
		So(err, ShouldNotBeNil)
	})
}

func TestRounding(t *testing.T) {
	Convey("Given half values", t, func() {
		So(model.RoundHalfUp(2.5), ShouldEqual, 3)
		So(model.RoundHalfUp(-2.5), ShouldEqual, -2)
		So(model.RoundHalfUp(104.207), ShouldEqual, 104)
		So(model.RoundTenth(105.25), ShouldEqual, 105.3)
		So(model.RoundTenth(104.0), ShouldEqual, 104.0)
	})
}

func TestFullName(t *testing.T) {
	Convey("Given a player record", t, func() {
		p := model.PlayerRecord{FirstName: "Ajdin", LastName: "CVIKO"}
		So(p.FullName(), ShouldEqual, "Ajdin CVIKO")
	})
}
