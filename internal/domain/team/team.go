// Package team computes squad-wide views over derived player records.
package team

import (
	"github.com/okian/squadform/internal/domain/model"
)

// Aggregate returns the per-quarter team averages and the best Q4 value per
// metric over non-staff records. A roster without players yields
// ErrEmptyRoster.
func Aggregate(roster []model.PlayerRecord) (model.TeamAggregate, error) {
	var (
		sums    [model.PeriodCount]float64
		players int
	)
	for _, p := range roster {
		if p.IsStaff {
			continue
		}
		players++
		for i, q := range p.Overall {
			sums[i] += q.Value
		}
	}
	if players == 0 {
		return model.TeamAggregate{}, ErrEmptyRoster
	}

	var avgs [model.PeriodCount]float64
	for i := range sums {
		avgs[i] = model.RoundHalfUp(sums[i] / float64(players))
	}

	return model.TeamAggregate{
		QuarterlyAverages: model.NewSeries(avgs),
		BestValues:        BestValues(roster),
	}, nil
}

// BestValues returns the maximum Q4 value per metric key over non-staff
// records. The map is empty when the roster has no players.
func BestValues(roster []model.PlayerRecord) map[string]float64 {
	best := make(map[string]float64)
	for _, p := range roster {
		if p.IsStaff {
			continue
		}
		for key, s := range p.Metrics {
			v := s.Latest()
			if cur, ok := best[key]; !ok || v > cur {
				best[key] = v
			}
		}
	}
	return best
}

// Summarize returns the headline numbers of the team overview: squad and staff
// sizes, the rounded mean of player season averages and the id of the player
// with the highest season average (first in roster order on ties).
func Summarize(roster []model.PlayerRecord) (model.TeamSummary, error) {
	var (
		sum     float64
		summary model.TeamSummary
		top     *model.PlayerRecord
	)
	for i := range roster {
		p := &roster[i]
		if p.IsStaff {
			summary.StaffCount++
			continue
		}
		summary.SquadSize++
		sum += p.SeasonAverage
		if top == nil || p.SeasonAverage > top.SeasonAverage {
			top = p
		}
	}
	if summary.SquadSize == 0 {
		return model.TeamSummary{}, ErrEmptyRoster
	}
	summary.SeasonAverage = model.RoundHalfUp(sum / float64(summary.SquadSize))
	summary.TopPerformer = top.ID
	return summary, nil
}
