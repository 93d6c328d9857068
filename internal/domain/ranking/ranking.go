// Package ranking orders derived player records into leaderboards.
package ranking

import (
	"fmt"
	"sort"

	"github.com/okian/squadform/internal/domain/metric"
	"github.com/okian/squadform/internal/domain/model"
)

// TopOverall returns the n best records by season average, highest first.
// Equal averages keep roster order and share a display rank. An n larger than
// the number of players returns all of them. Staff are never ranked.
func TopOverall(roster []model.PlayerRecord, n int) ([]model.RankedPlayer, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, n)
	}

	sorted := make([]model.PlayerRecord, 0, len(roster))
	for _, p := range roster {
		if !p.IsStaff {
			sorted = append(sorted, p)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SeasonAverage > sorted[j].SeasonAverage
	})
	if n > len(sorted) {
		n = len(sorted)
	}

	out := make([]model.RankedPlayer, n)
	for i := range out {
		out[i].Player = sorted[i]
	}
	assignRanksWithTies(out)
	return out, nil
}

// assignRanksWithTies gives consecutive ranks to distinct averages; entries
// with the same average share a rank (1, 2, 2, 3).
func assignRanksWithTies(entries []model.RankedPlayer) {
	currentRank := 0
	for i := range entries {
		if i == 0 || entries[i].Player.SeasonAverage != entries[i-1].Player.SeasonAverage {
			currentRank++
		}
		entries[i].Rank = currentRank
	}
}

// LeaderFor returns the non-staff record with the highest Q4 value for key.
// The first record in roster order wins ties.
func LeaderFor(roster []model.PlayerRecord, key string) (model.PlayerRecord, error) {
	var (
		leader model.PlayerRecord
		best   float64
		found  bool
	)
	for _, p := range roster {
		if p.IsStaff {
			continue
		}
		s, ok := p.Metrics[key]
		if !ok {
			return model.PlayerRecord{}, fmt.Errorf("%w: %q", ErrUnknownMetric, key)
		}
		if v := s.Latest(); !found || v > best {
			leader, best, found = p, v, true
		}
	}
	if !found {
		return model.PlayerRecord{}, ErrNoEligiblePlayers
	}
	return leader, nil
}

// Leaders returns the leader of every registry metric, in registry order.
func Leaders(roster []model.PlayerRecord, reg *metric.Registry) ([]model.MetricLeader, error) {
	keys := reg.Keys()
	out := make([]model.MetricLeader, 0, len(keys))
	for _, key := range keys {
		p, err := LeaderFor(roster, key)
		if err != nil {
			return nil, err
		}
		out = append(out, model.MetricLeader{Metric: key, Value: p.Metrics[key].Latest(), Player: p})
	}
	return out, nil
}
