// Package roster turns raw squad rows into derived player records.
package roster

import (
	"math"
	"strconv"
	"strings"

	"github.com/okian/squadform/internal/domain/metric"
	"github.com/okian/squadform/internal/domain/model"
)

const (
	idPrefix        = "player-"
	wobbleAmplitude = 5
)

// Synthesize validates raw and derives one record per row, in input order.
// Either every row is valid and the full roster is returned, or nothing is.
func Synthesize(raw []model.RawPlayerInput, reg *metric.Registry) ([]model.PlayerRecord, error) {
	out := make([]model.PlayerRecord, 0, len(raw))
	for i, in := range raw {
		rec, err := synthesizeOne(i, in, reg)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func synthesizeOne(index int, in model.RawPlayerInput, reg *metric.Registry) (model.PlayerRecord, error) {
	first := strings.TrimSpace(in.FirstName)
	last := strings.TrimSpace(in.LastName)
	if first == "" {
		return model.PlayerRecord{}, invalid(index, "first_name", "must not be empty")
	}
	if last == "" {
		return model.PlayerRecord{}, invalid(index, "last_name", "must not be empty")
	}

	pos, err := position(index, in)
	if err != nil {
		return model.PlayerRecord{}, err
	}

	if len(in.Quarters) != model.PeriodCount {
		return model.PlayerRecord{}, invalid(index, "quarters", "want %d values, got %d", model.PeriodCount, len(in.Quarters))
	}
	var values [model.PeriodCount]float64
	for q, v := range in.Quarters {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return model.PlayerRecord{}, invalid(index, "quarters", "%s is not a finite number", model.Periods[q])
		}
		values[q] = v
	}
	overall := model.NewSeries(values)

	rec := model.PlayerRecord{
		ID:            idPrefix + strconv.Itoa(index),
		FirstName:     first,
		LastName:      last,
		Position:      pos,
		IsStaff:       in.IsStaff,
		Overall:       overall,
		SeasonAverage: model.RoundTenth(overall.Mean()),
		Trend:         model.TrendOf(overall),
	}
	if !in.IsStaff {
		rec.Metrics = metricSeries(index, overall, reg)
	}
	return rec, nil
}

func position(index int, in model.RawPlayerInput) (model.Position, error) {
	if strings.TrimSpace(in.Position) == "" {
		if in.IsStaff {
			return model.Coach, nil
		}
		return "", invalid(index, "position", "must be set for players")
	}
	pos, err := model.ParsePosition(in.Position)
	if err != nil {
		return "", invalid(index, "position", "%v", err)
	}
	return pos, nil
}

// metricSeries derives the synthetic per-metric series: every quarter value is
// offset by sin(rosterIndex+metricIndex)*5 and rounded. These are not
// measurements; the same inputs always give the same series.
func metricSeries(index int, overall model.Series, reg *metric.Registry) map[string]model.Series {
	out := make(map[string]model.Series, reg.Len())
	for m, key := range reg.Keys() {
		out[key] = Wobble(overall, index, m)
	}
	return out
}

// Wobble applies the deterministic offset for (rosterIndex, metricIndex).
func Wobble(overall model.Series, rosterIndex, metricIndex int) model.Series {
	offset := math.Sin(float64(rosterIndex+metricIndex)) * wobbleAmplitude
	var s model.Series
	for i, q := range overall {
		s[i] = model.QuarterSample{Period: q.Period, Value: model.RoundHalfUp(q.Value + offset)}
	}
	return s
}

// Counts returns the number of players and staff in records.
func Counts(records []model.PlayerRecord) (players, staff int) {
	for _, r := range records {
		if r.IsStaff {
			staff++
		} else {
			players++
		}
	}
	return players, staff
}
