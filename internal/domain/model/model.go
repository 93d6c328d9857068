// Package model contains the domain entities shared between the derivation
// packages, the service layer and the HTTP adapters.
package model

import (
	"fmt"
	"strings"
)

// Period identifies one quarter of the season.
type Period int

// Quarters in season order.
const (
	Q1 Period = iota
	Q2
	Q3
	Q4
)

// PeriodCount is the number of samples in every series.
const PeriodCount = 4

// Periods lists all quarters in order.
var Periods = [PeriodCount]Period{Q1, Q2, Q3, Q4}

func (p Period) String() string {
	if p < Q1 || p > Q4 {
		return fmt.Sprintf("Period(%d)", int(p))
	}
	return fmt.Sprintf("Q%d", int(p)+1)
}

// MarshalText encodes the period as "Q1".."Q4".
func (p Period) MarshalText() ([]byte, error) {
	if p < Q1 || p > Q4 {
		return nil, fmt.Errorf("invalid period %d", int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText parses "Q1".."Q4" (case-insensitive).
func (p *Period) UnmarshalText(b []byte) error {
	switch strings.ToUpper(strings.TrimSpace(string(b))) {
	case "Q1":
		*p = Q1
	case "Q2":
		*p = Q2
	case "Q3":
		*p = Q3
	case "Q4":
		*p = Q4
	default:
		return fmt.Errorf("invalid period %q", string(b))
	}
	return nil
}

// QuarterSample is one percentage score for one quarter.
type QuarterSample struct {
	Period Period  `json:"quarter"`
	Value  float64 `json:"value"`
}

// Series holds exactly one sample per quarter, in period order.
type Series [PeriodCount]QuarterSample

// NewSeries builds a series from four values in period order.
func NewSeries(values [PeriodCount]float64) Series {
	var s Series
	for i, p := range Periods {
		s[i] = QuarterSample{Period: p, Value: values[i]}
	}
	return s
}

// Value returns the sample value for period p.
func (s Series) Value(p Period) float64 { return s[p].Value }

// Latest returns the Q4 value.
func (s Series) Latest() float64 { return s[Q4].Value }

// Mean returns the unrounded mean of the four values.
func (s Series) Mean() float64 {
	var sum float64
	for _, q := range s {
		sum += q.Value
	}
	return sum / PeriodCount
}

// Position is a squad role.
type Position string

// Known positions.
const (
	Midfield   Position = "midfield"
	Goalkeeper Position = "goalkeeper"
	Defender   Position = "defender"
	Forward    Position = "forward"
	Coach      Position = "coach"
)

// ParsePosition maps a case-insensitive name to a Position.
func ParsePosition(s string) (Position, error) {
	switch p := Position(strings.ToLower(strings.TrimSpace(s))); p {
	case Midfield, Goalkeeper, Defender, Forward, Coach:
		return p, nil
	default:
		return "", fmt.Errorf("unknown position %q", s)
	}
}

// Trend describes the direction between Q3 and Q4.
type Trend string

// Trend directions.
const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// TrendOf compares the last two quarters.
func TrendOf(s Series) Trend {
	switch last, prev := s.Value(Q4), s.Value(Q3); {
	case last > prev:
		return TrendUp
	case last < prev:
		return TrendDown
	default:
		return TrendStable
	}
}

// RawPlayerInput is one row of the squad table before synthesis.
type RawPlayerInput struct {
	FirstName string    `json:"first_name" koanf:"first_name"`
	LastName  string    `json:"last_name" koanf:"last_name"`
	Position  string    `json:"position" koanf:"position"`
	IsStaff   bool      `json:"is_staff" koanf:"is_staff"`
	Quarters  []float64 `json:"quarters" koanf:"quarters"`
}

// PlayerRecord is a fully derived squad member. Records are built once and
// never mutated afterwards.
type PlayerRecord struct {
	ID            string            `json:"id"`
	FirstName     string            `json:"first_name"`
	LastName      string            `json:"last_name"`
	Position      Position          `json:"position"`
	IsStaff       bool              `json:"is_staff"`
	Overall       Series            `json:"overall"`
	Metrics       map[string]Series `json:"metrics,omitempty"`
	SeasonAverage float64           `json:"season_average"`
	Trend         Trend             `json:"trend"`
}

// FullName returns "First LAST".
func (p PlayerRecord) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// TeamAggregate holds the team-wide per-quarter means and per-metric best Q4 values.
type TeamAggregate struct {
	QuarterlyAverages Series             `json:"quarterly_averages"`
	BestValues        map[string]float64 `json:"best_values"`
}

// TeamSummary is the headline block of the team overview.
type TeamSummary struct {
	SquadSize     int     `json:"squad_size"`
	StaffCount    int     `json:"staff_count"`
	SeasonAverage float64 `json:"season_average"`
	TopPerformer  string  `json:"top_performer_id"`
}

// RankedPlayer is one row of the overall ranking.
type RankedPlayer struct {
	Rank   int          `json:"rank"`
	Player PlayerRecord `json:"player"`
}

// MetricLeader is the best non-staff player for one metric.
type MetricLeader struct {
	Metric string       `json:"metric"`
	Value  float64      `json:"value"`
	Player PlayerRecord `json:"player"`
}

// TeamOverview is the team page: identity, aggregate views and summary.
type TeamOverview struct {
	Name      string        `json:"name"`
	Season    string        `json:"season"`
	Aggregate TeamAggregate `json:"aggregate"`
	Summary   TeamSummary   `json:"summary"`
}
