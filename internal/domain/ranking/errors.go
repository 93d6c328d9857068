package ranking

import (
	"errors"

	"github.com/okian/squadform/internal/domain/metric"
)

var (
	// ErrNoEligiblePlayers is returned when a roster has no non-staff records.
	ErrNoEligiblePlayers = errors.New("no eligible players")
	// ErrInvalidLimit is returned for a non-positive leaderboard size.
	ErrInvalidLimit = errors.New("invalid limit")
	// ErrUnknownMetric is returned when a metric key has no series.
	ErrUnknownMetric = metric.ErrUnknownMetric
)
