package repository

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/okian/squadform/internal/domain/metric"
	"github.com/okian/squadform/internal/domain/model"
	"github.com/okian/squadform/internal/domain/ranking"
	"github.com/okian/squadform/internal/domain/roster"
	"github.com/okian/squadform/internal/domain/team"
	"github.com/okian/squadform/pkg/logger"
	"github.com/okian/squadform/pkg/metrics"
)

// Snapshot is an immutable view of the squad and everything derived from it.
// Readers must not modify the slices or maps it exposes.
type Snapshot struct {
	Registry  *metric.Registry
	Players   []model.PlayerRecord
	Aggregate model.TeamAggregate
	Summary   model.TeamSummary
	Ranking   []model.RankedPlayer // non-staff, rank order
	Leaders   []model.MetricLeader // registry order; empty when there are no players
	BuiltAt   time.Time

	byID map[string]int
}

// NewSnapshot derives the team and ranking views for records. A roster with
// only staff yields zero averages, an empty summary and no leaders.
func NewSnapshot(records []model.PlayerRecord, reg *metric.Registry) (*Snapshot, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("aggregate: %w", team.ErrEmptyRoster)
	}
	agg, err := team.Aggregate(records)
	switch {
	case errors.Is(err, team.ErrEmptyRoster):
		agg = model.TeamAggregate{
			QuarterlyAverages: model.NewSeries([model.PeriodCount]float64{}),
			BestValues:        map[string]float64{},
		}
	case err != nil:
		return nil, fmt.Errorf("aggregate: %w", err)
	}

	s := &Snapshot{
		Registry:  reg,
		Players:   records,
		Aggregate: agg,
		BuiltAt:   time.Now(),
		byID:      make(map[string]int, len(records)),
	}
	for i, p := range records {
		s.byID[p.ID] = i
	}

	if s.Ranking, err = ranking.TopOverall(records, len(records)); err != nil {
		return nil, fmt.Errorf("rank: %w", err)
	}

	summary, err := team.Summarize(records)
	switch {
	case errors.Is(err, team.ErrEmptyRoster):
		_, summary.StaffCount = roster.Counts(records)
	case err != nil:
		return nil, fmt.Errorf("summarize: %w", err)
	}
	s.Summary = summary

	leaders, err := ranking.Leaders(records, reg)
	switch {
	case errors.Is(err, ranking.ErrNoEligiblePlayers):
		leaders = []model.MetricLeader{}
	case err != nil:
		return nil, fmt.Errorf("leaders: %w", err)
	}
	s.Leaders = leaders
	return s, nil
}

// Player returns the record with id.
func (s *Snapshot) Player(id string) (model.PlayerRecord, bool) {
	i, ok := s.byID[id]
	if !ok {
		return model.PlayerRecord{}, false
	}
	return s.Players[i], true
}

// Leader returns the leader entry for a metric key.
func (s *Snapshot) Leader(key string) (model.MetricLeader, bool) {
	for _, l := range s.Leaders {
		if l.Metric == key {
			return l, true
		}
	}
	return model.MetricLeader{}, false
}

// SnapshotStore publishes snapshots through an atomic pointer so readers
// never lock.
type SnapshotStore struct {
	snapshot atomic.Pointer[Snapshot]
	logger   logger.Logger
}

// NewSnapshotStore creates an empty store.
func NewSnapshotStore(opts ...Option) *SnapshotStore {
	s := &SnapshotStore{logger: logger.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Rebuild derives and publishes a new snapshot. On error the previous
// snapshot stays in place.
func (s *SnapshotStore) Rebuild(ctx context.Context, records []model.PlayerRecord, reg *metric.Registry) error {
	start := time.Now()
	snap, err := NewSnapshot(records, reg)
	if err != nil {
		metrics.RecordSnapshotBuildError()
		return err
	}
	s.snapshot.Store(snap)

	ms := float64(time.Since(start).Microseconds()) / 1000.0
	players, staff := roster.Counts(records)
	metrics.RecordSnapshotBuild(ms, snap.BuiltAt.Unix())
	metrics.UpdateRosterSize(players, staff)
	s.logger.Info(ctx, "snapshot published",
		logger.Int("players", players),
		logger.Int("staff", staff),
		logger.Float64("build_ms", ms))
	return nil
}

// Current returns the published snapshot.
func (s *SnapshotStore) Current() (*Snapshot, error) {
	snap := s.snapshot.Load()
	if snap == nil {
		return nil, ErrNoSnapshot
	}
	return snap, nil
}

// Player returns one record by id.
func (s *SnapshotStore) Player(_ context.Context, id string) (model.PlayerRecord, error) {
	snap, err := s.Current()
	if err != nil {
		return model.PlayerRecord{}, err
	}
	p, ok := snap.Player(id)
	if !ok {
		return model.PlayerRecord{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return p, nil
}

// TopN returns the first n entries of the precomputed ranking.
func (s *SnapshotStore) TopN(_ context.Context, n int) ([]model.RankedPlayer, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d", ranking.ErrInvalidLimit, n)
	}
	snap, err := s.Current()
	if err != nil {
		return nil, err
	}
	if n > len(snap.Ranking) {
		n = len(snap.Ranking)
	}
	out := make([]model.RankedPlayer, n)
	copy(out, snap.Ranking[:n])
	return out, nil
}

// Count returns the number of records, or 0 before the first publish.
func (s *SnapshotStore) Count(_ context.Context) int {
	snap := s.snapshot.Load()
	if snap == nil {
		return 0
	}
	return len(snap.Players)
}
