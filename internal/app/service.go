// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/okian/squadform/internal/adapters/llm"
	"github.com/okian/squadform/internal/adapters/repository"
	"github.com/okian/squadform/internal/dataset"
	"github.com/okian/squadform/internal/domain/metric"
	"github.com/okian/squadform/internal/domain/model"
	"github.com/okian/squadform/internal/domain/narrative"
	"github.com/okian/squadform/internal/domain/roster"
	"github.com/okian/squadform/pkg/logger"
	"github.com/okian/squadform/pkg/metrics"
)

// Default team identity.
const (
	defaultTeamName = "U10"
	defaultSeason   = "2026"
)

// Service derives the dashboard once at start and answers read queries from
// the published snapshot.
type Service struct {
	mu sync.RWMutex

	store     *repository.SnapshotStore
	registry  *metric.Registry
	squad     []model.RawPlayerInput
	generator narrative.Generator

	teamName string
	season   string

	started bool
	logger  logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		registry:  metric.Default(),
		squad:     dataset.Squad(),
		generator: llm.Disabled{},
		teamName:  defaultTeamName,
		season:    defaultSeason,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start synthesizes the roster and publishes the first snapshot.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting squad service...")

	records, err := roster.Synthesize(s.squad, s.registry)
	if err != nil {
		metrics.RecordSnapshotBuildError()
		return fmt.Errorf("synthesize roster: %w", err)
	}

	s.store = repository.NewSnapshotStore(repository.WithLogger(s.logger.Named("repository")))
	if err := s.store.Rebuild(ctx, records, s.registry); err != nil {
		return fmt.Errorf("publish snapshot: %w", err)
	}

	s.started = true
	s.logger.Info(ctx, "squad service started",
		logger.String("team", s.teamName),
		logger.String("season", s.season),
		logger.Int("records", len(records)),
		logger.Int("metrics", s.registry.Len()),
	)
	return nil
}

// Stop marks the service as stopped. Queries fail with ErrNotStarted afterwards.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "squad service stopped")
}

func (s *Service) snapshot() (*repository.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.store.Current()
}

// Registry returns the metric registry the roster was derived with.
func (s *Service) Registry() *metric.Registry { return s.registry }

// Players returns every record in roster order.
func (s *Service) Players(_ context.Context) ([]model.PlayerRecord, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return snap.Players, nil
}

// Player returns one record by id.
func (s *Service) Player(ctx context.Context, id string) (model.PlayerRecord, error) {
	if _, err := s.snapshot(); err != nil {
		return model.PlayerRecord{}, err
	}
	return s.store.Player(ctx, id)
}

// Team returns the team overview.
func (s *Service) Team(_ context.Context) (model.TeamOverview, error) {
	snap, err := s.snapshot()
	if err != nil {
		return model.TeamOverview{}, err
	}
	return model.TeamOverview{
		Name:      s.teamName,
		Season:    s.season,
		Aggregate: snap.Aggregate,
		Summary:   snap.Summary,
	}, nil
}

// TopN returns the n best players by season average.
func (s *Service) TopN(ctx context.Context, n int) ([]model.RankedPlayer, error) {
	if _, err := s.snapshot(); err != nil {
		return nil, err
	}
	metrics.RecordRankingQuery("top")
	return s.store.TopN(ctx, n)
}

// Leaders returns the leader of every metric in registry order.
func (s *Service) Leaders(_ context.Context) ([]model.MetricLeader, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	metrics.RecordRankingQuery("leaders")
	return snap.Leaders, nil
}

// Leader returns the leader of one metric.
func (s *Service) Leader(_ context.Context, key string) (model.MetricLeader, error) {
	snap, err := s.snapshot()
	if err != nil {
		return model.MetricLeader{}, err
	}
	metrics.RecordRankingQuery("leader")
	if _, _, ok := s.registry.Lookup(key); !ok {
		return model.MetricLeader{}, fmt.Errorf("%w: %q", metric.ErrUnknownMetric, key)
	}
	l, ok := snap.Leader(key)
	if !ok {
		return model.MetricLeader{}, fmt.Errorf("%w: no players for %q", repository.ErrNotFound, key)
	}
	return l, nil
}

// Convert turns a percentage score for key into a physical value.
func (s *Service) Convert(_ context.Context, key string, pct float64) (string, error) {
	def, _, ok := s.registry.Lookup(key)
	if !ok {
		metrics.RecordConversionError(key)
		return "", fmt.Errorf("%w: %q", metric.ErrUnknownMetric, key)
	}
	v, err := metric.ToPhysicalValue(def, pct)
	if err != nil {
		metrics.RecordConversionError(key)
		return "", err
	}
	return v, nil
}

// Summary asks the narrative generator for a player summary. Generation
// failures are logged and replaced with narrative.FallbackMessage; only an
// unknown player is returned as an error.
func (s *Service) Summary(ctx context.Context, id string) (narrative.Summary, error) {
	p, err := s.Player(ctx, id)
	if err != nil {
		return narrative.Summary{}, err
	}

	metrics.RecordNarrativeRequest()
	start := time.Now()
	text, err := s.generator.Generate(ctx, narrative.BuildRequest(p, s.registry))
	if err == nil && strings.TrimSpace(text) == "" {
		err = llm.ErrEmptyResponse
	}
	if err != nil {
		reason := llm.Reason(err)
		metrics.RecordNarrativeFailure(reason)
		level := s.logger.Warn
		if errors.Is(err, llm.ErrDisabled) {
			level = s.logger.Debug
		}
		level(ctx, "narrative generation failed, using fallback",
			logger.String("player_id", id),
			logger.String("reason", reason),
			logger.Duration("elapsed", time.Since(start)),
			logger.Error(err))
		return narrative.Summary{PlayerID: id, Text: narrative.FallbackMessage}, nil
	}
	return narrative.Summary{PlayerID: id, Text: strings.TrimSpace(text), Generated: true}, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, disabled := s.generator.(llm.Disabled)
	stats := map[string]interface{}{
		"started":          s.started,
		"team":             s.teamName,
		"season":           s.season,
		"metrics":          s.registry.Len(),
		"narrativeEnabled": !disabled,
	}

	if s.started {
		if snap, err := s.store.Current(); err == nil {
			players, staff := roster.Counts(snap.Players)
			stats["players"] = players
			stats["staff"] = staff
			stats["snapshotBuiltAt"] = snap.BuiltAt.UTC().Format(time.RFC3339)
			metrics.UpdateRosterSize(players, staff)
		}
	}
	return stats
}
