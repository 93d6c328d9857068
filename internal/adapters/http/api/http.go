// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	service "github.com/okian/squadform/internal/app"
	"github.com/okian/squadform/internal/adapters/repository"
	"github.com/okian/squadform/internal/domain/metric"
	"github.com/okian/squadform/internal/domain/model"
	"github.com/okian/squadform/internal/domain/narrative"
	"github.com/okian/squadform/internal/domain/ranking"
	"github.com/okian/squadform/pkg/logger"
)

// Default leaderboard limits.
const (
	defaultLimit    = 5
	defaultMaxLimit = 50
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	PlayerDependencies
	TeamDependencies
	LeaderboardDependencies
	LeadersDependencies
	ConvertDependencies
	SummaryDependencies
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithDefaultLimit sets the leaderboard size used when no limit is given.
func WithDefaultLimit(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.defaultLimit = n
		}
	}
}

// WithMaxLimit caps the leaderboard limit.
func WithMaxLimit(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxLimit = n
		}
	}
}

// WithLogger sets the logger used for server-side failures.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// Server wires HTTP routes for the business API.
type Server struct {
	defaultLimit int
	maxLimit     int
	logger       logger.Logger

	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	metricsHandler     *MetricsConfigHandler
	playerHandler      *PlayerHandler
	summaryHandler     *SummaryHandler
	teamHandler        *TeamHandler
	leaderboardHandler *LeaderboardHandler
	leadersHandler     *LeadersHandler
	convertHandler     *ConvertHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{
		defaultLimit: defaultLimit,
		maxLimit:     defaultMaxLimit,
		logger:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.defaultLimit > s.maxLimit {
		s.defaultLimit = s.maxLimit
	}

	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(statsProvider)
	s.metricsHandler = NewMetricsConfigHandler(deps)
	s.playerHandler = NewPlayerHandler(deps, s.logger)
	s.summaryHandler = NewSummaryHandler(deps, s.logger)
	s.teamHandler = NewTeamHandler(deps, s.logger)
	s.leaderboardHandler = NewLeaderboardHandler(deps, s.defaultLimit, s.maxLimit, s.logger)
	s.leadersHandler = NewLeadersHandler(deps, s.logger)
	s.convertHandler = NewConvertHandler(deps, s.logger)
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("GET /metrics-config", MetricsMiddleware(s.metricsHandler.HandleGetMetricsConfig, "metrics_config"))
	mux.HandleFunc("GET /players", MetricsMiddleware(s.playerHandler.HandleListPlayers, "players"))
	mux.HandleFunc("GET /players/{id}", MetricsMiddleware(s.playerHandler.HandleGetPlayer, "player"))
	mux.HandleFunc("POST /players/{id}/summary", MetricsMiddleware(s.summaryHandler.HandlePostSummary, "player_summary"))
	mux.HandleFunc("GET /team", MetricsMiddleware(s.teamHandler.HandleGetTeam, "team"))
	mux.HandleFunc("GET /leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("GET /leaders", MetricsMiddleware(s.leadersHandler.HandleListLeaders, "leaders"))
	mux.HandleFunc("GET /leaders/{metric}", MetricsMiddleware(s.leadersHandler.HandleGetLeader, "leader"))
	mux.HandleFunc("GET /convert", MetricsMiddleware(s.convertHandler.HandleConvert, "convert"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// classify maps an error kind to a status code and a machine-readable code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, metric.ErrUnknownMetric):
		return http.StatusNotFound, "unknown_metric"
	case errors.Is(err, metric.ErrInvalidPercentage):
		return http.StatusBadRequest, "invalid_percentage"
	case errors.Is(err, ranking.ErrInvalidLimit), errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, service.ErrNotStarted), errors.Is(err, repository.ErrNoSnapshot), errors.Is(err, ErrUnavailable):
		return http.StatusServiceUnavailable, "unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// fail writes the classified error and logs server-side failures.
func fail(ctx context.Context, w http.ResponseWriter, log logger.Logger, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		log.Error(ctx, "request failed",
			logger.String("request_id", RequestIDFrom(ctx)),
			logger.Error(err))
	}
	writeError(w, status, code, err)
}

// Compile-time check that the service satisfies the handler contracts.
var _ Dependencies = (*service.Service)(nil)

// Response shapes shared by several handlers.
type (
	playersResponse struct {
		Synthetic bool                 `json:"synthetic"`
		Players   []model.PlayerRecord `json:"players"`
	}

	playerResponse struct {
		Synthetic      bool               `json:"synthetic"`
		Player         model.PlayerRecord `json:"player"`
		PhysicalValues map[string]string  `json:"physical_values"`
	}

	summaryResponse = narrative.Summary
)
