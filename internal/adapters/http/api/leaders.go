package api

import (
	"context"
	"net/http"

	"github.com/okian/squadform/internal/domain/model"
	"github.com/okian/squadform/pkg/logger"
)

// LeadersDependencies defines the interface for per-metric leaders.
type LeadersDependencies interface {
	Leaders(ctx context.Context) ([]model.MetricLeader, error)
	Leader(ctx context.Context, key string) (model.MetricLeader, error)
}

// LeadersHandler handles leader requests.
type LeadersHandler struct {
	deps   LeadersDependencies
	logger logger.Logger
}

// NewLeadersHandler creates a new leaders handler.
func NewLeadersHandler(deps LeadersDependencies, log logger.Logger) *LeadersHandler {
	return &LeadersHandler{deps: deps, logger: log}
}

// HandleListLeaders handles GET /leaders requests.
func (h *LeadersHandler) HandleListLeaders(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_leaders"
	leaders, err := h.deps.Leaders(r.Context())
	if err != nil {
		fail(r.Context(), w, h.logger, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, leaders)
}

// HandleGetLeader handles GET /leaders/{metric} requests.
func (h *LeadersHandler) HandleGetLeader(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_leader"
	l, err := h.deps.Leader(r.Context(), r.PathValue("metric"))
	if err != nil {
		fail(r.Context(), w, h.logger, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, l)
}
