package api

import (
	"context"
	"net/http"

	"github.com/okian/squadform/internal/domain/metric"
	"github.com/okian/squadform/internal/domain/model"
	"github.com/okian/squadform/pkg/logger"
)

// PlayerDependencies defines the interface for player lookups.
type PlayerDependencies interface {
	Registry() *metric.Registry
	Players(ctx context.Context) ([]model.PlayerRecord, error)
	Player(ctx context.Context, id string) (model.PlayerRecord, error)
}

// PlayerHandler handles player requests.
type PlayerHandler struct {
	deps   PlayerDependencies
	logger logger.Logger
}

// NewPlayerHandler creates a new player handler.
func NewPlayerHandler(deps PlayerDependencies, log logger.Logger) *PlayerHandler {
	return &PlayerHandler{deps: deps, logger: log}
}

// HandleListPlayers handles GET /players requests.
func (h *PlayerHandler) HandleListPlayers(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_players"
	players, err := h.deps.Players(r.Context())
	if err != nil {
		fail(r.Context(), w, h.logger, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, playersResponse{Synthetic: true, Players: players})
}

// HandleGetPlayer handles GET /players/{id} requests.
func (h *PlayerHandler) HandleGetPlayer(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_player"
	p, err := h.deps.Player(r.Context(), r.PathValue("id"))
	if err != nil {
		fail(r.Context(), w, h.logger, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, playerResponse{
		Synthetic:      true,
		Player:         p,
		PhysicalValues: physicalValues(h.deps.Registry(), p),
	})
}

// physicalValues converts each Q4 metric score. Scores that cannot be
// converted are left out.
func physicalValues(reg *metric.Registry, p model.PlayerRecord) map[string]string {
	out := make(map[string]string, len(p.Metrics))
	for _, def := range reg.Definitions() {
		s, ok := p.Metrics[def.Key]
		if !ok {
			continue
		}
		if v, err := metric.ToPhysicalValue(def, s.Latest()); err == nil {
			out[def.Key] = v
		}
	}
	return out
}
