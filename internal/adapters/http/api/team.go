package api

import (
	"context"
	"net/http"

	"github.com/okian/squadform/internal/domain/model"
	"github.com/okian/squadform/pkg/logger"
)

// TeamDependencies defines the interface for the team overview.
type TeamDependencies interface {
	Team(ctx context.Context) (model.TeamOverview, error)
}

// TeamHandler handles team requests.
type TeamHandler struct {
	deps   TeamDependencies
	logger logger.Logger
}

// NewTeamHandler creates a new team handler.
func NewTeamHandler(deps TeamDependencies, log logger.Logger) *TeamHandler {
	return &TeamHandler{deps: deps, logger: log}
}

// HandleGetTeam handles GET /team requests.
func (h *TeamHandler) HandleGetTeam(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_team"
	team, err := h.deps.Team(r.Context())
	if err != nil {
		fail(r.Context(), w, h.logger, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, team)
}
