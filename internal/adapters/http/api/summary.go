package api

import (
	"context"
	"net/http"

	"github.com/okian/squadform/internal/domain/narrative"
	"github.com/okian/squadform/pkg/logger"
)

// SummaryDependencies defines the interface for narrative summaries.
type SummaryDependencies interface {
	Summary(ctx context.Context, id string) (narrative.Summary, error)
}

// SummaryHandler handles narrative summary requests.
type SummaryHandler struct {
	deps   SummaryDependencies
	logger logger.Logger
}

// NewSummaryHandler creates a new summary handler.
func NewSummaryHandler(deps SummaryDependencies, log logger.Logger) *SummaryHandler {
	return &SummaryHandler{deps: deps, logger: log}
}

// HandlePostSummary handles POST /players/{id}/summary requests. Known players
// always get 200; generation failures come back as the fallback text.
func (h *SummaryHandler) HandlePostSummary(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_summary"
	s, err := h.deps.Summary(r.Context(), r.PathValue("id"))
	if err != nil {
		fail(r.Context(), w, h.logger, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, summaryResponse(s))
}
