package api

import (
	"net/http"

	"github.com/okian/squadform/internal/domain/metric"
)

// RegistryProvider exposes the metric catalogue.
type RegistryProvider interface {
	Registry() *metric.Registry
}

// MetricsConfigHandler serves the metric catalogue.
type MetricsConfigHandler struct {
	deps RegistryProvider
}

// NewMetricsConfigHandler creates a new metrics config handler.
func NewMetricsConfigHandler(deps RegistryProvider) *MetricsConfigHandler {
	return &MetricsConfigHandler{deps: deps}
}

// HandleGetMetricsConfig handles GET /metrics-config requests.
func (h *MetricsConfigHandler) HandleGetMetricsConfig(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Registry().Definitions())
}
