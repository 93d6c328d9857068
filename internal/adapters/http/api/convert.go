package api

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/squadform/internal/domain/metric"
	"github.com/okian/squadform/pkg/logger"
)

// ConvertDependencies defines the interface for percentage conversion.
type ConvertDependencies interface {
	Convert(ctx context.Context, key string, pct float64) (string, error)
}

// ConvertHandler handles conversion requests.
type ConvertHandler struct {
	deps   ConvertDependencies
	logger logger.Logger
}

// NewConvertHandler creates a new convert handler.
func NewConvertHandler(deps ConvertDependencies, log logger.Logger) *ConvertHandler {
	return &ConvertHandler{deps: deps, logger: log}
}

type convertResponse struct {
	Metric   string  `json:"metric"`
	Value    float64 `json:"value"`
	Physical string  `json:"physical"`
}

// HandleConvert handles GET /convert?metric=k&value=p requests.
func (h *ConvertHandler) HandleConvert(w http.ResponseWriter, r *http.Request) {
	const op = "api.convert"
	q := r.URL.Query()
	key := strings.TrimSpace(q.Get("metric"))
	if key == "" {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errors.New("missing metric")))
		return
	}
	pct, err := strconv.ParseFloat(q.Get("value"), 64)
	if err != nil || math.IsNaN(pct) || math.IsInf(pct, 0) {
		writeError(w, http.StatusBadRequest, "invalid_percentage", WrapKind(op, metric.ErrInvalidPercentage, errors.New("value must be a finite number")))
		return
	}
	v, err := h.deps.Convert(r.Context(), key, pct)
	if err != nil {
		fail(r.Context(), w, h.logger, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, convertResponse{Metric: key, Value: pct, Physical: v})
}
