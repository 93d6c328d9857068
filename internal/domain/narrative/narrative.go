// Package narrative describes the port to an external text generator that
// writes short coaching summaries for a player.
package narrative

import (
	"context"
	"fmt"
	"strings"

	"github.com/okian/squadform/internal/domain/metric"
	"github.com/okian/squadform/internal/domain/model"
)

// FallbackMessage replaces the summary whenever generation fails.
const FallbackMessage = "The performance summary is currently unavailable. Please try again later."

// Generator turns a request into free text. Implementations make a single
// attempt; callers substitute FallbackMessage on error.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, req Request) (string, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// MetricValue is one Q4 score handed to the generator.
type MetricValue struct {
	Key      string  `json:"key"`
	Label    string  `json:"label"`
	Value    float64 `json:"value"`
	Physical string  `json:"physical,omitempty"`
}

// Request is the plain data snapshot a generator works from.
type Request struct {
	PlayerID      string         `json:"player_id"`
	FirstName     string         `json:"first_name"`
	LastName      string         `json:"last_name"`
	Position      model.Position `json:"position"`
	SeasonAverage float64        `json:"season_average"`
	Metrics       []MetricValue  `json:"metrics"`
}

// BuildRequest copies the fields a generator needs out of p. Metrics follow
// registry order; a metric whose physical value cannot be computed is sent
// without one.
func BuildRequest(p model.PlayerRecord, reg *metric.Registry) Request {
	req := Request{
		PlayerID:      p.ID,
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		Position:      p.Position,
		SeasonAverage: p.SeasonAverage,
	}
	for _, def := range reg.Definitions() {
		s, ok := p.Metrics[def.Key]
		if !ok {
			continue
		}
		mv := MetricValue{Key: def.Key, Label: def.Label, Value: s.Latest()}
		if phys, err := metric.ToPhysicalValue(def, mv.Value); err == nil {
			mv.Physical = phys
		}
		req.Metrics = append(req.Metrics, mv)
	}
	return req
}

// Prompt renders req as the instruction text sent to a language model.
func Prompt(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a short, encouraging performance summary (at most three sentences) for a youth football player.\n")
	fmt.Fprintf(&b, "Player: %s %s\n", req.FirstName, req.LastName)
	fmt.Fprintf(&b, "Position: %s\n", req.Position)
	fmt.Fprintf(&b, "Season average: %.1f%%\n", req.SeasonAverage)
	if len(req.Metrics) > 0 {
		b.WriteString("Latest quarter scores (100% is the age-group baseline):\n")
		for _, m := range req.Metrics {
			if m.Physical != "" {
				fmt.Fprintf(&b, "- %s: %.0f%% (%s)\n", m.Label, m.Value, m.Physical)
			} else {
				fmt.Fprintf(&b, "- %s: %.0f%%\n", m.Label, m.Value)
			}
		}
	}
	b.WriteString("Name one strength and one area to work on.")
	return b.String()
}

// Summary is the outcome of one narrative request. Generated is false when
// Text is FallbackMessage.
type Summary struct {
	PlayerID  string `json:"player_id"`
	Text      string `json:"summary"`
	Generated bool   `json:"generated"`
}
