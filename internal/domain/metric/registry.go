// Package metric holds the static catalogue of physical-performance metrics
// and the conversion from percentage scores to physical values.
package metric

import (
	"fmt"
	"strings"
)

// ScaleType tells how a percentage maps onto the physical measurement.
type ScaleType string

const (
	// Direct means a higher percentage is a higher physical value (jump height).
	Direct ScaleType = "direct"
	// Inverse means a higher percentage is a lower physical value (sprint time).
	Inverse ScaleType = "inverse"
)

// Definition describes one metric.
type Definition struct {
	Key      string    `json:"key"`
	Label    string    `json:"label"`
	Unit     string    `json:"unit"`
	Baseline float64   `json:"baseline"`
	Scale    ScaleType `json:"scale"`
}

// Registry is an ordered, immutable set of definitions. The order matters:
// a metric's index feeds the synthetic series offset.
type Registry struct {
	defs  []Definition
	index map[string]int
}

// NewRegistry validates defs and builds a registry preserving their order.
func NewRegistry(defs ...Definition) (*Registry, error) {
	r := &Registry{
		defs:  make([]Definition, 0, len(defs)),
		index: make(map[string]int, len(defs)),
	}
	for _, d := range defs {
		d.Key = strings.TrimSpace(d.Key)
		switch {
		case d.Key == "":
			return nil, fmt.Errorf("%w: empty key", ErrInvalidDefinition)
		case d.Baseline <= 0:
			return nil, fmt.Errorf("%w: %s baseline must be positive", ErrInvalidDefinition, d.Key)
		case d.Scale != Direct && d.Scale != Inverse:
			return nil, fmt.Errorf("%w: %s has unknown scale %q", ErrInvalidDefinition, d.Key, d.Scale)
		}
		if _, dup := r.index[d.Key]; dup {
			return nil, fmt.Errorf("%w: duplicate key %s", ErrInvalidDefinition, d.Key)
		}
		r.index[d.Key] = len(r.defs)
		r.defs = append(r.defs, d)
	}
	return r, nil
}

// MustRegistry is NewRegistry that panics on error. Use for literals only.
func MustRegistry(defs ...Definition) *Registry {
	r, err := NewRegistry(defs...)
	if err != nil {
		panic(err)
	}
	return r
}

// Default is the squad's test battery: six disciplines in display order.
func Default() *Registry {
	return MustRegistry(
		Definition{Key: "speed", Label: "Speed", Unit: "s", Baseline: 5.2, Scale: Inverse},
		Definition{Key: "technique", Label: "Technique", Unit: "s", Baseline: 12.5, Scale: Inverse},
		Definition{Key: "strength", Label: "Strength", Unit: "m", Baseline: 6.0, Scale: Direct},
		Definition{Key: "jump", Label: "Jump", Unit: "cm", Baseline: 160, Scale: Direct},
		Definition{Key: "coordination", Label: "Coordination", Unit: "s", Baseline: 9.8, Scale: Inverse},
		Definition{Key: "endurance", Label: "Endurance", Unit: "m", Baseline: 800, Scale: Direct},
	)
}

// Len returns the number of metrics.
func (r *Registry) Len() int { return len(r.defs) }

// Definitions returns a copy of the definitions in registry order.
func (r *Registry) Definitions() []Definition {
	out := make([]Definition, len(r.defs))
	copy(out, r.defs)
	return out
}

// Keys returns the metric keys in registry order.
func (r *Registry) Keys() []string {
	keys := make([]string, len(r.defs))
	for i, d := range r.defs {
		keys[i] = d.Key
	}
	return keys
}

// Lookup returns the definition and its index for key.
func (r *Registry) Lookup(key string) (Definition, int, bool) {
	i, ok := r.index[key]
	if !ok {
		return Definition{}, -1, false
	}
	return r.defs[i], i, true
}
