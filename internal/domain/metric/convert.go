package metric

import (
	"fmt"
	"math"
	"strconv"
)

// ToPhysicalValue converts a percentage score into the metric's physical unit.
//
// Inverse metrics divide the baseline by the score (a faster sprint is a
// smaller time) and render two decimals; direct metrics scale the baseline
// and render one decimal. A score of 100 yields the baseline for both.
func ToPhysicalValue(def Definition, percentage float64) (string, error) {
	if math.IsNaN(percentage) || math.IsInf(percentage, 0) {
		return "", fmt.Errorf("%w: %s: %v", ErrInvalidPercentage, def.Key, percentage)
	}
	if def.Scale == Inverse {
		if percentage <= 0 {
			return "", fmt.Errorf("%w: %s: %v must be positive for an inverse metric", ErrInvalidPercentage, def.Key, percentage)
		}
		return fmt.Sprintf("%.2f %s", def.Baseline*100/percentage, def.Unit), nil
	}
	return fmt.Sprintf("%.1f %s", def.Baseline*percentage/100, def.Unit), nil
}

// PhysicalValue converts by key. An unknown key is not an error: the raw
// percentage comes back unconverted so callers can still display something.
func (r *Registry) PhysicalValue(key string, percentage float64) (string, error) {
	def, _, ok := r.Lookup(key)
	if !ok {
		return strconv.FormatFloat(percentage, 'f', -1, 64), nil
	}
	return ToPhysicalValue(def, percentage)
}
