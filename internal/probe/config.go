// Package probe checks a running squadform server for internally
// consistent answers: leaderboard order, team averages and player detail.
package probe

import (
	"fmt"
	"time"

	"github.com/okian/squadform/internal/domain/model"
)

// Config holds configuration for a probe run.
type Config struct {
	BaseURL string        // Base URL of the service
	TopN    int           // Leaderboard size to request
	Workers int           // Concurrent player detail fetches
	Timeout time.Duration // HTTP request timeout
	Verbose bool          // Log every check
}

// Defaults used when Config fields are zero.
const (
	DefaultTopN    = 5
	DefaultWorkers = 4
	DefaultTimeout = 10 * time.Second
)

func (c Config) withDefaults() Config {
	if c.TopN <= 0 {
		c.TopN = DefaultTopN
	}
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

type playersBody struct {
	Synthetic bool                 `json:"synthetic"`
	Players   []model.PlayerRecord `json:"players"`
}

type playerBody struct {
	Player         model.PlayerRecord `json:"player"`
	PhysicalValues map[string]string  `json:"physical_values"`
}

// Report holds the outcome of a probe run.
type Report struct {
	Players         int
	PlayersChecked  int
	LeaderboardSize int
	Failures        []string
	StartTime       time.Time
	Duration        time.Duration
}

// OK reports whether every check passed.
func (r *Report) OK() bool { return len(r.Failures) == 0 }

func (r *Report) failf(format string, args ...any) {
	r.Failures = append(r.Failures, fmt.Sprintf(format, args...))
}
