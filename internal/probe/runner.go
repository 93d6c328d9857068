package probe

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/okian/squadform/internal/domain/model"
	"github.com/okian/squadform/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// Run executes every check against cfg.BaseURL. Transport failures are
// returned as errors; failed checks are collected in the report and
// surface as ErrInconsistent.
func Run(ctx context.Context, cfg Config) (*Report, error) {
	cfg = cfg.withDefaults()
	log := logger.Named("probe")
	r := &Report{StartTime: time.Now()}
	c := newClient(cfg)

	log.Info(ctx, "starting probe",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("topN", cfg.TopN),
		logger.Int("workers", cfg.Workers),
		logger.Duration("timeout", cfg.Timeout))

	var (
		players playersBody
		team    model.TeamOverview
		board   []model.RankedPlayer
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.getJSON(gctx, "/players", &players) })
	g.Go(func() error { return c.getJSON(gctx, "/team", &team) })
	g.Go(func() error {
		return c.getJSON(gctx, "/leaderboard?limit="+strconv.Itoa(cfg.TopN), &board)
	})
	if err := g.Wait(); err != nil {
		return r, fmt.Errorf("fetch failed: %w", err)
	}
	r.Players = len(players.Players)
	r.LeaderboardSize = len(board)

	verifyLeaderboard(r, players.Players, board, cfg.TopN)
	verifyTeam(r, players.Players, team)

	details := make([]playerBody, len(players.Players))
	pg, pctx := errgroup.WithContext(ctx)
	pg.SetLimit(cfg.Workers)
	for i, p := range players.Players {
		pg.Go(func() error {
			return c.getJSON(pctx, "/players/"+p.ID, &details[i])
		})
	}
	if err := pg.Wait(); err != nil {
		return r, fmt.Errorf("player detail fetch failed: %w", err)
	}

	for i, p := range players.Players {
		verifyPlayer(r, p, details[i])
		r.PlayersChecked++
		if cfg.Verbose {
			log.Debug(ctx, "player checked", logger.String("id", p.ID))
		}
	}

	r.Duration = time.Since(r.StartTime)
	if !r.OK() {
		for _, f := range r.Failures {
			log.Warn(ctx, "check failed", logger.String("detail", f))
		}
		return r, fmt.Errorf("%w: %d checks failed", ErrInconsistent, len(r.Failures))
	}
	log.Info(ctx, "probe passed",
		logger.Int("players", r.Players),
		logger.Int("leaderboard", r.LeaderboardSize),
		logger.Duration("duration", r.Duration))
	return r, nil
}
