package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/squadform/internal/config"
	"github.com/okian/squadform/pkg/logger"
	"github.com/okian/squadform/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(logger.WithOutput(&bytes.Buffer{})); err != nil {
		panic(err)
	}
}

func execute(args ...string) (string, error) {
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--env-file", ""}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestReportCommand(t *testing.T) {
	convey.Convey("Given the report command", t, func() {
		convey.Convey("When printing JSON", func() {
			out, err := execute("report", "--json", "--top", "3")
			convey.So(err, convey.ShouldBeNil)

			var rep teamReport
			convey.So(json.Unmarshal([]byte(out), &rep), convey.ShouldBeNil)

			convey.Convey("Then it carries the team, leaderboard and leaders", func() {
				convey.So(rep.Team.Name, convey.ShouldEqual, "U10")
				convey.So(rep.Team.Summary.SeasonAverage, convey.ShouldEqual, 104)
				convey.So(rep.Leaderboard, convey.ShouldHaveLength, 3)
				convey.So(rep.Leaderboard[0].Player.ID, convey.ShouldEqual, "player-5")
				convey.So(rep.Leaders, convey.ShouldHaveLength, 6)
				convey.So(rep.Leaders[0].Metric, convey.ShouldEqual, "speed")
			})
		})

		convey.Convey("When printing the table", func() {
			out, err := execute("report")
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then the headline and rows are present", func() {
				convey.So(out, convey.ShouldContainSubstring, "Team U10, season 2026")
				convey.So(out, convey.ShouldContainSubstring, "Quarterly averages: Q1 100 Q2 111 Q3 94 Q4 113")
				convey.So(out, convey.ShouldContainSubstring, "Hannah ZACHENEGGER")
				convey.So(out, convey.ShouldContainSubstring, "PHYSICAL")
			})
		})

		convey.Convey("When a config file renames the team", func() {
			path := filepath.Join(t.TempDir(), "squadform.yaml")
			convey.So(os.WriteFile(path, []byte("team_name: U11\nseason: \"2027\"\n"), 0o600), convey.ShouldBeNil)

			out, err := execute("--config", path, "report")

			convey.So(err, convey.ShouldBeNil)
			convey.So(out, convey.ShouldContainSubstring, "Team U11, season 2027")
		})

		convey.Convey("When the config file is missing", func() {
			_, err := execute("--config", filepath.Join(t.TempDir(), "missing.yaml"), "report")
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}

func TestVerifyCommand(t *testing.T) {
	convey.Convey("Given a running API", t, func() {
		ctx := context.Background()
		cfg := config.New(ctx)
		svc := newService(cfg, logger.Nop())
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		srv := httptest.NewServer(newHandler(ctx, cfg, svc, logger.Nop()))
		defer srv.Close()

		convey.Convey("When verifying it", func() {
			out, err := execute("verify", "--url", srv.URL)

			convey.Convey("Then every check passes", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldStartWith, "ok: 13 players, leaderboard of 5")
			})
		})
	})
}

func TestNewHandler(t *testing.T) {
	convey.Convey("Given the full handler", t, func() {
		ctx := context.Background()
		cfg := config.New(ctx)
		svc := newService(cfg, logger.Nop())
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		h := newHandler(ctx, cfg, svc, logger.Nop())

		for _, path := range []string{"/team", "/players/player-0", "/leaderboard", "/api-docs", "/openapi.yaml", "/docs/", "/healthz"} {
			req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
		}

		convey.Convey("Then summaries fall back without an API key", func() {
			req := httptest.NewRequest(http.MethodPost, "/players/player-0/summary", http.NoBody)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			convey.So(w.Body.String(), convey.ShouldContainSubstring, `"generated":false`)
			convey.So(w.Header().Get("X-Request-ID"), convey.ShouldNotBeEmpty)
		})
	})
}

func TestRunServe(t *testing.T) {
	convey.Convey("Given a server on an ephemeral port", t, func() {
		cfg := config.New(context.Background())
		cfg.Addr = "127.0.0.1:0"

		convey.Convey("When the context is cancelled", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
			defer cancel()

			convey.Convey("Then it shuts down cleanly", func() {
				convey.So(runServe(ctx, cfg), convey.ShouldBeNil)
			})
		})

		convey.Convey("When the address is invalid", func() {
			cfg.Addr = "not-an-address"
			convey.So(runServe(context.Background(), cfg), convey.ShouldNotBeNil)
		})
	})
}

func TestMetricsOptions(t *testing.T) {
	convey.Convey("Given a config for another team", t, func() {
		cfg := config.New(context.Background())
		cfg.TeamName = "U12"
		cfg.MetricsBucketsMS = []float64{10, 100}

		convey.Convey("When the global metrics are rebuilt from it", func() {
			metrics.Init(metricsOptions(cfg)...)
			defer metrics.Init()
			metrics.UpdateRosterSize(12, 1)

			convey.Convey("Then every series carries team and season labels", func() {
				families, err := metrics.GetRegistry().Gather()
				convey.So(err, convey.ShouldBeNil)
				labels := map[string]string{}
				for _, f := range families {
					if f.GetName() != "squadform_dashboard_roster_players" {
						continue
					}
					for _, lp := range f.GetMetric()[0].GetLabel() {
						labels[lp.GetName()] = lp.GetValue()
					}
				}
				convey.So(labels, convey.ShouldResemble, map[string]string{"team": "U12", "season": "2026"})
			})
		})
	})
}

func TestMetricsUpdaters(t *testing.T) {
	convey.Convey("Given the metrics updaters", t, func() {
		convey.So(metrics.NewManager(metrics.WithPrometheusRegistry(prometheus.NewRegistry())), convey.ShouldNotBeNil)
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		convey.So(func() { startSystemMetricsUpdater(ctx) }, convey.ShouldNotPanic)
		convey.So(updateSystemMetrics, convey.ShouldNotPanic)

		svc := newService(config.New(ctx), logger.Nop())
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		convey.So(func() { updateServiceMetrics(svc) }, convey.ShouldNotPanic)
	})
}
